package collector

import (
	"context"
	"errors"
	"testing"
)

type fakeVolumes struct {
	lists [][]Volume
	err   error
	calls int
}

func (f *fakeVolumes) Volumes(ctx context.Context) ([]Volume, error) {
	i := min(f.calls, len(f.lists)-1)
	f.calls++
	return f.lists[i], f.err
}

func TestSumVolumes(t *testing.T) {
	tests := []struct {
		name      string
		vols      []Volume
		wantUsed  uint64
		wantTotal uint64
	}{
		{"none", nil, 0, 0},
		{
			name:      "single",
			vols:      []Volume{{Total: 500 << 30, Available: 200 << 30}},
			wantUsed:  300 << 30,
			wantTotal: 500 << 30,
		},
		{
			name: "several",
			vols: []Volume{
				{Mountpoint: `C:\`, Total: 1 << 40, Available: 1 << 39},
				{Mountpoint: `D:\`, Total: 2 << 40, Available: 2 << 40},
			},
			wantUsed:  1 << 39,
			wantTotal: 3 << 40,
		},
		{
			name: "available exceeds total is clamped",
			vols: []Volume{
				{Total: 100, Available: 150},
				{Total: 1000, Available: 400},
			},
			wantUsed:  600,
			wantTotal: 1100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			used, total := SumVolumes(tt.vols)
			if used != tt.wantUsed || total != tt.wantTotal {
				t.Errorf("SumVolumes = (%d, %d), want (%d, %d)", used, total, tt.wantUsed, tt.wantTotal)
			}
			if used > total {
				t.Errorf("used %d exceeds total %d", used, total)
			}
		})
	}
}

func TestStorageUsedAndTotal(t *testing.T) {
	src := &fakeVolumes{lists: [][]Volume{
		{{Total: 512 << 30, Available: 256 << 30}},
	}}

	used, err := StorageUsed(context.Background(), src)
	if err != nil {
		t.Fatalf("StorageUsed: %v", err)
	}
	total, err := StorageTotal(context.Background(), src)
	if err != nil {
		t.Fatalf("StorageTotal: %v", err)
	}

	if used != "256 GB" {
		t.Errorf("used = %q, want %q", used, "256 GB")
	}
	if total != "512 GB" {
		t.Errorf("total = %q, want %q", total, "512 GB")
	}
}

func TestStorage_RefreshesPerCall(t *testing.T) {
	src := &fakeVolumes{lists: [][]Volume{
		{{Total: 1 << 30, Available: 1 << 29}},
		{{Total: 4 << 30, Available: 1 << 30}},
	}}

	used, _ := StorageUsed(context.Background(), src)
	total, _ := StorageTotal(context.Background(), src)

	if src.calls != 2 {
		t.Fatalf("expected 2 volume queries, got %d", src.calls)
	}
	if used != "512 MB" {
		t.Errorf("used = %q, want %q", used, "512 MB")
	}
	if total != "4 GB" {
		t.Errorf("total = %q, want %q from the second listing", total, "4 GB")
	}
}

func TestStorage_PartialListOnError(t *testing.T) {
	boom := errors.New("E:\\ not ready")
	src := &fakeVolumes{
		lists: [][]Volume{{{Total: 2 << 30, Available: 1 << 30}}},
		err:   boom,
	}

	total, err := StorageTotal(context.Background(), src)
	if !errors.Is(err, boom) {
		t.Errorf("expected source error to be returned, got %v", err)
	}
	if total != "2 GB" {
		t.Errorf("total = %q, want %q", total, "2 GB")
	}
}

func TestStorage_SourceFailure(t *testing.T) {
	src := &fakeVolumes{lists: [][]Volume{nil}, err: errors.New("no volumes")}

	used, _ := StorageUsed(context.Background(), src)
	total, _ := StorageTotal(context.Background(), src)

	if used != "0 B" || total != "0 B" {
		t.Errorf("got used=%q total=%q, want 0 B for both", used, total)
	}
}

func TestNewVolumeSource_Integration(t *testing.T) {
	vols, err := NewVolumeSource().Volumes(context.Background())
	if err != nil {
		t.Logf("partial volume list: %v", err)
	}

	for _, v := range vols {
		t.Logf("Volume %s (%s, %s): total=%s available=%s",
			v.Mountpoint, v.Device, v.FSType, FormatBytes(v.Total), FormatBytes(v.Available))
	}

	used, total := SumVolumes(vols)
	if used > total {
		t.Errorf("used %d exceeds total %d", used, total)
	}
}

func BenchmarkVolumes(b *testing.B) {
	src := NewVolumeSource()
	ctx := context.Background()
	b.ReportAllocs()

	for b.Loop() {
		_, _ = src.Volumes(ctx)
	}
}
