package collector

import (
	"errors"
	"io"
	"slices"
	"testing"
	"unicode/utf16"

	"github.com/sirupsen/logrus"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeAdapter struct {
	desc    AdapterDesc
	descErr error
}

type fakeHandle struct {
	f       *fakeFactory
	adapter fakeAdapter
}

func (h *fakeHandle) Description() (AdapterDesc, error) {
	return h.adapter.desc, h.adapter.descErr
}

func (h *fakeHandle) Release() {
	h.f.live--
	h.f.released++
}

// fakeFactory serves adapters by index, then returns endErr.
type fakeFactory struct {
	adapters []fakeAdapter
	endErr   error

	requested []uint32
	live      int // handles handed out and not yet released
	maxLive   int
	released  int
	closed    bool
}

func (f *fakeFactory) EnumAdapter(index uint32) (AdapterHandle, error) {
	f.requested = append(f.requested, index)
	if int(index) >= len(f.adapters) {
		if f.endErr != nil {
			return nil, f.endErr
		}
		return nil, ErrAdapterNotFound
	}

	f.live++
	f.maxLive = max(f.maxLive, f.live)
	return &fakeHandle{f: f, adapter: f.adapters[index]}, nil
}

func (f *fakeFactory) Release() { f.closed = true }

func opener(f *fakeFactory) FactoryOpener {
	return func() (AdapterFactory, error) { return f, nil }
}

func TestAdapterDesc_Physical(t *testing.T) {
	tests := []struct {
		name string
		desc AdapterDesc
		want bool
	}{
		{"hardware with vram", AdapterDesc{Flags: 0, DedicatedVideoMemory: 8 << 30}, true},
		{"software flag with vram", AdapterDesc{Flags: AdapterFlagSoftware, DedicatedVideoMemory: 8 << 30}, false},
		{"no vram", AdapterDesc{Flags: 0, DedicatedVideoMemory: 0}, false},
		{"software and no vram", AdapterDesc{Flags: AdapterFlagSoftware}, false},
		{"other flag bits ignored", AdapterDesc{Flags: 0x1, DedicatedVideoMemory: 1 << 30}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.desc.Physical(); got != tt.want {
				t.Errorf("Physical() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdapterDesc_String(t *testing.T) {
	d := AdapterDesc{Name: "NVIDIA GeForce RTX 3080", DedicatedVideoMemory: 10 << 30}
	if got, want := d.String(), "NVIDIA GeForce RTX 3080 (10 GB)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestGraphicsAdapters_Filtering(t *testing.T) {
	f := &fakeFactory{adapters: []fakeAdapter{
		{desc: AdapterDesc{Name: "AMD Radeon RX 7900 XTX", DedicatedVideoMemory: 24 << 30}},
		{desc: AdapterDesc{Name: "Microsoft Basic Render Driver", Flags: AdapterFlagSoftware, DedicatedVideoMemory: 1 << 30}},
		{desc: AdapterDesc{Name: "Intel(R) UHD Graphics 770", DedicatedVideoMemory: 0}},
		{desc: AdapterDesc{Name: "NVIDIA GeForce RTX 4060", DedicatedVideoMemory: 8 << 30}},
	}}

	gpus, err := GraphicsAdapters(opener(f), quietLogger())
	if err != nil {
		t.Fatalf("GraphicsAdapters: %v", err)
	}

	want := []string{"AMD Radeon RX 7900 XTX (24 GB)", "NVIDIA GeForce RTX 4060 (8 GB)"}
	if !slices.Equal(gpus, want) {
		t.Errorf("got %q, want %q", gpus, want)
	}
	if !f.closed {
		t.Error("factory was not released")
	}
}

func TestGraphicsAdapters_SkipsUnreadableDescription(t *testing.T) {
	f := &fakeFactory{adapters: []fakeAdapter{
		{descErr: errors.New("device removed")},
		{desc: AdapterDesc{Name: "GPU 1", DedicatedVideoMemory: 4 << 30}},
	}}

	gpus, _ := GraphicsAdapters(opener(f), quietLogger())

	if !slices.Equal(gpus, []string{"GPU 1 (4 GB)"}) {
		t.Errorf("got %q", gpus)
	}
	if f.released != 2 {
		t.Errorf("released %d handles, want 2", f.released)
	}
}

func TestGraphicsAdapters_FactoryFailure(t *testing.T) {
	open := func() (AdapterFactory, error) { return nil, errors.New("dxgi.dll missing") }

	gpus, err := GraphicsAdapters(open, quietLogger())
	if err == nil {
		t.Error("expected factory error to be reported")
	}
	if gpus == nil {
		t.Fatal("gpus must be an empty list, not nil")
	}
	if len(gpus) != 0 {
		t.Errorf("expected no adapters, got %q", gpus)
	}
}

func TestAdapters_TerminatesAtNotFound(t *testing.T) {
	f := &fakeFactory{adapters: []fakeAdapter{
		{desc: AdapterDesc{Name: "a"}},
		{desc: AdapterDesc{Name: "b"}},
		{desc: AdapterDesc{Name: "c"}},
	}}

	var names []string
	for d := range Adapters(f, quietLogger()) {
		names = append(names, d.Name)
	}

	if !slices.Equal(names, []string{"a", "b", "c"}) {
		t.Errorf("names = %q", names)
	}
	if !slices.Equal(f.requested, []uint32{0, 1, 2, 3}) {
		t.Errorf("requested indices = %v, want [0 1 2 3]", f.requested)
	}
}

func TestAdapters_TerminatesEvenWithNoQualifyingAdapters(t *testing.T) {
	f := &fakeFactory{adapters: []fakeAdapter{
		{desc: AdapterDesc{Name: "soft", Flags: AdapterFlagSoftware, DedicatedVideoMemory: 1}},
	}}

	gpus, _ := GraphicsAdapters(opener(f), quietLogger())

	if len(gpus) != 0 {
		t.Errorf("expected no adapters, got %q", gpus)
	}
	if len(f.requested) != 2 {
		t.Errorf("expected 2 enumeration calls, got %d", len(f.requested))
	}
}

func TestAdapters_OtherEnumerationErrorStops(t *testing.T) {
	f := &fakeFactory{
		adapters: []fakeAdapter{{desc: AdapterDesc{Name: "a"}}},
		endErr:   errors.New("DXGI_ERROR_DEVICE_REMOVED"),
	}

	var n int
	for range Adapters(f, quietLogger()) {
		n++
	}

	if n != 1 {
		t.Errorf("yielded %d adapters, want 1", n)
	}
	if len(f.requested) != 2 {
		t.Errorf("expected enumeration to stop after index 1, requested %v", f.requested)
	}
}

func TestAdapters_HandleReleasedBeforeNextIndex(t *testing.T) {
	f := &fakeFactory{adapters: make([]fakeAdapter, 5)}

	for range Adapters(f, quietLogger()) {
	}

	if f.maxLive != 1 {
		t.Errorf("at most one handle should be live at a time, saw %d", f.maxLive)
	}
	if f.live != 0 {
		t.Errorf("%d handles leaked", f.live)
	}
}

func TestAdapters_EarlyBreak(t *testing.T) {
	f := &fakeFactory{adapters: make([]fakeAdapter, 5)}

	for range Adapters(f, quietLogger()) {
		break
	}

	if len(f.requested) != 1 {
		t.Errorf("lazy sequence requested %d indices after break, want 1", len(f.requested))
	}
	if f.live != 0 {
		t.Errorf("%d handles leaked", f.live)
	}
}

func TestDecodeWideName(t *testing.T) {
	wide := func(s string) []uint16 { return utf16.Encode([]rune(s)) }

	var full [8]uint16
	copy(full[:], wide("ABCDEFGH"))

	var padded [128]uint16
	copy(padded[:], wide("NVIDIA GeForce RTX 3080"))

	var garbage [16]uint16
	copy(garbage[:], wide("GPU"))
	copy(garbage[4:], wide("junk"))

	tests := []struct {
		name string
		buf  []uint16
		want string
	}{
		{"nul padded", padded[:], "NVIDIA GeForce RTX 3080"},
		{"no terminator uses full buffer", full[:], "ABCDEFGH"},
		{"stops at first nul", garbage[:], "GPU"},
		{"empty buffer", nil, ""},
		{"leading nul", []uint16{0, 'x'}, ""},
		{"non-BMP", append(wide("Radeon™ 🎮"), 0), "Radeon™ 🎮"},
		{"unpaired surrogate", []uint16{'A', 0xD800, 'B', 0}, "A\uFFFDB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeWideName(tt.buf); got != tt.want {
				t.Errorf("decodeWideName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSliceFactory(t *testing.T) {
	f := sliceFactory{
		{Name: "one", DedicatedVideoMemory: 2 << 30},
		{Name: "two"},
	}

	gpus, err := GraphicsAdapters(func() (AdapterFactory, error) { return f, nil }, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(gpus, []string{"one (2 GB)"}) {
		t.Errorf("got %q", gpus)
	}

	if _, err := f.EnumAdapter(2); !errors.Is(err, ErrAdapterNotFound) {
		t.Errorf("EnumAdapter past end = %v, want ErrAdapterNotFound", err)
	}
}

func TestGraphicsAdapters_Integration(t *testing.T) {
	gpus, err := GraphicsAdapters(OpenAdapterFactory, quietLogger())
	if err != nil {
		t.Logf("adapter factory unavailable: %v", err)
	}
	if gpus == nil {
		t.Fatal("gpus must never be nil")
	}

	for _, g := range gpus {
		t.Logf("GPU: %s", g)
	}
}
