package collector

import (
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

// byteUnits is ordered largest first so the first unit with magnitude >= 1 wins.
var byteUnits = [...]struct {
	label string
	size  float64
}{
	{"TB", 1 << 40},
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
}

// BytesToReadable converts a raw byte count into the largest binary unit
// (B, KB, MB, GB, TB) in which the magnitude is at least 1, rounded to the
// nearest integer.
func BytesToReadable[T constraints.Unsigned](b T) (uint64, string) {
	f := float64(b)

	for _, u := range byteUnits {
		if v := f / u.size; v >= 1 {
			return uint64(math.Round(v)), u.label
		}
	}

	return uint64(b), "B"
}

// FormatBytes renders a byte count as "<magnitude> <unit>".
func FormatBytes[T constraints.Unsigned](b T) string {
	v, unit := BytesToReadable(b)
	return strconv.FormatUint(v, 10) + " " + unit
}

// saturatingSub returns a-b, or 0 when b > a.
func saturatingSub[T constraints.Unsigned](a, b T) T {
	if b > a {
		return 0
	}
	return a - b
}
