// Package units parses the unit-suffixed length strings used in component
// options ("535um", "10mm", "0.5nm"). All values normalize to millimetres.
package units

import (
	"fmt"
	"strconv"
	"strings"
)

// Millimetres per unit suffix. Suffixes are matched longest-first so "um"
// wins over a hypothetical trailing "m".
var scale = []struct {
	suffix string
	mm     float64
}{
	{"nm", 1e-6},
	{"um", 1e-3},
	{"mm", 1},
	{"cm", 10},
	{"m", 1000},
}

// Parse converts an option value into millimetres. Bare numbers are taken as
// millimetres already, matching how the design treats unsuffixed entries.
func Parse(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("units: empty value")
	}
	for _, u := range scale {
		if !strings.HasSuffix(trimmed, u.suffix) {
			continue
		}
		num := strings.TrimSpace(strings.TrimSuffix(trimmed, u.suffix))
		if num == "" {
			break
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, fmt.Errorf("units: bad number in %q: %w", s, err)
		}
		return v * u.mm, nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("units: cannot parse %q", s)
	}
	return v, nil
}

// Format renders a millimetre value back into the catalog's canonical "um"
// notation. Whole-micron values print without a fraction.
func Format(mm float64) string {
	um := mm * 1e3
	if um == float64(int64(um)) {
		return fmt.Sprintf("%dum", int64(um))
	}
	return strconv.FormatFloat(um, 'f', -1, 64) + "um"
}
