package units

import (
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"535um", 0.535},
		{"10mm", 10},
		{"0um", 0},
		{"250nm", 0.00025},
		{"1.5cm", 15},
		{"2m", 2000},
		{"0.75", 0.75},     // bare number => mm
		{" 17.5um ", 0.0175},
		{"-65um", -0.065},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", c.in, err)
			continue
		}
		if math.Abs(got-c.want) > 1e-12 {
			t.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "um", "abcum", "12xx", "  "} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q): expected error", in)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0.535, "535um"},
		{0, "0um"},
		{10, "10000um"},
		{0.0175, "17.5um"},
	}
	for _, c := range cases {
		if got := Format(c.in); got != c.want {
			t.Errorf("Format(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"535um", "65um", "17.5um", "212um"} {
		mm, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if got := Format(mm); got != s {
			t.Errorf("Format(Parse(%q)) = %q", s, got)
		}
	}
}
