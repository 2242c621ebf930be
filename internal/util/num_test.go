package util

import "testing"

func TestCoerceNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"50", 50, true},
		{" 42.5 ", 42.5, true},
		{"-3.2", -3.2, true},
		{"409.6 kWh", 409.6, true},
		{"120 kg CO2e", 120, true},
		{"1,200", 1200, true},
		{"12,345.67", 12345.67, true},
		{"1,5", 1.5, true},
		{"0,75", 0.75, true},
		{"", 0, false},
		{"   ", 0, false},
		{"NaN", 0, false},
		{"none", 0, false},
		{"null", 0, false},
		{"-", 0, false},
		{"n/a", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got := CoerceNumber(tc.in)
		if tc.ok {
			if got == nil {
				t.Fatalf("CoerceNumber(%q) = nil, want %v", tc.in, tc.want)
			}
			if *got != tc.want {
				t.Fatalf("CoerceNumber(%q) = %v, want %v", tc.in, *got, tc.want)
			}
			continue
		}
		if got != nil {
			t.Fatalf("CoerceNumber(%q) = %v, want nil", tc.in, *got)
		}
	}
}

func TestColumnLetter(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
	}
	for _, tc := range cases {
		if got := ColumnLetter(tc.in); got != tc.want {
			t.Fatalf("ColumnLetter(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
