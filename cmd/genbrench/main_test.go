package main

import "testing"

func TestFormatScientific(t *testing.T) {
	tests := map[int]string{0: "0", 7: "7e0", 100000: "1e5", 1500: "1.5e3", 25: "2.5e1"}
	for in, want := range tests {
		if got := formatScientific(in); got != want {
			t.Errorf("formatScientific(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDecimal(t *testing.T) {
	tests := map[float64]string{1: "1", 1.5: "1_5", 1.07: "1_07", 0.25: "0_25"}
	for in, want := range tests {
		if got := formatDecimal(in); got != want {
			t.Errorf("formatDecimal(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParseScientificNotation(t *testing.T) {
	if n, err := parseScientificNotation("1e5"); err != nil || n != 100000 {
		t.Errorf("parseScientificNotation(1e5) = (%d, %v)", n, err)
	}
	if _, err := parseScientificNotation("many"); err == nil {
		t.Error("expected error")
	}
}
