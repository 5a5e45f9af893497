package units

import (
	"math"
	"testing"
)

func TestIsValid(t *testing.T) {
	for _, u := range ValidUnits {
		if !IsValid(u) {
			t.Errorf("IsValid(%q) = false, want true", u)
		}
	}
	if IsValid("mph") {
		t.Error("IsValid(mph) = true, want false")
	}
}

func TestConvertDistance(t *testing.T) {
	tests := []struct {
		name   string
		meters float64
		unit   string
		want   float64
	}{
		{"metres passthrough", 1.2, Meters, 1.2},
		{"centimetres", 0.8, Centimeters, 80},
		{"feet", 1.0, Feet, 3.28084},
		{"unknown falls back to metres", 2.5, "furlong", 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertDistance(tt.meters, tt.unit)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ConvertDistance(%v, %q) = %v, want %v", tt.meters, tt.unit, got, tt.want)
			}
		})
	}
}

func TestFormatDistance(t *testing.T) {
	if got := FormatDistance(0.856, Centimeters); got != "86 cm" {
		t.Errorf("FormatDistance cm = %q", got)
	}
	if got := FormatDistance(1.2, Meters); got != "1.20 m" {
		t.Errorf("FormatDistance m = %q", got)
	}
	if got := FormatDistance(1.2, "bogus"); got != "1.20 m" {
		t.Errorf("FormatDistance fallback = %q", got)
	}
}
