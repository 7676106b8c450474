package units

import (
	"math"
	"testing"
)

// TestConvertKnownValues tests conversions against known constants
func TestConvertKnownValues(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from     Unit
		to       Unit
		expected float64
	}{
		{name: "mm to cm", value: 1500, from: Millimeter, to: Centimeter, expected: 150},
		{name: "cm to mm", value: 140, from: Centimeter, to: Millimeter, expected: 1400},
		{name: "mm to m", value: 3000, from: Millimeter, to: Meter, expected: 3},
		{name: "m to mm", value: 2.5, from: Meter, to: Millimeter, expected: 2500},
		{name: "inch to mm", value: 1, from: Inch, to: Millimeter, expected: 25.4},
		{name: "foot to inch", value: 1, from: Foot, to: Inch, expected: 12},
		{name: "yard to foot", value: 1, from: Yard, to: Foot, expected: 3},
		{name: "mm to yard", value: 914.4, from: Millimeter, to: Yard, expected: 1},
		{name: "same unit", value: 42, from: Meter, to: Meter, expected: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.value, tt.from, tt.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestConvertRoundTrip verifies convert(convert(v, A, B), B, A) ≈ v
// for every unit pair
func TestConvertRoundTrip(t *testing.T) {
	allUnits := []Unit{Millimeter, Centimeter, Meter, Inch, Foot, Yard}
	values := []float64{0, 1, 0.5, 137.25, 914.4, 100000}

	for _, from := range allUnits {
		for _, to := range allUnits {
			for _, v := range values {
				there, err := Convert(v, from, to)
				if err != nil {
					t.Fatalf("%s->%s: unexpected error: %v", from, to, err)
				}
				back, err := Convert(there, to, from)
				if err != nil {
					t.Fatalf("%s->%s: unexpected error: %v", to, from, err)
				}
				if math.Abs(back-v) > 1e-9*math.Max(1, math.Abs(v)) {
					t.Errorf("%s->%s->%s: %v round-tripped to %v", from, to, from, v, back)
				}
			}
		}
	}
}

// TestConvertUnknownUnit tests that unknown units error
func TestConvertUnknownUnit(t *testing.T) {
	if _, err := Convert(1, Unit("furlong"), Meter); err == nil {
		t.Error("expected error for unknown source unit")
	}
	if _, err := Convert(1, Meter, Unit("cubit")); err == nil {
		t.Error("expected error for unknown target unit")
	}
}

// TestParse tests unit suffix parsing with aliases
func TestParse(t *testing.T) {
	tests := []struct {
		in       string
		expected Unit
		wantErr  bool
	}{
		{in: "mm", expected: Millimeter},
		{in: " CM ", expected: Centimeter},
		{in: "metre", expected: Meter},
		{in: "inches", expected: Inch},
		{in: "feet", expected: Foot},
		{in: "yd", expected: Yard},
		{in: "parsec", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
