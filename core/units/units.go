// Package units provides length unit conversion helpers.
// Millimeters are the canonical physical unit across the pricing engine;
// everything else converts through them.
package units

import (
	"strings"

	"shadecost/internal/errors"
)

// Unit identifies a supported length unit
type Unit string

const (
	Millimeter Unit = "mm"
	Centimeter Unit = "cm"
	Meter      Unit = "m"
	Inch       Unit = "in"
	Foot       Unit = "ft"
	Yard       Unit = "yd"
)

// String returns the unit suffix
func (u Unit) String() string {
	return string(u)
}

// millimetersPer maps each unit to its size in millimeters
var millimetersPer = map[Unit]float64{
	Millimeter: 1,
	Centimeter: 10,
	Meter:      1000,
	Inch:       25.4,
	Foot:       304.8,
	Yard:       914.4,
}

// Parse resolves a unit suffix, accepting common aliases
func Parse(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mm", "millimeter", "millimetre":
		return Millimeter, nil
	case "cm", "centimeter", "centimetre":
		return Centimeter, nil
	case "m", "meter", "metre":
		return Meter, nil
	case "in", "inch", "inches", `"`:
		return Inch, nil
	case "ft", "foot", "feet", "'":
		return Foot, nil
	case "yd", "yard", "yards":
		return Yard, nil
	default:
		return "", errors.Input("unknown length unit: " + s)
	}
}

// Convert converts a value between two length units
func Convert(value float64, from, to Unit) (float64, error) {
	fromFactor, ok := millimetersPer[from]
	if !ok {
		return 0, errors.Input("unknown length unit: " + string(from))
	}
	toFactor, ok := millimetersPer[to]
	if !ok {
		return 0, errors.Input("unknown length unit: " + string(to))
	}
	return value * fromFactor / toFactor, nil
}

// MmToCm converts millimeters to centimeters
func MmToCm(mm float64) float64 {
	return mm / 10
}

// CmToMm converts centimeters to millimeters
func CmToMm(cm float64) float64 {
	return cm * 10
}

// MmToM converts millimeters to meters
func MmToM(mm float64) float64 {
	return mm / 1000
}

// MmToYd converts millimeters to yards
func MmToYd(mm float64) float64 {
	return mm / 914.4
}
