// Package units provides shared constants and conversions for distance units
package units

import "fmt"

// Unit constants
const (
	Meters      = "m"
	Centimeters = "cm"
	Feet        = "ft"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{Meters, Centimeters, Feet}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "m, cm, ft"
}

// MetersToCentimeters converts metres to centimetres.
func MetersToCentimeters(m float64) float64 {
	return m * 100
}

// ConvertDistance converts a distance in metres to the target units.
// The engine works in metres throughout; other units are for display only.
func ConvertDistance(meters float64, targetUnits string) float64 {
	switch targetUnits {
	case Centimeters:
		return MetersToCentimeters(meters)
	case Feet:
		return meters * 3.28084
	default:
		return meters
	}
}

// FormatDistance renders a distance with its unit suffix.
func FormatDistance(meters float64, targetUnits string) string {
	if !IsValid(targetUnits) {
		targetUnits = Meters
	}
	v := ConvertDistance(meters, targetUnits)
	if targetUnits == Centimeters {
		return fmt.Sprintf("%.0f %s", v, targetUnits)
	}
	return fmt.Sprintf("%.2f %s", v, targetUnits)
}
