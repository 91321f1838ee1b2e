package domain

import "math"

// SpeedUnit identifies the unit a raw speed value was reported in.
type SpeedUnit string

const (
	UnitMetersPerSecond SpeedUnit = "m/s"
	UnitMilesPerHour    SpeedUnit = "mph"
	UnitKnots           SpeedUnit = "kt"
)

const (
	knotsPerMeterPerSecond = 1.943844
	knotsPerMilePerHour    = 0.868976
)

// SpeedToKnots converts a speed in the given unit to knots, rounded to one
// decimal place. Values already in knots pass through unchanged. An
// unrecognized unit also passes the value through unchanged and reports
// ok=false so the caller can record the anomaly.
func SpeedToKnots(value float64, unit SpeedUnit) (float64, bool) {
	switch unit {
	case UnitMetersPerSecond:
		return round1(value * knotsPerMeterPerSecond), true
	case UnitMilesPerHour:
		return round1(value * knotsPerMilePerHour), true
	case UnitKnots:
		return value, true
	default:
		return value, false
	}
}

// CelsiusToFahrenheit converts a temperature to Fahrenheit, rounded to one
// decimal place.
func CelsiusToFahrenheit(c float64) float64 {
	return round1(c*9/5 + 32)
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
