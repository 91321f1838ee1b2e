package domain

import (
	"fmt"
	"math"
	"time"
)

// Upstream missing-data sentinels, checked against raw source-unit values
// before any conversion.
const (
	sentinelWindDirShort = 99 // legacy two-digit marker some stations emit
	sentinelWindDir      = 999
	sentinelSpeed        = 99
	sentinelPressure     = 9999
	sentinelTemp         = 999
)

// NormalizeTabular converts raw tabular fields into a canonical observation:
// sentinel scrub, unit conversion, direction wrap. A field carrying a
// sentinel skips conversion entirely and stays 0, so a scrubbed air
// temperature reads 0°F rather than a converted 0°C.
func NormalizeTabular(raw RawTabularFields) Observation {
	obs := Observation{
		Timestamp:   time.Date(raw.Year, time.Month(raw.Month), raw.Day, raw.Hour, raw.Minute, 0, 0, time.UTC),
		Source:      SourceTabular,
		ProcessedAt: clock.Now(),
	}

	if !missingDirection(raw.WindDirDeg) {
		obs.WindDirectionDeg = wrapDegrees(raw.WindDirDeg)
	}
	if raw.WindSpeed < sentinelSpeed {
		obs.WindSpeedKt = obs.convertSpeed(raw.WindSpeed, raw.SpeedUnit, "wind speed")
	}
	if raw.GustSpeed < sentinelSpeed {
		obs.GustSpeedKt = obs.convertSpeed(raw.GustSpeed, raw.SpeedUnit, "gust speed")
	}
	if raw.PressureMb >= 0 && raw.PressureMb < sentinelPressure {
		obs.PressureMb = raw.PressureMb
	}
	if raw.AirTempC < sentinelTemp {
		obs.AirTempF = CelsiusToFahrenheit(raw.AirTempC)
	}
	if raw.WaterTempC < sentinelTemp {
		obs.WaterTempF = CelsiusToFahrenheit(raw.WaterTempC)
	}
	return obs
}

// NormalizeNarrative converts raw narrative fields into a canonical
// observation. The report never carries pressure or temperatures, so those
// fields stay 0 (unavailable).
func NormalizeNarrative(raw RawNarrativeFields) Observation {
	obs := Observation{
		Timestamp:   raw.Timestamp,
		Source:      SourceNarrative,
		ProcessedAt: clock.Now(),
	}
	obs.WindDirectionDeg = wrapDegrees(raw.WindDirDeg)
	obs.WindSpeedKt = obs.convertSpeed(raw.WindSpeed, raw.SpeedUnit, "wind speed")
	obs.GustSpeedKt = obs.convertSpeed(raw.GustSpeed, raw.SpeedUnit, "gust speed")
	return obs
}

// convertSpeed converts one speed reading to knots, noting an unrecognized
// unit on the observation and clamping negatives to 0.
func (o *Observation) convertSpeed(value float64, unit SpeedUnit, field string) float64 {
	kt, ok := SpeedToKnots(value, unit)
	if !ok {
		o.UnknownUnits = append(o.UnknownUnits, fmt.Sprintf("%s: unit %q not recognized, value passed through", field, string(unit)))
	}
	if kt < 0 {
		return 0
	}
	return kt
}

// missingDirection reports whether a raw bearing is one of the feed's
// missing-data markers.
func missingDirection(deg float64) bool {
	return deg == sentinelWindDirShort || deg >= sentinelWindDir
}

// wrapDegrees maps a bearing onto [0, 360).
func wrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
