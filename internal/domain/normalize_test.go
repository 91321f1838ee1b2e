package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeTabular(t *testing.T) {
	fixedTime := time.Date(2025, 11, 17, 0, 5, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	baseRaw := RawTabularFields{
		Year: 2025, Month: 11, Day: 16, Hour: 23, Minute: 50,
		WindDirDeg: 180,
		WindSpeed:  4.1,
		GustSpeed:  7.2,
		SpeedUnit:  UnitMetersPerSecond,
		PressureMb: 1022.1,
		AirTempC:   18.0,
		WaterTempC: 16.5,
	}

	t.Run("converts full row", func(t *testing.T) {
		obs := NormalizeTabular(baseRaw)

		assert.Equal(t, time.Date(2025, 11, 16, 23, 50, 0, 0, time.UTC), obs.Timestamp)
		assert.Equal(t, 180.0, obs.WindDirectionDeg)
		assert.Equal(t, 8.0, obs.WindSpeedKt)
		assert.Equal(t, 14.0, obs.GustSpeedKt)
		assert.Equal(t, 1022.1, obs.PressureMb)
		assert.Equal(t, 64.4, obs.AirTempF)
		assert.Equal(t, 61.7, obs.WaterTempF)
		assert.Equal(t, SourceTabular, obs.Source)
		assert.Equal(t, fixedTime, obs.ProcessedAt)
		assert.Empty(t, obs.UnknownUnits)
	})

	t.Run("sentinel row scrubs to zero", func(t *testing.T) {
		raw := baseRaw
		raw.WindDirDeg = 999
		raw.WindSpeed = 99
		raw.GustSpeed = 99
		raw.PressureMb = 9999
		raw.AirTempC = 999
		raw.WaterTempC = 999

		obs := NormalizeTabular(raw)

		assert.Equal(t, 0.0, obs.WindDirectionDeg)
		assert.Equal(t, 0.0, obs.WindSpeedKt)
		assert.Equal(t, 0.0, obs.GustSpeedKt)
		assert.Equal(t, 0.0, obs.PressureMb)
		assert.Equal(t, 0.0, obs.AirTempF)
		assert.Equal(t, 0.0, obs.WaterTempF)
	})

	t.Run("legacy direction sentinel", func(t *testing.T) {
		raw := baseRaw
		raw.WindDirDeg = 99

		obs := NormalizeTabular(raw)

		assert.Equal(t, 0.0, obs.WindDirectionDeg)
	})

	t.Run("sentinel temperature skips conversion", func(t *testing.T) {
		raw := baseRaw
		raw.AirTempC = 999

		obs := NormalizeTabular(raw)

		// Scrubbed means 0°F, not CelsiusToFahrenheit(0).
		assert.Equal(t, 0.0, obs.AirTempF)
	})

	t.Run("zero celsius is a real reading", func(t *testing.T) {
		raw := baseRaw
		raw.AirTempC = 0

		obs := NormalizeTabular(raw)

		assert.Equal(t, 32.0, obs.AirTempF)
	})

	t.Run("direction wraps into range", func(t *testing.T) {
		tests := []struct {
			name     string
			raw      float64
			expected float64
		}{
			{"north as 360", 360, 0},
			{"past full circle", 540, 180},
			{"negative bearing", -90, 270},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				raw := baseRaw
				raw.WindDirDeg = tt.raw

				obs := NormalizeTabular(raw)

				assert.Equal(t, tt.expected, obs.WindDirectionDeg)
			})
		}
	})

	t.Run("negative speed clamps to zero", func(t *testing.T) {
		raw := baseRaw
		raw.WindSpeed = -4.1

		obs := NormalizeTabular(raw)

		assert.Equal(t, 0.0, obs.WindSpeedKt)
	})

	t.Run("unknown speed unit noted and passed through", func(t *testing.T) {
		raw := baseRaw
		raw.SpeedUnit = SpeedUnit("furlongs")

		obs := NormalizeTabular(raw)

		assert.Equal(t, 4.1, obs.WindSpeedKt)
		assert.Equal(t, 7.2, obs.GustSpeedKt)
		assert.Len(t, obs.UnknownUnits, 2)
		assert.Contains(t, obs.UnknownUnits[0], "wind speed")
		assert.Contains(t, obs.UnknownUnits[0], "furlongs")
	})
}

func TestNormalizeNarrative(t *testing.T) {
	fixedTime := time.Date(2025, 11, 17, 0, 5, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	t.Run("wind fields carried over", func(t *testing.T) {
		raw := RawNarrativeFields{
			Timestamp:  time.Date(2025, 11, 16, 23, 48, 0, 0, time.UTC),
			WindDirDeg: 180,
			WindSpeed:  8.0,
			GustSpeed:  14.0,
			SpeedUnit:  UnitKnots,
		}

		obs := NormalizeNarrative(raw)

		assert.Equal(t, raw.Timestamp, obs.Timestamp)
		assert.Equal(t, 180.0, obs.WindDirectionDeg)
		assert.Equal(t, 8.0, obs.WindSpeedKt)
		assert.Equal(t, 14.0, obs.GustSpeedKt)
		assert.Equal(t, SourceNarrative, obs.Source)
		assert.Equal(t, fixedTime, obs.ProcessedAt)
	})

	t.Run("absent readings stay zero", func(t *testing.T) {
		raw := RawNarrativeFields{
			Timestamp: time.Date(2025, 11, 16, 23, 48, 0, 0, time.UTC),
			SpeedUnit: UnitKnots,
		}

		obs := NormalizeNarrative(raw)

		assert.Equal(t, 0.0, obs.WindSpeedKt)
		assert.Equal(t, 0.0, obs.GustSpeedKt)
		assert.Equal(t, 0.0, obs.PressureMb)
		assert.Equal(t, 0.0, obs.AirTempF)
		assert.Equal(t, 0.0, obs.WaterTempF)
	})
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"zero", 0, 0},
		{"in range", 180, 180},
		{"upper bound", 359.9, 359.9},
		{"full circle", 360, 0},
		{"past full circle", 365, 5},
		{"negative", -90, 270},
		{"large negative", -450, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, wrapDegrees(tt.input))
		})
	}
}

func TestMissingDirection(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"legacy sentinel", 99, true},
		{"sentinel", 999, true},
		{"above sentinel", 1000, true},
		{"ordinary bearing", 180, false},
		{"just below legacy sentinel", 98, false},
		{"between sentinels", 100, false},
		{"non-integer near legacy sentinel", 99.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, missingDirection(tt.input))
		})
	}
}
