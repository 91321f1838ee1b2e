package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Source labels recorded on observations and diagnostics.
const (
	SourceTabular   = "tabular"
	SourceNarrative = "narrative"
)

// Observation is the canonical normalized record for one station reading.
// All speeds are in knots, temperatures in Fahrenheit, pressure in millibars
// and direction in degrees true. A zero in any reading field may mean either
// a genuine zero or an unavailable sensor; the upstream sources do not
// distinguish the two.
type Observation struct {
	StationID        string    `json:"station_id"`
	Timestamp        time.Time `json:"timestamp"`
	WindDirectionDeg float64   `json:"wind_direction_deg"`
	WindSpeedKt      float64   `json:"wind_speed_kt"`
	GustSpeedKt      float64   `json:"gust_speed_kt"`
	PressureMb       float64   `json:"pressure_mb"`
	AirTempF         float64   `json:"air_temp_f"`
	WaterTempF       float64   `json:"water_temp_f"`
	Source           string    `json:"source"`
	ProcessedAt      time.Time `json:"processed_at"`

	// UnknownUnits collects human-readable notes about values whose unit was
	// not recognized and was passed through unconverted. It is transient
	// diagnostic state for the caller to log, not part of the record.
	UnknownUnits []string `json:"-"`
}

// DecodeObservation unmarshals a JSON-encoded observation, the shape
// published to the sink topic and served by the API.
func DecodeObservation(data []byte) (Observation, error) {
	var obs Observation
	if err := json.Unmarshal(data, &obs); err != nil {
		return Observation{}, fmt.Errorf("decode observation: %w", err)
	}
	return obs, nil
}

// RawTabularFields holds the source-unit values extracted from one tabular
// row before sentinel scrubbing and unit conversion.
type RawTabularFields struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int

	WindDirDeg float64
	WindSpeed  float64
	GustSpeed  float64
	SpeedUnit  SpeedUnit

	PressureMb float64
	AirTempC   float64
	WaterTempC float64
}

// RawNarrativeFields holds the values extracted from a narrative report
// before normalization. The report never carries pressure or temperatures.
type RawNarrativeFields struct {
	Timestamp  time.Time
	WindDirDeg float64
	WindSpeed  float64
	GustSpeed  float64
	SpeedUnit  SpeedUnit
}
