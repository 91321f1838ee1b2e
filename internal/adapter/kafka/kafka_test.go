package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/marine-obs-service/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	observed := time.Date(2025, 11, 16, 23, 50, 0, 0, time.UTC)
	obs := domain.Observation{
		StationID:        "46042",
		Timestamp:        observed,
		WindDirectionDeg: 180,
		WindSpeedKt:      8.0,
		GustSpeedKt:      14.0,
		PressureMb:       1022.1,
		AirTempF:         64.4,
		WaterTempF:       61.7,
		Source:           domain.SourceTabular,
		ProcessedAt:      time.Date(2025, 11, 17, 0, 5, 0, 0, time.UTC),
	}

	msg, err := serializeToMessage(obs)
	require.NoError(t, err)

	assert.Equal(t, []byte("46042"), msg.Key)
	assert.Contains(t, string(msg.Value), `"wind_speed_kt":8`)
	assert.Contains(t, string(msg.Value), `"source":"tabular"`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "source", msg.Headers[0].Key)
	assert.Equal(t, []byte("tabular"), msg.Headers[0].Value)
	assert.Equal(t, "observed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2025-11-16T23:50:00Z"), msg.Headers[1].Value)
}

func TestSerializeToMessage_TransientFieldsOmitted(t *testing.T) {
	obs := domain.Observation{
		StationID:    "46042",
		Source:       domain.SourceNarrative,
		UnknownUnits: []string{"wind speed: unit \"furlongs\" not recognized"},
	}

	msg, err := serializeToMessage(obs)
	require.NoError(t, err)

	assert.NotContains(t, string(msg.Value), "furlongs")
}

func TestSerializeToMessage_RoundTrips(t *testing.T) {
	obs := domain.Observation{
		StationID:   "46042",
		Timestamp:   time.Date(2025, 11, 16, 23, 48, 0, 0, time.UTC),
		WindSpeedKt: 8.0,
		Source:      domain.SourceNarrative,
	}

	msg, err := serializeToMessage(obs)
	require.NoError(t, err)

	decoded, err := domain.DecodeObservation(msg.Value)
	require.NoError(t, err)
	assert.Equal(t, "46042", decoded.StationID)
	assert.Equal(t, 8.0, decoded.WindSpeedKt)
	assert.Equal(t, domain.SourceNarrative, decoded.Source)
	assert.True(t, decoded.Timestamp.Equal(obs.Timestamp))
}
