package domain

import (
	"math"
	"strconv"
	"strings"
)

const (
	// minProbeTokens is the structural probe threshold: a latest row with
	// this many tokens or fewer is not offered to the tabular parser at all.
	minProbeTokens = 10

	// minTabularTokens is the column count the tabular parser requires. The
	// water temperature column sits at index 14, but rows are accepted from
	// the pressure and air temperature columns onward; readings past the end
	// of a short row are treated as unavailable.
	minTabularTokens = 13
)

// Column positions in a tabular data row.
const (
	colYear      = 0
	colMonth     = 1
	colDay       = 2
	colHour      = 3
	colMinute    = 4
	colWindDir   = 5
	colWindSpeed = 6
	colGust      = 7
	colPressure  = 12
	colAirTemp   = 13
	colWaterTemp = 14
)

// probeTabular reports whether the candidate's latest row splits into enough
// whitespace-separated columns to be worth handing to the tabular parser.
func probeTabular(text string) bool {
	return len(strings.Fields(latestRow(text))) > minProbeTokens
}

// latestRow returns the last non-empty line of the feed. Rows are ordered
// oldest first, so the last one is the most recent observation.
func latestRow(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// ParseTabular extracts raw source-unit fields from the latest row of the
// tabular feed. Rows with fewer than minTabularTokens columns produce a
// *StructuralError; individual tokens that fail to parse, including the
// feed's "MM" missing marker, default to 0.
func ParseTabular(text string) (RawTabularFields, error) {
	row := latestRow(text)
	tokens := strings.Fields(row)
	if len(tokens) < minTabularTokens {
		return RawTabularFields{}, &StructuralError{Expected: minTabularTokens, Actual: len(tokens), Row: row}
	}

	return RawTabularFields{
		Year:   parseIntOrZero(tokenAt(tokens, colYear)),
		Month:  parseIntOrZero(tokenAt(tokens, colMonth)),
		Day:    parseIntOrZero(tokenAt(tokens, colDay)),
		Hour:   parseIntOrZero(tokenAt(tokens, colHour)),
		Minute: parseIntOrZero(tokenAt(tokens, colMinute)),

		WindDirDeg: parseFloatOrZero(tokenAt(tokens, colWindDir)),
		WindSpeed:  parseFloatOrZero(tokenAt(tokens, colWindSpeed)),
		GustSpeed:  parseFloatOrZero(tokenAt(tokens, colGust)),
		SpeedUnit:  UnitMetersPerSecond,

		PressureMb: parseFloatOrZero(tokenAt(tokens, colPressure)),
		AirTempC:   parseFloatOrZero(tokenAt(tokens, colAirTemp)),
		WaterTempC: parseFloatOrZero(tokenAt(tokens, colWaterTemp)),
	}, nil
}

// tokenAt returns tokens[i], or "" when the row ends before that column.
func tokenAt(tokens []string, i int) string {
	if i >= len(tokens) {
		return ""
	}
	return tokens[i]
}

// parseFloatOrZero parses a string as float64, returning 0 on failure or on
// a non-finite value.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseIntOrZero parses a string as int, returning 0 on failure.
func parseIntOrZero(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
