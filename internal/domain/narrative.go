package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// gmtLineRe matches the report's observation time stamp,
	// e.g. "2348 GMT 11/16/25" -> 23:48 UTC on 2025-11-16.
	gmtLineRe = regexp.MustCompile(`\b(\d{4}) GMT (\d{1,2})/(\d{1,2})/(\d{2})\b`)

	// windDirRe extracts a bearing in degrees from a wind line,
	// e.g. "Wind: S (180°), 8.0 kt" -> 180.
	windDirRe = regexp.MustCompile(`\((\d+)°\)`)

	// knotsRe extracts a speed already expressed in knots, e.g. "8.0 kt".
	knotsRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*kt\b`)
)

// Line labels in the narrative report.
const (
	windMarker = "Wind:"
	gustMarker = "Gust:"
)

// ParseNarrative extracts raw fields from the narrative report. The
// timestamp is mandatory and its absence returns ErrTimestampNotFound. Wind
// direction, wind speed and gust are independent optional readings; each one
// whose line or sub-pattern is missing stays 0.
func ParseNarrative(text string) (RawNarrativeFields, error) {
	lines := strings.Split(text, "\n")

	ts, found := extractTimestamp(lines)
	if !found {
		return RawNarrativeFields{}, ErrTimestampNotFound
	}

	raw := RawNarrativeFields{Timestamp: ts, SpeedUnit: UnitKnots}
	raw.WindDirDeg, raw.WindSpeed = extractWind(lines)
	raw.GustSpeed = extractGust(lines)
	return raw, nil
}

// extractTimestamp finds the first line carrying an HHMM GMT MM/DD/YY stamp
// and converts it to a UTC instant. Two-digit years expand into the 2000s.
func extractTimestamp(lines []string) (time.Time, bool) {
	for _, line := range lines {
		m := gmtLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		hour, _ := strconv.Atoi(m[1][:2])
		minute, _ := strconv.Atoi(m[1][2:])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		year, _ := strconv.Atoi("20" + m[4])
		return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// extractWind pulls direction and speed from the first wind line. The two
// sub-patterns are matched independently, so a line like "Wind: S, 8.0 kt"
// still yields a speed even though the bearing is missing.
func extractWind(lines []string) (dirDeg, speedKt float64) {
	for _, line := range lines {
		idx := strings.Index(line, windMarker)
		if idx < 0 {
			continue
		}
		rest := line[idx+len(windMarker):]
		if m := windDirRe.FindStringSubmatch(rest); m != nil {
			dirDeg = parseFloatOrZero(m[1])
		}
		if m := knotsRe.FindStringSubmatch(rest); m != nil {
			speedKt = parseFloatOrZero(m[1])
		}
		return dirDeg, speedKt
	}
	return 0, 0
}

// extractGust pulls the gust speed from the optional gust line.
func extractGust(lines []string) float64 {
	for _, line := range lines {
		idx := strings.Index(line, gustMarker)
		if idx < 0 {
			continue
		}
		if m := knotsRe.FindStringSubmatch(line[idx+len(gustMarker):]); m != nil {
			return parseFloatOrZero(m[1])
		}
		return 0
	}
	return 0
}
