// Package domain models and normalizes marine weather observations for a
// single buoy station.
//
// The station publishes its latest observation in two plaintext encodings,
// and the package's entry point, ParseObservation, turns whichever of them
// is usable into one canonical Observation record.
//
// # Tabular Feed
//
// The primary source is a whitespace-separated column file. Comment lines
// beginning with '#' carry the column headers; every other line is one
// observation row, and the final row is the most recent:
//
//	#YY  MM DD hh mm WDIR WSPD GST  WVHT   DPD   APD MWD   PRES  ATMP  WTMP  DEWP  VIS PTDY  TIDE
//	2025 11 16 23 50 180  4.1  7.2   1.2     9   6.4 270 1022.1  18.0  16.5    MM   MM   MM    MM
//
// Wind speeds arrive in meters per second and temperatures in Celsius.
// The marker "MM" and the numeric sentinels 99, 999 and 9999 all mean a
// reading is unavailable.
//
// # Narrative Report
//
// The secondary source is a plain-language report with one labeled line per
// reading. Speeds are already in knots:
//
//	Conditions at Station 46042 as of
//	2348 GMT 11/16/25:
//	Wind: S (180°), 8.0 kt
//	Gust: 14.0 kt
//
// Only the timestamp line is mandatory. Wind and gust lines may each be
// absent, in which case the corresponding fields stay zero.
//
// # Canonical Units
//
// Normalized observations report speeds in knots, temperatures in
// Fahrenheit, pressure in millibars and direction in degrees true, all
// rounded to one decimal place where conversion applies. A zero in any
// reading field is deliberately ambiguous: the sources themselves do not
// distinguish a genuine zero reading from an unavailable sensor, and this
// package preserves that.
package domain
