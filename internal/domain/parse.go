package domain

import "strings"

// snippetMax bounds the raw feed excerpts recorded in diagnostics.
const snippetMax = 160

// ParseObservation picks the most trustworthy of the two feed candidates for
// a station and returns its canonical observation. Either candidate may be
// empty, meaning that feed was absent or failed to fetch.
//
// The tabular feed is preferred. A tabular candidate that fails the
// structural probe, or whose latest row fails column validation, falls back
// to the narrative report. Only two conditions are terminal: no usable
// candidate at all (ErrNoData) and a narrative report without a timestamp
// (ErrTimestampNotFound). Terminal errors are *ParseFailure values carrying
// diagnostics for the operator.
func ParseObservation(tabularText, narrativeText string) (Observation, error) {
	tabularText = strings.TrimSpace(tabularText)
	narrativeText = strings.TrimSpace(narrativeText)

	diag := Diagnostics{
		TabularPresent:   tabularText != "",
		NarrativePresent: narrativeText != "",
	}
	if diag.TabularPresent {
		row := latestRow(tabularText)
		diag.TabularRow = snippet(row)
		diag.TabularTokens = len(strings.Fields(row))
	}
	if diag.NarrativePresent {
		diag.NarrativeSnippet = snippet(narrativeText)
	}

	if probeTabular(tabularText) {
		diag.ChosenSource = SourceTabular
		raw, err := ParseTabular(tabularText)
		if err == nil {
			return NormalizeTabular(raw), nil
		}
		// A structurally short row is an expected condition; fall through to
		// the narrative report.
	}

	if narrativeText == "" {
		return Observation{}, &ParseFailure{Err: ErrNoData, Diag: diag}
	}

	diag.ChosenSource = SourceNarrative
	raw, err := ParseNarrative(narrativeText)
	if err != nil {
		return Observation{}, &ParseFailure{Err: err, Diag: diag}
	}
	return NormalizeNarrative(raw), nil
}

// snippet truncates a raw feed excerpt for diagnostics.
func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= snippetMax {
		return s
	}
	return s[:snippetMax] + "..."
}
