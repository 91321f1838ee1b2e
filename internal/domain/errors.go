package domain

import (
	"errors"
	"fmt"
)

// Terminal parse failures, matched with errors.Is.
var (
	// ErrNoData means neither feed produced a usable candidate.
	ErrNoData = errors.New("no data available from any source")

	// ErrTimestampNotFound means the narrative report, the source of last
	// resort, had no recognizable GMT timestamp line.
	ErrTimestampNotFound = errors.New("timestamp not found in narrative report")
)

// StructuralError reports a tabular row with too few columns. The selector
// recovers from it by falling back to the narrative report, so it normally
// never reaches callers of ParseObservation.
type StructuralError struct {
	Expected int
	Actual   int
	Row      string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("tabular row has %d columns, expected at least %d", e.Actual, e.Expected)
}

// Diagnostics captures what the source selector saw during one parse
// attempt, for operators debugging a failing station.
type Diagnostics struct {
	ChosenSource     string `json:"chosen_source,omitempty"`
	TabularPresent   bool   `json:"tabular_present"`
	NarrativePresent bool   `json:"narrative_present"`
	TabularTokens    int    `json:"tabular_tokens,omitempty"`
	TabularRow       string `json:"tabular_row,omitempty"`
	NarrativeSnippet string `json:"narrative_snippet,omitempty"`
}

// ParseFailure is a terminal parse error with the diagnostics gathered along
// the way. Unwrap exposes the underlying sentinel error for errors.Is checks.
type ParseFailure struct {
	Err  error
	Diag Diagnostics
}

func (f *ParseFailure) Error() string { return f.Err.Error() }

func (f *ParseFailure) Unwrap() error { return f.Err }
