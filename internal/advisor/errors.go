package advisor

import "fmt"

// InsufficientDataError reports a price sequence too short to analyze.
// Callers should treat the symbol as not yet analyzable rather than
// defaulting to HOLD.
type InsufficientDataError struct {
	Got  int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient price data: got %d points, need %d", e.Got, e.Need)
}

// MissingInputError reports a required aggregate that was never supplied
// to the scorer.
type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing required input: %s", e.Field)
}
