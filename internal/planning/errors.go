package planning

import "fmt"

// ValidationError reports malformed shift data (unparsable dates or times,
// impossible spans). Callers must fail the whole save rather than fall back to
// a zero-duration shift, otherwise an agent ends up underpaid.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
