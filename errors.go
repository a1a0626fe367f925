package azint

import "fmt"

// ShapeMismatchError reports that an input slice's length disagrees with
// the number of pixels, N, derived from pos. Raised before any
// accumulation begins — validation fails fast, never mid-reduction.
type ShapeMismatchError struct {
	Field    string // name of the offending parameter, e.g. "weights"
	Got, Want int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("azint: %s has length %d, want %d (len(pos))", e.Field, e.Got, e.Want)
}

// InvalidParameterError reports a structurally invalid configuration
// value, such as a non-positive bin count.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("azint: invalid %s: %s", e.Param, e.Reason)
}

// checkLength validates that got == want, returning a *ShapeMismatchError
// otherwise. Callers skip the check for nil optional slices (treated as
// "absent"); weights is always checked, so an empty weights slice passes
// only when pos is empty too.
func checkLength(field string, got, want int) error {
	if got != want {
		return &ShapeMismatchError{Field: field, Got: got, Want: want}
	}
	return nil
}
