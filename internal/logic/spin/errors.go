package spin

import "fmt"

// RangeError reports a slice index outside [0, SliceCount). It is the
// only domain error: it is returned synchronously, before any state is
// mutated, and is never swallowed.
type RangeError struct {
	Index      int
	SliceCount int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("slice index %d out of range [0, %d)", e.Index, e.SliceCount)
}
