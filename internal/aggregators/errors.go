package aggregators

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord marks a stored rollup record that violates a data-model
// invariant (histogram/count disagreement, bad shape). Data integrity issues
// are not transient: callers surface them and do not retry.
var ErrMalformedRecord = errors.New("malformed rollup record")

func errMalformedRecord(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedRecord, fmt.Sprintf(format, args...))
}
