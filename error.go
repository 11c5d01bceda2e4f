package tilequeue

import "fmt"

type constError string

const (
	// ErrInvalidCapacity may be returned from [New].
	ErrInvalidCapacity = constError("invalid capacity")

	errCorrupt = constError("queue invariant violated")
)

func (errStr constError) Error() string { return string(errStr) }

func capacityHintError(hint int) error {
	return fmt.Errorf(
		"%w: hint must be >=0 but %d was requested",
		ErrInvalidCapacity, hint)
}

func corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errCorrupt}, args...)...)
}
