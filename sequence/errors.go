package sequence

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	ErrEmptySequence   = errors.New("sequence has no frames")
	ErrInvalidDuration = errors.New("frame duration must be positive")
	ErrFrameOutOfRange = errors.New("frame index out of range")
)

// ConfigurationError reports a sequence that cannot be constructed.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid sequence: %v", e.Err)
	}
	return fmt.Sprintf("invalid sequence %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
