package captions

import (
	"errors"
	"fmt"
)

// ErrMalformedCaption marks caption payloads whose time ranges cannot be read.
var ErrMalformedCaption = errors.New("malformed caption")

// MalformedCaptionError reports the offending line of a caption payload.
type MalformedCaptionError struct {
	Line  int
	Value string
	Err   error
}

func (e *MalformedCaptionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed caption at line %d: %q", e.Line, e.Value)
	}
	return fmt.Sprintf("malformed caption at line %d: %q: %v", e.Line, e.Value, e.Err)
}

func (e *MalformedCaptionError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrMalformedCaption) match any MalformedCaptionError.
func (e *MalformedCaptionError) Is(target error) bool {
	return target == ErrMalformedCaption
}
