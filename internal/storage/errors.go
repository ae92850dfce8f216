package storage

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when the requested entity does not exist or is
// excluded by soft-delete filtering.
var ErrNotFound = errors.New("record not found")

// ValidationError carries the full list of human-readable constraint
// violations for one request. Nothing is written when it is returned.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// AsValidationError unwraps err into a *ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
