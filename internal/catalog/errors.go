package catalog

import "github.com/pkg/errors"

// ErrNotFound is returned when the target service id does not exist.
var ErrNotFound = errors.New("service not found")

// ValidationError reports a missing or invalid field on a write operation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
