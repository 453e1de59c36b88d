package pin

import "errors"

var (
	ErrPinNotFound  = errors.New("pin not found")
	ErrMissingField = errors.New("missing required field")
)
