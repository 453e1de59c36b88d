package pinrequest

import "errors"

var (
	ErrRequestNotFound = errors.New("pin request not found")
	ErrMissingTitle    = errors.New("missing request title")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrMissingStatus   = errors.New("missing status")
)
