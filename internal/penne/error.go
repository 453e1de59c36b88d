package penne

import "errors"

var (
	ErrRequestNotFound = errors.New("penne request not found")
	ErrMissingColor    = errors.New("missing penne color")
	ErrMissingHeadSize = errors.New("missing head size")
	ErrInvalidStatus   = errors.New("status must be pending or processed")
	ErrForbidden       = errors.New("not allowed to modify this request")
)
