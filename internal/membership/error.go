package membership

import "errors"

var (
	ErrCardNotFound = errors.New("membership card not found")
	ErrCodeTaken    = errors.New("code already used for this year")
	ErrInvalidCode  = errors.New("invalid membership code")
	ErrInvalidYear  = errors.New("invalid membership year")
	ErrInvalidToken = errors.New("invalid or expired card token")
	ErrCardRevoked  = errors.New("card no longer matches")
)
