package account

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrAccountNotFound = errors.New("account_not_found")
)
