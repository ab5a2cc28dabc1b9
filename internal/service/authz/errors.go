package authz

import "errors"

var (
	ErrUnauthorized = errors.New("identity is not allowed to act on this order")
	ErrUnknownRole  = errors.New("unknown role")
)
