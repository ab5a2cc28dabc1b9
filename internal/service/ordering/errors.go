package ordering

import "errors"

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrEmptyItems            = errors.New("order must contain at least one item")
	ErrInvalidItem           = errors.New("invalid order item")
)
