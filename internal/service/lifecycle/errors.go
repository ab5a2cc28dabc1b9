package lifecycle

import "errors"

var (
	ErrInvalidOrderID = errors.New("invalid order id")
	ErrUnknownStatus  = errors.New("unknown order status")
)
