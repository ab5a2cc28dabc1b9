package claim

import "errors"

var (
	ErrInvalidOrderID   = errors.New("invalid order id")
	ErrInvalidPartnerID = errors.New("invalid partner id")

	ErrOrderNotFound   = errors.New("order not found")
	ErrPartnerNotFound = errors.New("delivery partner not found")
	ErrAlreadyClaimed  = errors.New("order is no longer available")
	ErrAlreadyActive   = errors.New("partner already has an active delivery")
)
