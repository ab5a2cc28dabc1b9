package entities

// Actor is the resolved identity acting on an order. Identity resolution
// itself happens upstream (the authentication collaborator); by the time an
// Actor reaches a service it is trusted.
type Actor struct {
	ID   string
	Role RoleType
}

type RoleType string

const (
	RoleCustomer   RoleType = "customer"
	RoleRestaurant RoleType = "restaurant"
	RoleDelivery   RoleType = "delivery"
	RoleAdmin      RoleType = "admin"
	// RolePayment is the internal role of the payment-completion callback.
	// It is never resolved from a client request.
	RolePayment RoleType = "payment"
)

func (r RoleType) String() string {
	return string(r)
}

func IsValidRole(role string) bool {
	switch RoleType(role) {
	case RoleCustomer, RoleRestaurant, RoleDelivery, RoleAdmin:
		return true
	default:
		return false
	}
}
