package transition

import (
	"fmt"

	"orderflow/internal/entities"
)

// ruleKey identifies one legal move of the status graph for one role.
type ruleKey struct {
	role entities.RoleType
	from entities.OrderStatusType
	to   entities.OrderStatusType
}

// rules is the authoritative per-role transition table. Admin is absent on
// purpose: the admin override is handled in Validate, not in the table.
var rules = map[ruleKey]struct{}{
	{entities.RolePayment, entities.OrderPendingPayment, entities.OrderPaid}: {},

	{entities.RoleRestaurant, entities.OrderPaid, entities.OrderPreparing}:     {},
	{entities.RoleRestaurant, entities.OrderPaid, entities.OrderRejected}:      {},
	{entities.RoleRestaurant, entities.OrderPreparing, entities.OrderReady}:    {},
	{entities.RoleRestaurant, entities.OrderPreparing, entities.OrderCancelled}: {},

	{entities.RoleDelivery, entities.OrderReady, entities.OrderPickedUp}:     {},
	{entities.RoleDelivery, entities.OrderPickedUp, entities.OrderDelivered}: {},

	{entities.RoleCustomer, entities.OrderPendingPayment, entities.OrderCancelled}: {},
	{entities.RoleCustomer, entities.OrderPaid, entities.OrderCancelled}:           {},
}

// Validator is a pure lookup over the status graph. It carries no state and
// performs no I/O; every mutation path must consult it before writing.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate reports whether role may move an order from current to requested.
// Repeating the current status is rejected, so a duplicate request can never
// apply a transition twice. The admin override accepts any distinct pair and
// is expected to be logged by the caller.
func (v *Validator) Validate(current entities.OrderStatusType, role entities.RoleType, requested entities.OrderStatusType) error {
	if requested == current {
		return fmt.Errorf("%w: order is already %s", ErrInvalidTransition, current)
	}

	if role == entities.RoleAdmin {
		return nil
	}

	if current.IsTerminal() {
		return fmt.Errorf("%w: %s is terminal, cannot move to %s", ErrInvalidTransition, current, requested)
	}

	if _, ok := rules[ruleKey{role: role, from: current, to: requested}]; !ok {
		return fmt.Errorf("%w: %s -> %s is not allowed for role %s", ErrInvalidTransition, current, requested, role)
	}
	return nil
}

// NextStatuses returns every status reachable from current by role.
func (v *Validator) NextStatuses(current entities.OrderStatusType, role entities.RoleType) []entities.OrderStatusType {
	var next []entities.OrderStatusType
	for key := range rules {
		if key.role == role && key.from == current {
			next = append(next, key.to)
		}
	}
	return next
}
