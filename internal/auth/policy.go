package auth

import "fmt"

// Operation names a protected action of the order core.
type Operation string

const (
	OpCreateOrder         Operation = "create_order"
	OpGetOrder            Operation = "get_order"
	OpGetOrdersByEmail    Operation = "get_orders_by_email"
	OpListAllOrders       Operation = "list_all_orders"
	OpUpdateOrderStatus   Operation = "update_order_status"
	OpUpdatePaymentStatus Operation = "update_payment_status"
	OpDeleteOrder         Operation = "delete_order"
	OpAdminStats          Operation = "admin_stats"
)

// adminOnly lists the operations restricted to administrators. Everything
// else requires authentication only; reads by id are not ownership-scoped.
var adminOnly = map[Operation]bool{
	OpListAllOrders:       true,
	OpUpdateOrderStatus:   true,
	OpUpdatePaymentStatus: true,
	OpDeleteOrder:         true,
	OpAdminStats:          true,
}

// Allowed reports whether the given role may perform the operation.
func Allowed(op Operation, role Role) bool {
	if adminOnly[op] {
		return role == RoleAdmin
	}
	return role == RoleUser || role == RoleAdmin
}

// Authorize checks the role policy and returns ErrForbidden when the role may
// not perform the operation.
func Authorize(op Operation, role Role) error {
	if !Allowed(op, role) {
		return fmt.Errorf("%w: %s for role %s", ErrForbidden, op, role)
	}
	return nil
}
