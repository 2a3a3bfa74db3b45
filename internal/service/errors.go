package service

import "errors"

// Domain errors. Handlers map these to HTTP status codes; services wrap them
// with fmt.Errorf("…: %w", err) so callers can test with errors.Is.
var (
	// ErrInvalidQuantity: a ledger append or adjustment with quantity <= 0.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	// ErrInvalidLineItem: an order item with quantity <= 0 or negative price.
	ErrInvalidLineItem = errors.New("invalid order line item")
	// ErrEmptyOrder: createOrder called with no items.
	ErrEmptyOrder = errors.New("order must contain at least one item")
	// ErrOrderNotFound: no order with that id exists for the tenant.
	ErrOrderNotFound = errors.New("order not found")
	// ErrProductNotFound: catalog lookup miss. During fulfillment this is
	// swallowed (best-effort deduction); manual adjustments surface it.
	ErrProductNotFound = errors.New("product not found")
	// ErrStorageUnavailable: the underlying store rejected a write outside a
	// fulfillment transaction.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrTransactionAborted: the atomic order-fulfillment write failed and
	// was rolled back; no partial order or ledger entries remain visible.
	ErrTransactionAborted = errors.New("order transaction aborted")
)
