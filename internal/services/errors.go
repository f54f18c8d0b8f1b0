package services

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced to handlers, which map them onto HTTP status
// codes.
var (
	// ErrEmptyCart is returned when a checkout carries no line items.
	ErrEmptyCart = errors.New("no items in the order")
	// ErrOrderNotFound is returned for missing orders and for orders not
	// owned by the requesting user; the two cases are indistinguishable
	// on purpose.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords, so login does not reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRole is returned when a role change names an unknown role
	// or the caller is an admin.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidDiscountWindow is returned when a product carries a
	// half-open or inverted discount window.
	ErrInvalidDiscountWindow = errors.New("invalid discount window")
)

// ProductNotFoundError indicates a requested product does not exist.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError indicates a line item asked for more units than
// the product has in stock. It carries the product's display name for
// the client-facing message.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductName)
}
