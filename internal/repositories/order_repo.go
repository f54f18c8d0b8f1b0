package repositories

import (
	"github.com/shopspring/decimal"

	"pasar/internal/models"
)

// SellerSales aggregates revenue over the line items of a seller's
// products across all orders.
type SellerSales struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalOrders  int64           `json:"total_orders"`
}

// OrderRepository defines the interface for order data access. Reads are
// scoped to the owning user inside the query itself, not filtered after
// a broader fetch.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByIDForUser(id, userID string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	UpdateStatus(id string, status string) error
	// MarkPaid persists the payment fields (IsPaid, PaidAt, PaymentResult)
	// of an already-loaded order.
	MarkPaid(order *models.Order) error
	SellerSales(sellerID string) (SellerSales, error)
}
