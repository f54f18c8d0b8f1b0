package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses. An order starts as pending and is only ever
// status-transitioned, never deleted.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderItem is a single line of an order with pricing frozen at purchase
// time. ProductID is a weak reference: the product may later change price
// or disappear without affecting this record.
type OrderItem struct {
	ID         uint            `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID    string          `json:"-" gorm:"index;type:varchar(36)"`
	ProductID  string          `json:"product_id" gorm:"type:varchar(36)"`
	Quantity   int             `json:"quantity" validate:"required,gte=1"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(12,2)"`       // Unit list price at purchase time
	Discount   decimal.Decimal `json:"discount" gorm:"type:decimal(12,2)"`    // Total discount across the quantity
	FinalPrice decimal.Decimal `json:"final_price" gorm:"type:decimal(12,2)"` // Unit price actually charged
}

// PaymentResult holds the payment confirmation as reported by the payment
// provider. Set only when the order is marked paid.
type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	UpdateTime   string `json:"update_time"`
	EmailAddress string `json:"email_address"`
}

// Order represents a finalized purchase. Line items and totals are
// immutable snapshots; only payment and status fields change afterwards.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"user_id" gorm:"index;type:varchar(36)"`
	Items           []OrderItem     `json:"order_items" gorm:"foreignKey:OrderID"`
	ShippingAddress Address         `json:"shipping_address" gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod   string          `json:"payment_method" gorm:"type:varchar(50)"`
	PaymentResult   PaymentResult   `json:"payment_result" gorm:"embedded;embeddedPrefix:payment_"`
	ItemsPrice      decimal.Decimal `json:"items_price" gorm:"type:decimal(12,2)"`
	TaxPrice        decimal.Decimal `json:"tax_price" gorm:"type:decimal(12,2)"`
	ShippingPrice   decimal.Decimal `json:"shipping_price" gorm:"type:decimal(12,2)"`
	TotalDiscount   decimal.Decimal `json:"total_discount" gorm:"type:decimal(12,2)"`
	TotalPrice      decimal.Decimal `json:"total_price" gorm:"type:decimal(12,2)"`
	IsPaid          bool            `json:"is_paid"`
	PaidAt          *time.Time      `json:"paid_at"`
	IsDelivered     bool            `json:"is_delivered"`
	DeliveredAt     *time.Time      `json:"delivered_at"`
	Status          string          `json:"status" gorm:"type:varchar(20);default:pending"`
	gorm.Model      // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
