package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pasar/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create persists a new order together with its line items.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByIDForUser retrieves an order by ID, visible only to its owner.
// The ownership check is part of the query itself.
func (r *GORMOrderRepository) GetByIDForUser(id, userID string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").
		First(&order, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByUser retrieves all orders belonging to a user, newest first.
func (r *GORMOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// UpdateStatus updates the status of an order.
func (r *GORMOrderRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// MarkPaid persists the payment fields of an already-loaded order.
func (r *GORMOrderRepository) MarkPaid(order *models.Order) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND user_id = ?", order.ID, order.UserID).
		Updates(map[string]interface{}{
			"is_paid":               order.IsPaid,
			"paid_at":               order.PaidAt,
			"payment_id":            order.PaymentResult.ID,
			"payment_status":        order.PaymentResult.Status,
			"payment_update_time":   order.PaymentResult.UpdateTime,
			"payment_email_address": order.PaymentResult.EmailAddress,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to mark order %s paid: %w", order.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s: %w", order.ID, ErrNotFound)
	}
	return nil
}

// SellerSales aggregates revenue and order count over the line items of a
// seller's products. Revenue weights each line's final unit price by its
// quantity.
func (r *GORMOrderRepository) SellerSales(sellerID string) (SellerSales, error) {
	var sales SellerSales
	err := r.db.Table("order_items").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.seller_id = ?", sellerID).
		Select("COALESCE(SUM(order_items.final_price * order_items.quantity), 0) AS total_revenue, " +
			"COUNT(DISTINCT order_items.order_id) AS total_orders").
		Scan(&sales).Error
	if err != nil {
		return SellerSales{}, fmt.Errorf("failed to get sales for seller %s: %w", sellerID, err)
	}
	return sales, nil
}
