package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pasar/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	// sellerOf maps product ID to seller ID so SellerSales can aggregate
	// without a product repository.
	sellerOf map[string]string
	mu       sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[string]models.Order),
		sellerOf: make(map[string]string),
	}
}

// RegisterSeller records the seller of a product for SellerSales
// aggregation.
func (r *MockOrderRepository) RegisterSeller(productID, sellerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sellerOf[productID] = sellerID
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// GetByIDForUser returns an order by ID, visible only to its owner.
func (r *MockOrderRepository) GetByIDForUser(id, userID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok || order.UserID != userID {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	return &order, nil
}

// GetByUser returns all orders belonging to a user, newest first.
func (r *MockOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			orderList = append(orderList, order)
		}
	}
	sort.SliceStable(orderList, func(i, j int) bool {
		return orderList[i].CreatedAt.After(orderList[j].CreatedAt)
	})
	return orderList, nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// MarkPaid persists the payment fields of an already-loaded order.
func (r *MockOrderRepository) MarkPaid(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.ID]
	if !ok || stored.UserID != order.UserID {
		return fmt.Errorf("order with ID %s: %w", order.ID, ErrNotFound)
	}
	stored.IsPaid = order.IsPaid
	stored.PaidAt = order.PaidAt
	stored.PaymentResult = order.PaymentResult
	stored.UpdatedAt = time.Now()
	r.orders[order.ID] = stored
	return nil
}

// SellerSales aggregates revenue over line items of products registered
// to the seller via RegisterSeller.
func (r *MockOrderRepository) SellerSales(sellerID string) (SellerSales, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sales := SellerSales{TotalRevenue: decimal.Zero}
	counted := make(map[string]bool)
	for _, order := range r.orders {
		for _, item := range order.Items {
			if r.sellerOf[item.ProductID] != sellerID {
				continue
			}
			qty := decimal.NewFromInt(int64(item.Quantity))
			sales.TotalRevenue = sales.TotalRevenue.Add(item.FinalPrice.Mul(qty))
			if !counted[order.ID] {
				counted[order.ID] = true
				sales.TotalOrders++
			}
		}
	}
	return sales, nil
}
