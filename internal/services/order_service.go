package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/pkg/rabbitmq"
)

// CheckoutItem is one requested product-quantity pair.
type CheckoutItem struct {
	ProductID string `json:"product" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// CheckoutRequest is the client's view of the order being placed.
// ItemsPrice, TaxPrice, ShippingPrice and TotalPrice are client-declared:
// the server trusts the pre-discount arithmetic but independently
// recomputes the discount and subtracts it from TotalPrice. This trust
// boundary is part of the API contract, not an oversight.
type CheckoutRequest struct {
	Items           []CheckoutItem  `json:"order_items" validate:"dive"`
	ShippingAddress models.Address  `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method" validate:"required"`
	ItemsPrice      decimal.Decimal `json:"items_price"`
	TaxPrice        decimal.Decimal `json:"tax_price"`
	ShippingPrice   decimal.Decimal `json:"shipping_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
}

// OrderPaidEvent is published after an order is marked paid. The consumer
// applies the purchase-count side effect.
type OrderPaidEvent struct {
	OrderID string              `json:"order_id"`
	UserID  string              `json:"user_id"`
	Items   []OrderPaidLineItem `json:"items"`
}

// OrderPaidLineItem identifies a purchased product and quantity.
type OrderPaidLineItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderService handles order placement, retrieval and payment.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	mqClient    *rabbitmq.Client // RabbitMQ client, may be nil
}

// NewOrderService creates a new OrderService. mqClient may be nil, in
// which case the post-payment side effect is applied in-process instead
// of through the broker.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		mqClient:    mqClient,
	}
}

// Checkout places an order for the user at the current wall-clock time.
func (s *OrderService) Checkout(userID string, req CheckoutRequest) (*models.Order, error) {
	return s.CheckoutAt(userID, req, time.Now())
}

// appliedDecrement records a stock reservation that may need releasing.
type appliedDecrement struct {
	productID string
	quantity  int
}

// CheckoutAt places an order, pricing every line item at the given
// instant. Line items are processed sequentially in request order; each
// item's stock is reserved with an atomic conditional decrement before
// the next item is looked at. If a later item fails, the reservations
// made so far are released again, so a failed checkout leaves stock
// unchanged.
func (s *OrderService) CheckoutAt(userID string, req CheckoutRequest, now time.Time) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var (
		totalDiscount = decimal.Zero
		lineItems     = make([]models.OrderItem, 0, len(req.Items))
		applied       = make([]appliedDecrement, 0, len(req.Items))
	)

	for _, item := range req.Items {
		if item.Quantity < 1 {
			s.releaseStock(applied)
			return nil, fmt.Errorf("quantity must be at least 1 for product %s", item.ProductID)
		}

		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			s.releaseStock(applied)
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, &ProductNotFoundError{ProductID: item.ProductID}
			}
			return nil, fmt.Errorf("failed to look up product %s: %w", item.ProductID, err)
		}

		// Reserve stock with a conditional decrement. A failed decrement
		// means another checkout got there first or stock was simply too
		// low; either way the item cannot be fulfilled.
		if err := s.productRepo.DecrementStock(product.ID, item.Quantity); err != nil {
			s.releaseStock(applied)
			if errors.Is(err, repositories.ErrInsufficientStock) {
				return nil, &InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   item.Quantity,
				}
			}
			return nil, fmt.Errorf("failed to reserve stock for product %s: %w", product.ID, err)
		}
		applied = append(applied, appliedDecrement{productID: product.ID, quantity: item.Quantity})

		finalPrice := product.EffectivePriceAt(now)
		discount := product.Price.Sub(finalPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		totalDiscount = totalDiscount.Add(discount)

		lineItems = append(lineItems, models.OrderItem{
			ProductID:  product.ID,
			Quantity:   item.Quantity,
			Price:      product.Price,
			Discount:   discount,
			FinalPrice: finalPrice,
		})
	}

	newOrder := &models.Order{
		UserID:          userID,
		Items:           lineItems,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      req.ItemsPrice,
		TaxPrice:        req.TaxPrice,
		ShippingPrice:   req.ShippingPrice,
		TotalDiscount:   totalDiscount,
		TotalPrice:      req.TotalPrice.Sub(totalDiscount),
		Status:          models.OrderStatusPending,
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		s.releaseStock(applied)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publish(rabbitmq.RoutingKeyOrderCreated, map[string]interface{}{
		"order_id": newOrder.ID,
		"user_id":  newOrder.UserID,
		"status":   newOrder.Status,
		"total":    newOrder.TotalPrice,
	})

	return newOrder, nil
}

// releaseStock returns reserved units after a partial checkout failure.
// Best effort: a failed release is logged and skipped, never surfaced.
func (s *OrderService) releaseStock(applied []appliedDecrement) {
	for _, a := range applied {
		if err := s.productRepo.IncrementStock(a.productID, a.quantity); err != nil {
			log.Printf("Warning: failed to release %d units of product %s: %v", a.quantity, a.productID, err)
		}
	}
}

// GetOrderByID retrieves an order visible to the requesting user.
func (s *OrderService) GetOrderByID(id, userID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return order, nil
}

// GetMyOrders retrieves the user's orders, newest first.
func (s *OrderService) GetMyOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// MarkPaid records a payment confirmation on the user's order and
// triggers the purchase-count side effect. The side effect is
// fire-and-forget: its failure never fails or rolls back the payment.
// Re-paying an already-paid order is a no-op, so the purchase counters
// are applied at most once per order.
func (s *OrderService) MarkPaid(id, userID string, result models.PaymentResult) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	if order.IsPaid {
		return order, nil
	}

	paidAt := time.Now()
	order.IsPaid = true
	order.PaidAt = &paidAt
	order.PaymentResult = result

	if err := s.orderRepo.MarkPaid(order); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to mark order %s paid: %w", id, err)
	}

	event := OrderPaidEvent{OrderID: order.ID, UserID: order.UserID}
	for _, item := range order.Items {
		event.Items = append(event.Items, OrderPaidLineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if s.mqClient != nil {
		s.publish(rabbitmq.RoutingKeyOrderPaid, event)
	} else {
		// No broker configured; apply the side effect in-process, still
		// detached from the caller's response.
		go s.ApplyPurchaseCounts(event)
	}

	return order, nil
}

// HandleOrderPaidMessage is the broker consumer entry point for
// order.paid events.
func (s *OrderService) HandleOrderPaidMessage(body []byte) error {
	var event OrderPaidEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode order paid event: %w", err)
	}
	s.ApplyPurchaseCounts(event)
	return nil
}

// ApplyPurchaseCounts bumps each purchased product's purchase counter by
// the bought quantity. Best-effort telemetry: failures are logged and
// skipped.
func (s *OrderService) ApplyPurchaseCounts(event OrderPaidEvent) {
	for _, item := range event.Items {
		if err := s.productRepo.IncrementPurchaseCount(item.ProductID, item.Quantity); err != nil {
			log.Printf("Warning: failed to increment purchase count for product %s (order %s): %v",
				item.ProductID, event.OrderID, err)
		}
	}
}

// UpdateOrderStatus updates the status of an existing order.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("invalid order status: %s", status)
	}

	err := s.orderRepo.UpdateStatus(id, status)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	return nil
}

// publish sends an event to the broker if one is configured. Publishing
// is best effort; failures are logged, never propagated.
func (s *OrderService) publish(routingKey string, payload interface{}) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
