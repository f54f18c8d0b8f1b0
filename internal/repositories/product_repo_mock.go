package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pasar/internal/models"
)

// MockProductRepository is an in-memory implementation of
// ProductRepository, used for local runs without a database and in tests.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns active products matching the filter.
func (r *MockProductRepository) GetAll(filter ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if matchesFilter(&p, filter) {
			productList = append(productList, p)
		}
	}
	sortProducts(productList, filter.SortBy)
	return productList, nil
}

func matchesFilter(p *models.Product, filter ProductFilter) bool {
	if !p.IsActive {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		haystack := strings.ToLower(p.Name + " " + p.Description + " " + p.Brand + " " + p.Category + " " + p.Subcategory)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	if filter.Category != "" && p.Category != filter.Category {
		return false
	}
	if filter.Subcategory != "" && p.Subcategory != filter.Subcategory {
		return false
	}
	if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
		return false
	}
	if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
		return false
	}
	if filter.Discounted && p.DiscountPercentage <= 0 && !p.DiscountPrice.IsPositive() {
		return false
	}
	return true
}

func sortProducts(products []models.Product, sortBy string) {
	sort.SliceStable(products, func(i, j int) bool {
		switch sortBy {
		case SortPriceAsc:
			return products[i].Price.LessThan(products[j].Price)
		case SortPriceDesc:
			return products[i].Price.GreaterThan(products[j].Price)
		case SortPopularity:
			return products[i].PurchaseCount > products[j].PurchaseCount
		case SortRating:
			return products[i].Rating > products[j].Rating
		case SortDiscount:
			return products[i].DiscountPercentage > products[j].DiscountPercentage
		default:
			return products[i].CreatedAt.After(products[j].CreatedAt)
		}
	})
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// GetDiscounted returns products whose percentage-discount window is
// active at now, or which carry a flat discount price.
func (r *MockProductRepository) GetDiscounted(now time.Time, limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0)
	for _, p := range r.products {
		if !p.IsActive {
			continue
		}
		if p.IsOnDiscountAt(now) || p.DiscountPrice.IsPositive() {
			productList = append(productList, p)
		}
	}
	sortProducts(productList, SortDiscount)
	if limit > 0 && len(productList) > limit {
		productList = productList[:limit]
	}
	return productList, nil
}

// GetPopularByCategory returns the most purchased products in a category.
func (r *MockProductRepository) GetPopularByCategory(category string, limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0)
	for _, p := range r.products {
		if p.IsActive && p.Category == category {
			productList = append(productList, p)
		}
	}
	sortProducts(productList, SortPopularity)
	if limit > 0 && len(productList) > limit {
		productList = productList[:limit]
	}
	return productList, nil
}

// GetBySeller returns all products owned by a seller, newest first.
func (r *MockProductRepository) GetBySeller(sellerID string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0)
	for _, p := range r.products {
		if p.SellerID == sellerID {
			productList = append(productList, p)
		}
	}
	sortProducts(productList, SortNewest)
	return productList, nil
}

// DecrementStock checks and decrements under the same lock, mirroring the
// conditional-update semantics of the GORM implementation.
func (r *MockProductRepository) DecrementStock(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	if product.Stock < quantity {
		return fmt.Errorf("product %s: %w", id, ErrInsufficientStock)
	}
	product.Stock -= quantity
	r.products[id] = product
	return nil
}

// IncrementStock releases previously reserved stock.
func (r *MockProductRepository) IncrementStock(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	product.Stock += quantity
	r.products[id] = product
	return nil
}

// IncrementPurchaseCount bumps the cumulative purchase counter.
func (r *MockProductRepository) IncrementPurchaseCount(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	product.PurchaseCount += quantity
	r.products[id] = product
	return nil
}

// SellerStats aggregates a seller's catalog counters.
func (r *MockProductRepository) SellerStats(sellerID string) (SellerProductStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats SellerProductStats
	for _, p := range r.products {
		if p.SellerID != sellerID {
			continue
		}
		stats.TotalProducts++
		if p.IsActive {
			stats.ActiveProducts++
		}
		stats.TotalSales += int64(p.PurchaseCount)
	}
	return stats, nil
}
