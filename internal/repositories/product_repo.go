package repositories

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"pasar/internal/models"
)

// Sentinel errors returned by repositories. Services translate these into
// their own error taxonomy before they reach a handler.
var (
	// ErrNotFound signals that the requested record does not exist (or is
	// not visible to the requesting user).
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientStock signals that a conditional stock decrement did
	// not apply because the remaining stock was too low.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product sort keys accepted by ProductFilter.SortBy.
const (
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortPopularity = "popularity"
	SortRating     = "rating"
	SortNewest     = "newest"
	SortDiscount   = "discount"
)

// ProductFilter narrows and orders catalog listings. Zero values mean
// "no constraint".
type ProductFilter struct {
	Search      string
	Category    string
	Subcategory string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Discounted  bool
	SortBy      string
}

// SellerProductStats aggregates a seller's catalog.
type SellerProductStats struct {
	TotalProducts  int64 `json:"total_products"`
	ActiveProducts int64 `json:"active_products"`
	TotalSales     int64 `json:"total_sales"`
}

// ProductRepository defines the interface for product data access.
//
// DecrementStock must be an atomic conditional update at the storage
// layer (decrement only where enough stock remains), never a
// read-then-write pair, so that concurrent checkouts of the same product
// cannot drive stock negative.
type ProductRepository interface {
	GetAll(filter ProductFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error

	GetDiscounted(now time.Time, limit int) ([]models.Product, error)
	GetPopularByCategory(category string, limit int) ([]models.Product, error)
	GetBySeller(sellerID string) ([]models.Product, error)

	DecrementStock(id string, quantity int) error
	IncrementStock(id string, quantity int) error
	IncrementPurchaseCount(id string, quantity int) error

	SellerStats(sellerID string) (SellerProductStats, error)
}
