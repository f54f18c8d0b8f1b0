package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pasar/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves active products matching the filter.
func (r *GORMProductRepository) GetAll(filter ProductFilter) ([]models.Product, error) {
	query := r.db.Where("is_active = ?", true)

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"name LIKE ? OR description LIKE ? OR brand LIKE ? OR category LIKE ? OR subcategory LIKE ?",
			like, like, like, like, like,
		)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Subcategory != "" {
		query = query.Where("subcategory = ?", filter.Subcategory)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", filter.MaxPrice)
	}
	if filter.Discounted {
		query = query.Where("discount_percentage > 0 OR discount_price > 0")
	}

	query = query.Order(orderClause(filter.SortBy))

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

func orderClause(sortBy string) string {
	switch sortBy {
	case SortPriceAsc:
		return "price ASC"
	case SortPriceDesc:
		return "price DESC"
	case SortPopularity:
		return "purchase_count DESC"
	case SortRating:
		return "rating DESC"
	case SortDiscount:
		return "discount_percentage DESC"
	case SortNewest:
		return "created_at DESC"
	default:
		return "created_at DESC"
	}
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound if no rows were
		// affected by an update, so we check RowsAffected.
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetDiscounted retrieves active products with a live percentage-discount
// window or a flat discount price, highest percentage first.
func (r *GORMProductRepository) GetDiscounted(now time.Time, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Where("is_active = ?", true).
		Where("(discount_percentage > 0 AND discount_start_date <= ? AND discount_end_date >= ?) OR discount_price > 0", now, now).
		Order("discount_percentage DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get discounted products: %w", err)
	}
	return products, nil
}

// GetPopularByCategory retrieves the most purchased active products in a
// category.
func (r *GORMProductRepository) GetPopularByCategory(category string, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Where("category = ? AND is_active = ?", category, true).
		Order("purchase_count DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get popular products for category %s: %w", category, err)
	}
	return products, nil
}

// GetBySeller retrieves all products owned by a seller, newest first.
func (r *GORMProductRepository) GetBySeller(sellerID string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products for seller %s: %w", sellerID, err)
	}
	return products, nil
}

// DecrementStock applies a single conditional UPDATE: the decrement only
// happens where enough stock remains, so concurrent decrements of the
// same product cannot drive stock negative.
func (r *GORMProductRepository) DecrementStock(id string, quantity int) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to decrement stock for product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, ErrInsufficientStock)
	}
	return nil
}

// IncrementStock releases previously reserved stock, e.g. when a later
// line item of the same checkout fails.
func (r *GORMProductRepository) IncrementStock(id string, quantity int) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to increment stock for product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// IncrementPurchaseCount bumps the cumulative purchase counter.
func (r *GORMProductRepository) IncrementPurchaseCount(id string, quantity int) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("purchase_count", gorm.Expr("purchase_count + ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to increment purchase count for product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// SellerStats aggregates a seller's catalog counters.
func (r *GORMProductRepository) SellerStats(sellerID string) (SellerProductStats, error) {
	var stats SellerProductStats
	err := r.db.Model(&models.Product{}).
		Where("seller_id = ?", sellerID).
		Select("COUNT(*) AS total_products, " +
			"COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0) AS active_products, " +
			"COALESCE(SUM(purchase_count), 0) AS total_sales").
		Scan(&stats).Error
	if err != nil {
		return SellerProductStats{}, fmt.Errorf("failed to get stats for seller %s: %w", sellerID, err)
	}
	return stats, nil
}
