package services

import (
	"errors"
	"fmt"
	"time"

	"pasar/internal/models"
	"pasar/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves active products matching the filter.
func (s *ProductService) GetAllProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.repo.GetAll(filter)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &ProductNotFoundError{ProductID: id}
		}
		return nil, err
	}
	return product, nil
}

// GetDiscountedProducts retrieves products currently on discount.
func (s *ProductService) GetDiscountedProducts(now time.Time, limit int) ([]models.Product, error) {
	return s.repo.GetDiscounted(now, limit)
}

// GetPopularByCategory retrieves the most purchased products in a
// category.
func (s *ProductService) GetPopularByCategory(category string, limit int) ([]models.Product, error) {
	return s.repo.GetPopularByCategory(category, limit)
}

// GetSellerProducts retrieves the seller's own products.
func (s *ProductService) GetSellerProducts(sellerID string) ([]models.Product, error) {
	return s.repo.GetBySeller(sellerID)
}

// CreateProduct creates a new product owned by the seller.
func (s *ProductService) CreateProduct(sellerID string, product *models.Product) error {
	product.SellerID = sellerID
	product.IsActive = true
	if err := validateDiscountWindow(product); err != nil {
		return err
	}
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product. Only the owning seller may
// update it; a product owned by someone else is reported as not found,
// the same as a missing one.
func (s *ProductService) UpdateProduct(sellerID string, product *models.Product) error {
	existing, err := s.repo.GetByID(product.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &ProductNotFoundError{ProductID: product.ID}
		}
		return err
	}
	if existing.SellerID != sellerID {
		return &ProductNotFoundError{ProductID: product.ID}
	}
	product.SellerID = existing.SellerID
	if err := validateDiscountWindow(product); err != nil {
		return err
	}
	return s.repo.Update(product)
}

// DeleteProduct deletes a product owned by the seller.
func (s *ProductService) DeleteProduct(sellerID, id string) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &ProductNotFoundError{ProductID: id}
		}
		return err
	}
	if existing.SellerID != sellerID {
		return &ProductNotFoundError{ProductID: id}
	}
	return s.repo.Delete(id)
}

// validateDiscountWindow rejects half-open or inverted discount windows.
func validateDiscountWindow(product *models.Product) error {
	start, end := product.DiscountStartDate, product.DiscountEndDate
	if (start == nil) != (end == nil) {
		return fmt.Errorf("%w: requires both a start and an end date", ErrInvalidDiscountWindow)
	}
	if start != nil && end.Before(*start) {
		return fmt.Errorf("%w: end date is before its start date", ErrInvalidDiscountWindow)
	}
	return nil
}
