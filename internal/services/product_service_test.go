package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"
)

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProducts := []models.Product{
		{ID: "1", Name: "Product A", Price: decimal.NewFromInt(10), Stock: 100},
		{ID: "2", Name: "Product B", Price: decimal.NewFromInt(20), Stock: 50},
	}
	filter := repositories.ProductFilter{Category: "Electronics", SortBy: repositories.SortPriceAsc}

	mockRepo.On("GetAll", filter).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(filter)

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProduct := &models.Product{ID: "1", Name: "Product A", Price: decimal.NewFromInt(10), Stock: 100}

	// Test successful retrieval
	mockRepo.On("GetByID", "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", "99").
		Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)).Once()
	product, err = service.GetProductByID("99")
	assert.Error(t, err)
	assert.Nil(t, product)
	var notFound *services.ProductNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "99", notFound.ProductID)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	newProduct := &models.Product{Name: "New Product", Price: decimal.NewFromInt(50), Stock: 20}

	// Test successful creation; the seller and active flag are set by the
	// service.
	mockRepo.On("Create", newProduct).Return(nil).Once()
	err := service.CreateProduct("seller-1", newProduct)
	assert.NoError(t, err)
	assert.Equal(t, "seller-1", newProduct.SellerID)
	assert.True(t, newProduct.IsActive)
	mockRepo.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", newProduct).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct("seller-1", newProduct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_RejectsBrokenDiscountWindow(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	start := time.Now()
	halfOpen := &models.Product{
		Name:              "Half Open",
		Price:             decimal.NewFromInt(50),
		DiscountStartDate: &start,
	}
	err := service.CreateProduct("seller-1", halfOpen)
	assert.ErrorIs(t, err, services.ErrInvalidDiscountWindow)

	end := start.AddDate(0, 0, -1)
	inverted := &models.Product{
		Name:              "Inverted",
		Price:             decimal.NewFromInt(50),
		DiscountStartDate: &start,
		DiscountEndDate:   &end,
	}
	err = service.CreateProduct("seller-1", inverted)
	assert.ErrorIs(t, err, services.ErrInvalidDiscountWindow)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_UpdateProduct(t *testing.T) {
	existing := &models.Product{ID: "1", Name: "Product A", Price: decimal.NewFromInt(10), SellerID: "seller-1"}
	updated := &models.Product{ID: "1", Name: "Product A Updated", Price: decimal.NewFromInt(12), Stock: 95}

	// Test successful update by the owning seller
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)
	mockRepo.On("GetByID", "1").Return(existing, nil).Once()
	mockRepo.On("Update", updated).Return(nil).Once()
	err := service.UpdateProduct("seller-1", updated)
	assert.NoError(t, err)
	assert.Equal(t, "seller-1", updated.SellerID)
	mockRepo.AssertExpectations(t)

	// A different seller gets a not-found, indistinguishable from a
	// missing product, and the update never reaches the repository. A
	// fresh mock keeps the AssertNotCalled check honest.
	mockRepo = new(MockProductRepository)
	service = services.NewProductService(mockRepo)
	mockRepo.On("GetByID", "1").Return(existing, nil).Once()
	err = service.UpdateProduct("seller-2", updated)
	var notFound *services.ProductNotFoundError
	assert.ErrorAs(t, err, &notFound)
	mockRepo.AssertNotCalled(t, "Update", mock.AnythingOfType("*models.Product"))
	mockRepo.AssertExpectations(t)

	// Test update of a missing product
	mockRepo.On("GetByID", "99").
		Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)).Once()
	err = service.UpdateProduct("seller-1", &models.Product{ID: "99", Name: "NonExistent", Price: decimal.NewFromInt(1)})
	assert.ErrorAs(t, err, &notFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	existing := &models.Product{ID: "1", Name: "Product A", SellerID: "seller-1"}

	// Test successful deletion by the owning seller
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)
	mockRepo.On("GetByID", "1").Return(existing, nil).Once()
	mockRepo.On("Delete", "1").Return(nil).Once()
	err := service.DeleteProduct("seller-1", "1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// A different seller cannot delete it, and no delete reaches the
	// repository. A fresh mock keeps the AssertNotCalled check honest.
	mockRepo = new(MockProductRepository)
	service = services.NewProductService(mockRepo)
	mockRepo.On("GetByID", "1").Return(existing, nil).Once()
	err = service.DeleteProduct("seller-2", "1")
	var notFound *services.ProductNotFoundError
	assert.ErrorAs(t, err, &notFound)
	mockRepo.AssertNotCalled(t, "Delete", "1")
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetDiscountedProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	expected := []models.Product{{ID: "1", Name: "Deal", DiscountPercentage: 30}}

	mockRepo.On("GetDiscounted", now, 20).Return(expected, nil).Once()

	products, err := service.GetDiscountedProducts(now, 20)
	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}
