package main

import (
	"io/ioutil"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"
)

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(ioutil.Discard)
	os.Exit(m.Run())
}

func TestSeedDataPopulatesEmptyCatalog(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	userRepo := repositories.NewMockUserRepository()
	authService := services.NewAuthService(userRepo, "test_jwt_secret")

	seedData(authService, productRepo)

	// The demo seller exists and owns every seeded product.
	seller, err := userRepo.GetByEmail("seller@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSeller, seller.Role)

	products, err := productRepo.GetAll(repositories.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 3)
	for _, p := range products {
		assert.Equal(t, seller.ID, p.SellerID)
		assert.True(t, p.IsActive)
		assert.True(t, p.Price.IsPositive())
	}
}

func TestSeedDataIsIdempotent(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	userRepo := repositories.NewMockUserRepository()
	authService := services.NewAuthService(userRepo, "test_jwt_secret")

	seedData(authService, productRepo)
	seedData(authService, productRepo)

	products, err := productRepo.GetAll(repositories.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestSeedDataIncludesLiveDiscountWindow(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	userRepo := repositories.NewMockUserRepository()
	authService := services.NewAuthService(userRepo, "test_jwt_secret")

	seedData(authService, productRepo)

	products, err := productRepo.GetAll(repositories.ProductFilter{})
	require.NoError(t, err)

	// At least one seeded product carries an active percentage discount,
	// so the discounted listing is never empty on a fresh install.
	now := time.Now()
	onDiscount := 0
	for i := range products {
		if products[i].IsOnDiscountAt(now) {
			onDiscount++
			assert.True(t, products[i].EffectivePriceAt(now).LessThan(products[i].Price))
		}
	}
	assert.GreaterOrEqual(t, onDiscount, 1)
}
