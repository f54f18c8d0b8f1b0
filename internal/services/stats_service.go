package services

import (
	"fmt"

	"pasar/internal/repositories"
)

// SellerStats combines catalog and sales aggregates for a seller.
type SellerStats struct {
	Products repositories.SellerProductStats `json:"products"`
	Sales    repositories.SellerSales        `json:"sales"`
}

// StatsService computes seller dashboards.
type StatsService struct {
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(productRepo repositories.ProductRepository, orderRepo repositories.OrderRepository) *StatsService {
	return &StatsService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// GetSellerStats aggregates the seller's product counters and sales.
func (s *StatsService) GetSellerStats(sellerID string) (*SellerStats, error) {
	products, err := s.productRepo.SellerStats(sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product stats: %w", err)
	}
	sales, err := s.orderRepo.SellerSales(sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales stats: %w", err)
	}
	return &SellerStats{Products: products, Sales: sales}, nil
}
