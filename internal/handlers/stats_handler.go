package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"pasar/internal/middleware"
	"pasar/internal/services"
)

// StatsHandler serves the seller dashboard.
type StatsHandler struct {
	service *services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{
		service: service,
	}
}

// RegisterRoutes registers the seller stats routes. The router must
// already carry AuthRequired and SellerRequired.
func (h *StatsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/seller/stats", h.HandleGetSellerStats)
}

// HandleGetSellerStats aggregates the authenticated seller's catalog and
// sales figures.
func (h *StatsHandler) HandleGetSellerStats(c *fiber.Ctx) error {
	stats, err := h.service.GetSellerStats(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting seller stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve seller stats",
			"error":   err.Error(),
		})
	}
	return c.JSON(stats)
}
