package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
	"github.com/Moussassoss/citizens-complaints/internal/location"
	"github.com/Moussassoss/citizens-complaints/internal/routing"
)

// ReferenceHandler serves the closed enumerations and location tree the
// submission form and dashboard render.
type ReferenceHandler struct {
	locations *location.Dataset
}

// NewReferenceHandler constructs handler.
func NewReferenceHandler(locations *location.Dataset) *ReferenceHandler {
	return &ReferenceHandler{locations: locations}
}

// Categories GET /api/v1/reference/categories. Each entry names the agency
// that will receive complaints of that category.
func (h *ReferenceHandler) Categories(c *fiber.Ctx) error {
	type categoryEntry struct {
		Name   domain.Category `json:"name"`
		Agency domain.Agency   `json:"agency"`
	}
	categories := routing.Categories()
	items := make([]categoryEntry, 0, len(categories))
	for _, category := range categories {
		items = append(items, categoryEntry{Name: category, Agency: routing.Route(category)})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Agencies GET /api/v1/reference/agencies.
func (h *ReferenceHandler) Agencies(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": routing.Agencies()})
}

// Statuses GET /api/v1/reference/statuses.
func (h *ReferenceHandler) Statuses(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": domain.Statuses()})
}

// Locations GET /api/v1/reference/locations.
func (h *ReferenceHandler) Locations(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.locations.Tree()})
}
