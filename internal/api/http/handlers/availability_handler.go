package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hjalloh/campsite/internal/api/dto"
	"github.com/hjalloh/campsite/internal/domain"
	"github.com/hjalloh/campsite/internal/service"
)

// AvailabilityHandler serves the free date ranges of the campsite.
type AvailabilityHandler struct {
	service *service.AvailabilityService
}

// NewAvailabilityHandler constructs handler.
func NewAvailabilityHandler(availabilityService *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: availabilityService}
}

// ListAvailabilities GET /availabilities.
func (h *AvailabilityHandler) ListAvailabilities(c *fiber.Ctx) error {
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return err
	}
	intervals, err := h.service.Availabilities(c.UserContext(), from, to)
	if err != nil {
		return err
	}
	items := make([]dto.AvailabilityResponse, 0, len(intervals))
	for _, interval := range intervals {
		items = append(items, dto.AvailabilityResponse{
			Start: domain.FormatDate(interval.Start),
			End:   domain.FormatDate(interval.End),
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
