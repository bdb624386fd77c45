package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hjalloh/campsite/internal/api/dto"
	"github.com/hjalloh/campsite/internal/domain"
	"github.com/hjalloh/campsite/internal/service"
	apperrors "github.com/hjalloh/campsite/pkg/errorutil"
)

// BookingsHandler manages the booking endpoints.
type BookingsHandler struct {
	service *service.BookingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookingService *service.BookingService) *BookingsHandler {
	return &BookingsHandler{service: bookingService}
}

// ListBookings GET /bookings.
func (h *BookingsHandler) ListBookings(c *fiber.Ctx) error {
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return err
	}
	bookings, err := h.service.Bookings(c.UserContext(), from, to)
	if err != nil {
		return err
	}
	items := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, bookingResponse(&bookings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateBooking POST /bookings.
func (h *BookingsHandler) CreateBooking(c *fiber.Ctx) error {
	input, err := parseBookingBody(c)
	if err != nil {
		return err
	}
	booking, err := h.service.Book(c.UserContext(), *input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.BookingCreatedResponse{
		ID:           booking.ID,
		ReferenceKey: booking.ReferenceKey,
	}})
}

// ModifyBooking PUT /bookings/:id.
func (h *BookingsHandler) ModifyBooking(c *fiber.Ctx) error {
	id, err := parseBookingID(c)
	if err != nil {
		return err
	}
	input, err := parseBookingBody(c)
	if err != nil {
		return err
	}
	booking, err := h.service.Modify(c.UserContext(), id, *input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponse(booking)})
}

// CancelBooking DELETE /bookings/:id.
func (h *BookingsHandler) CancelBooking(c *fiber.Ctx) error {
	id, err := parseBookingID(c)
	if err != nil {
		return err
	}
	booking, err := h.service.Cancel(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponse(booking)})
}

func parseBookingID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid booking id", nil)
	}
	return id, nil
}

func parseBookingBody(c *fiber.Ctx) (*service.BookingInput, error) {
	var req dto.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.VisitorEmail) == "" || strings.TrimSpace(req.VisitorFullName) == "" {
		return nil, apperrors.NewValidationError("visitor_email and visitor_full_name required", nil)
	}
	arrival, err := domain.ParseDate(req.ArrivalDate)
	if err != nil {
		return nil, apperrors.NewValidationError("arrival_date must be a valid YYYY-MM-DD date", nil)
	}
	departure, err := domain.ParseDate(req.DepartureDate)
	if err != nil {
		return nil, apperrors.NewValidationError("departure_date must be a valid YYYY-MM-DD date", nil)
	}
	return &service.BookingInput{
		VisitorEmail:    req.VisitorEmail,
		VisitorFullName: req.VisitorFullName,
		ArrivalDate:     arrival,
		DepartureDate:   departure,
	}, nil
}

func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	val := c.Query(name)
	if val == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(val)
	if err != nil {
		return nil, apperrors.NewValidationError(name+" must be a valid YYYY-MM-DD date", nil)
	}
	return &t, nil
}

func bookingResponse(booking *domain.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:              booking.ID,
		ReferenceKey:    booking.ReferenceKey,
		VisitorEmail:    booking.VisitorEmail,
		VisitorFullName: booking.VisitorFullName,
		ArrivalDate:     domain.FormatDate(booking.ArrivalDate),
		DepartureDate:   domain.FormatDate(booking.DepartureDate),
		Status:          booking.Status,
	}
}
