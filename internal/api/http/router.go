package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hjalloh/campsite/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Bookings     *handlers.BookingsHandler
	Availability *handlers.AvailabilityHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Get("/availabilities", cfg.Availability.ListAvailabilities)

	bookings := app.Group("/bookings")
	bookings.Get("/", cfg.Bookings.ListBookings)
	bookings.Post("/", cfg.Bookings.CreateBooking)
	bookings.Put("/:id", cfg.Bookings.ModifyBooking)
	bookings.Delete("/:id", cfg.Bookings.CancelBooking)
}
