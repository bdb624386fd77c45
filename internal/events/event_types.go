package events

import (
	"time"

	"github.com/hjalloh/campsite/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBookingCreated   EventType = "booking_created"
	EventBookingModified  EventType = "booking_modified"
	EventBookingCancelled EventType = "booking_cancelled"
)

// Event represents a domain event emitted by services after a committed
// write to the bookings collection.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	BookingID    int64       `json:"booking_id"`
	ReferenceKey string      `json:"reference_key"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// BookingCreatedPayload payload.
type BookingCreatedPayload struct {
	VisitorEmail  string    `json:"visitor_email"`
	ArrivalDate   time.Time `json:"arrival_date"`
	DepartureDate time.Time `json:"departure_date"`
}

// BookingModifiedPayload payload.
type BookingModifiedPayload struct {
	OldArrivalDate   time.Time `json:"old_arrival_date"`
	OldDepartureDate time.Time `json:"old_departure_date"`
	NewArrivalDate   time.Time `json:"new_arrival_date"`
	NewDepartureDate time.Time `json:"new_departure_date"`
}

// BookingCancelledPayload payload.
type BookingCancelledPayload struct {
	ArrivalDate   time.Time            `json:"arrival_date"`
	DepartureDate time.Time            `json:"departure_date"`
	OldStatus     domain.BookingStatus `json:"old_status"`
}
