package dto

import (
	"github.com/hjalloh/campsite/internal/domain"
)

// BookingRequest is the payload for creating or modifying a booking.
// Dates are calendar days in YYYY-MM-DD form.
type BookingRequest struct {
	VisitorEmail    string `json:"visitor_email"`
	VisitorFullName string `json:"visitor_full_name"`
	ArrivalDate     string `json:"arrival_date"`
	DepartureDate   string `json:"departure_date"`
}

// BookingCreatedResponse returns the identifiers of a new booking.
type BookingCreatedResponse struct {
	ID           int64  `json:"id"`
	ReferenceKey string `json:"reference_key"`
}

// BookingResponse represents a booking record.
type BookingResponse struct {
	ID              int64                `json:"id"`
	ReferenceKey    string               `json:"reference_key"`
	VisitorEmail    string               `json:"visitor_email"`
	VisitorFullName string               `json:"visitor_full_name"`
	ArrivalDate     string               `json:"arrival_date"`
	DepartureDate   string               `json:"departure_date"`
	Status          domain.BookingStatus `json:"status"`
}

// AvailabilityResponse represents one free date range.
type AvailabilityResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
