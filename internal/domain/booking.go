package domain

import "time"

// BookingStatus enumerates lifecycle states for bookings.
type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking is a reservation of the campsite for a half-open date range
// [ArrivalDate, DepartureDate). The departure day itself is free for the
// next visitor, so a booking departing on day D never conflicts with a
// booking arriving on day D.
type Booking struct {
	ID              int64
	ReferenceKey    string
	VisitorEmail    string
	VisitorFullName string
	ArrivalDate     time.Time
	DepartureDate   time.Time
	Status          BookingStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Overlaps reports whether the booking's date range intersects the
// half-open range [start, end).
func (b Booking) Overlaps(start, end time.Time) bool {
	return b.ArrivalDate.Before(end) && b.DepartureDate.After(start)
}

// StayNights returns the length of the stay in nights.
func (b Booking) StayNights() int {
	return DaysBetween(b.ArrivalDate, b.DepartureDate)
}
