package domain

import "errors"

// ErrInvalidRange is returned when a date range is malformed or violates a
// booking policy: arrival on or after departure, stay longer than the
// configured maximum, or a query window whose start is after its end.
var ErrInvalidRange = errors.New("invalid date range")

// ErrAlreadyBooked is returned when the candidate range overlaps an active
// booking. The condition is not transient; retrying with the same dates
// fails identically until a cancellation frees the range.
var ErrAlreadyBooked = errors.New("campsite already booked")

// ErrNotFound is returned when an operation references a booking id that
// does not exist.
var ErrNotFound = errors.New("booking not found")
