package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hjalloh/campsite/internal/config"
	"github.com/hjalloh/campsite/internal/domain"
	"github.com/hjalloh/campsite/internal/events"
	"github.com/hjalloh/campsite/internal/repository"
)

// BookingService coordinates booking workflows for the single campsite. It
// owns the reservation critical section: every book and modify attempt runs
// its conflict check and the subsequent write under one mutex, so at most
// one of any set of concurrent attempts with overlapping dates can observe
// an empty conflict set.
type BookingService struct {
	bookings    repository.BookingRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	maxStayDays int

	// mu serializes every load-check-write of the bookings collection,
	// including cancellation: a status flip racing an unguarded modify could
	// otherwise be overwritten by a stale active copy. A single global lock
	// is sufficient: conflict determination is a whole-collection property
	// for one campsite, so there is nothing to scope it narrower to.
	mu sync.Mutex
}

// BookingDependencies bundles collaborators for the booking service.
type BookingDependencies struct {
	BookingRepo repository.BookingRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// BookingInput describes a booking or modification payload.
type BookingInput struct {
	VisitorEmail    string
	VisitorFullName string
	ArrivalDate     time.Time
	DepartureDate   time.Time
}

// NewBookingService constructs the service.
func NewBookingService(cfg config.BookingConfig, deps BookingDependencies) *BookingService {
	return &BookingService{
		bookings:    deps.BookingRepo,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
		maxStayDays: cfg.MaxStayDays,
	}
}

// Book validates and persists a new booking, failing with
// domain.ErrAlreadyBooked when the requested range overlaps an active one.
func (s *BookingService) Book(ctx context.Context, input BookingInput) (*domain.Booking, error) {
	arrival := domain.Day(input.ArrivalDate)
	departure := domain.Day(input.DepartureDate)
	if err := s.checkDateRange(arrival, departure); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ReferenceKey:    generateReferenceKey(),
		VisitorEmail:    strings.TrimSpace(input.VisitorEmail),
		VisitorFullName: strings.TrimSpace(input.VisitorFullName),
		ArrivalDate:     arrival,
		DepartureDate:   departure,
		Status:          domain.BookingStatusActive,
	}
	if err := s.tryReserve(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("campsite booked",
		zap.Int64("booking_id", booking.ID),
		zap.String("reference_key", booking.ReferenceKey),
		zap.String("arrival_date", domain.FormatDate(arrival)),
		zap.String("departure_date", domain.FormatDate(departure)))
	s.publishEvent(ctx, events.Event{
		Type:         events.EventBookingCreated,
		BookingID:    booking.ID,
		ReferenceKey: booking.ReferenceKey,
		Payload: events.BookingCreatedPayload{
			VisitorEmail:  booking.VisitorEmail,
			ArrivalDate:   booking.ArrivalDate,
			DepartureDate: booking.DepartureDate,
		},
	})
	return booking, nil
}

// Modify re-validates and re-books an existing booking with new dates or
// visitor details, excluding the booking itself from its own conflict check.
// The id and reference key are preserved.
func (s *BookingService) Modify(ctx context.Context, id int64, input BookingInput) (*domain.Booking, error) {
	arrival := domain.Day(input.ArrivalDate)
	departure := domain.Day(input.DepartureDate)
	if err := s.checkDateRange(arrival, departure); err != nil {
		return nil, err
	}

	updated, previous, err := s.rebook(ctx, id, input, arrival, departure)
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking modified",
		zap.Int64("booking_id", updated.ID),
		zap.String("arrival_date", domain.FormatDate(arrival)),
		zap.String("departure_date", domain.FormatDate(departure)))
	s.publishEvent(ctx, events.Event{
		Type:         events.EventBookingModified,
		BookingID:    updated.ID,
		ReferenceKey: updated.ReferenceKey,
		Payload: events.BookingModifiedPayload{
			OldArrivalDate:   previous.ArrivalDate,
			OldDepartureDate: previous.DepartureDate,
			NewArrivalDate:   arrival,
			NewDepartureDate: departure,
		},
	})
	return updated, nil
}

// rebook loads the booking, verifies it is still active and rewrites it, all
// inside the reservation critical section. Loading outside the lock would let
// a concurrent cancel land between the status check and the write, and the
// write would then resurrect the cancelled booking from a stale active copy.
func (s *BookingService) rebook(ctx context.Context, id int64, input BookingInput, arrival, departure time.Time) (*domain.Booking, domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Booking{}, fmt.Errorf("booking %d: %w", id, err)
	}
	if existing.Status == domain.BookingStatusCancelled {
		return nil, domain.Booking{}, fmt.Errorf("booking %d is cancelled: %w", id, domain.ErrNotFound)
	}

	previous := *existing
	existing.VisitorEmail = strings.TrimSpace(input.VisitorEmail)
	existing.VisitorFullName = strings.TrimSpace(input.VisitorFullName)
	existing.ArrivalDate = arrival
	existing.DepartureDate = departure
	if err := s.reserveLocked(ctx, existing); err != nil {
		return nil, domain.Booking{}, err
	}
	return existing, previous, nil
}

// Cancel marks a booking CANCELLED. Cancelling an already cancelled booking
// is a no-op.
func (s *BookingService) Cancel(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, changed, err := s.markCancelled(ctx, id)
	if err != nil {
		return nil, err
	}
	if !changed {
		return booking, nil
	}

	s.logger.Info("booking cancelled", zap.Int64("booking_id", booking.ID))
	s.publishEvent(ctx, events.Event{
		Type:         events.EventBookingCancelled,
		BookingID:    booking.ID,
		ReferenceKey: booking.ReferenceKey,
		Payload: events.BookingCancelledPayload{
			ArrivalDate:   booking.ArrivalDate,
			DepartureDate: booking.DepartureDate,
			OldStatus:     domain.BookingStatusActive,
		},
	})
	return booking, nil
}

// markCancelled flips the status under the reservation lock. Cancelling can
// never create a date conflict, but the flip still has to be serialized with
// modify: an unguarded cancel could commit between a modify's status check
// and its write and be overwritten. A cancelled booking never becomes active
// again.
func (s *BookingService) markCancelled(ctx context.Context, id int64) (*domain.Booking, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("booking %d: %w", id, err)
	}
	if booking.Status == domain.BookingStatusCancelled {
		return booking, false, nil
	}
	booking.Status = domain.BookingStatusCancelled
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, false, err
	}
	return booking, true, nil
}

// Bookings returns the active bookings overlapping the window, sorted by
// arrival date ascending. Nil bounds default to today and one month ahead
// minus a day. The read takes no lock; listing is advisory and may trail a
// concurrent booking.
func (s *BookingService) Bookings(ctx context.Context, from, to *time.Time) ([]domain.Booking, error) {
	start, end, err := resolveWindow(from, to)
	if err != nil {
		return nil, err
	}
	return s.bookings.FindOverlapping(ctx, start, end)
}

// tryReserve is the exclusivity guard for new bookings: conflict check plus
// write as one critical section. A conflict check followed by an unguarded
// write would be a check-then-act race, letting two overlapping attempts both
// succeed.
func (s *BookingService) tryReserve(ctx context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reserveLocked(ctx, booking)
}

// reserveLocked checks for date conflicts and commits the booking. Callers
// hold s.mu. A record matching the booking's own id is not a conflict (the
// modify case); a new booking has no id yet, so nothing is skipped on create.
func (s *BookingService) reserveLocked(ctx context.Context, booking *domain.Booking) error {
	overlapping, err := s.bookings.FindOverlapping(ctx, booking.ArrivalDate, booking.DepartureDate)
	if err != nil {
		return err
	}
	for _, existing := range overlapping {
		if existing.ID == booking.ID {
			continue
		}
		return fmt.Errorf("%w between %s and %s: please choose another date range",
			domain.ErrAlreadyBooked,
			domain.FormatDate(booking.ArrivalDate),
			domain.FormatDate(booking.DepartureDate))
	}

	if booking.ID == 0 {
		return s.bookings.Insert(ctx, booking)
	}
	return s.bookings.Update(ctx, booking)
}

func (s *BookingService) checkDateRange(arrival, departure time.Time) error {
	if !arrival.Before(departure) {
		return fmt.Errorf("%w: arrival date %s is equal to or after departure date %s",
			domain.ErrInvalidRange, domain.FormatDate(arrival), domain.FormatDate(departure))
	}
	if domain.DaysBetween(arrival, departure) > s.maxStayDays {
		return fmt.Errorf("%w: the campsite cannot be booked for more than %d days in a row",
			domain.ErrInvalidRange, s.maxStayDays)
	}
	return nil
}

func (s *BookingService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// resolveWindow applies the default query window and validates ordering.
func resolveWindow(from, to *time.Time) (time.Time, time.Time, error) {
	start, end := domain.DefaultWindow(domain.Today())
	if from != nil {
		start = domain.Day(*from)
	}
	if to != nil {
		end = domain.Day(*to)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start date %s is greater than end date %s",
			domain.ErrInvalidRange, domain.FormatDate(start), domain.FormatDate(end))
	}
	return start, end, nil
}

func generateReferenceKey() string {
	return "BKG-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
