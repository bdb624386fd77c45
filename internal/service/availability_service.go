package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hjalloh/campsite/internal/domain"
	"github.com/hjalloh/campsite/internal/events"
	"github.com/hjalloh/campsite/internal/repository"
)

// AvailabilityService computes the free date ranges of the campsite. Reads
// never take the reservation lock: availability is advisory, bookings are
// authoritative, and a snapshot that misses an in-flight booking is an
// accepted tradeoff.
type AvailabilityService struct {
	bookings repository.BookingRepository
	cache    *repository.AvailabilityCache
	logger   *zap.Logger
}

// NewAvailabilityService constructs the service. cache may be nil.
func NewAvailabilityService(bookings repository.BookingRepository, cache *repository.AvailabilityCache, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{bookings: bookings, cache: cache, logger: logger}
}

// Availabilities returns the free intervals inside the window, ordered by
// start date. Nil bounds default to today and one month ahead minus a day.
func (s *AvailabilityService) Availabilities(ctx context.Context, from, to *time.Time) ([]domain.FreeInterval, error) {
	start, end, err := resolveWindow(from, to)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cache.Get(ctx, start, end); ok {
		return cached, nil
	}

	bookings, err := s.bookings.FindOverlapping(ctx, start, end)
	if err != nil {
		return nil, err
	}
	intervals := freeIntervals(start, end, bookings)
	s.cache.Set(ctx, start, end, intervals)
	return intervals, nil
}

// RegisterCacheInvalidation retires cached snapshots whenever a booking is
// created, modified or cancelled.
func (s *AvailabilityService) RegisterCacheInvalidation(dispatcher events.Dispatcher) {
	if dispatcher == nil || s.cache == nil {
		return
	}
	invalidate := func(ctx context.Context, _ events.Event) error {
		s.cache.Invalidate(ctx)
		return nil
	}
	dispatcher.Subscribe(events.EventBookingCreated, invalidate)
	dispatcher.Subscribe(events.EventBookingModified, invalidate)
	dispatcher.Subscribe(events.EventBookingCancelled, invalidate)
}

// freeIntervals sweeps the bookings, already sorted by arrival date, and
// emits the gaps between them: a leading gap before the first arrival, a gap
// between each consecutive pair, and a trailing gap after the last
// departure. Comparisons are strict so that back-to-back bookings sharing a
// turnover day never produce a zero-width interval.
func freeIntervals(start, end time.Time, bookings []domain.Booking) []domain.FreeInterval {
	if len(bookings) == 0 {
		return []domain.FreeInterval{{Start: start, End: end}}
	}

	intervals := make([]domain.FreeInterval, 0, len(bookings)+1)
	if start.Before(bookings[0].ArrivalDate) {
		intervals = append(intervals, domain.FreeInterval{Start: start, End: bookings[0].ArrivalDate})
	}
	for i := 0; i+1 < len(bookings); i++ {
		current, next := bookings[i], bookings[i+1]
		if current.DepartureDate.Before(next.ArrivalDate) {
			intervals = append(intervals, domain.FreeInterval{Start: current.DepartureDate, End: next.ArrivalDate})
		}
	}
	last := bookings[len(bookings)-1]
	if last.DepartureDate.Before(end) {
		intervals = append(intervals, domain.FreeInterval{Start: last.DepartureDate, End: end})
	}
	return intervals
}
