package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hjalloh/campsite/internal/domain"
)

// memoryBookingRepository keeps bookings in process memory. It backs the
// service when POSTGRES_DSN is not configured and is the store used by the
// test suites. Ids are sequential and never reused.
type memoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[int64]domain.Booking
	nextID   int64
}

// NewMemoryBookingRepository instantiates an empty in-memory repository.
func NewMemoryBookingRepository() BookingRepository {
	return &memoryBookingRepository{
		bookings: make(map[int64]domain.Booking),
		nextID:   1,
	}
}

func (r *memoryBookingRepository) Insert(ctx context.Context, booking *domain.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	booking.ID = r.nextID
	r.nextID++
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *memoryBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[booking.ID]; !ok {
		return domain.ErrNotFound
	}
	booking.UpdatedAt = time.Now().UTC()
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *memoryBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &booking, nil
}

func (r *memoryBookingRepository) FindOverlapping(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Booking
	for _, booking := range r.bookings {
		if booking.Status == domain.BookingStatusCancelled {
			continue
		}
		if booking.Overlaps(start, end) {
			result = append(result, booking)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ArrivalDate.Before(result[j].ArrivalDate)
	})
	return result, nil
}
