package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hjalloh/campsite/internal/domain"
	"github.com/hjalloh/campsite/internal/repository"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newBooking(arrival, departure time.Time) *domain.Booking {
	return &domain.Booking{
		ReferenceKey:    "BKG-TEST",
		VisitorEmail:    "visitor@example.com",
		VisitorFullName: "Visitor Example",
		ArrivalDate:     arrival,
		DepartureDate:   departure,
		Status:          domain.BookingStatusActive,
	}
}

func TestMemoryRepo_Insert_AssignsSequentialIDs(t *testing.T) {
	repo := repository.NewMemoryBookingRepository()

	first := newBooking(date(2026, 9, 1), date(2026, 9, 3))
	second := newBooking(date(2026, 9, 5), date(2026, 9, 7))

	require.NoError(t, repo.Insert(context.Background(), first))
	require.NoError(t, repo.Insert(context.Background(), second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestMemoryRepo_GetByID_NotFound(t *testing.T) {
	repo := repository.NewMemoryBookingRepository()

	_, err := repo.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryRepo_Update_NotFound(t *testing.T) {
	repo := repository.NewMemoryBookingRepository()

	booking := newBooking(date(2026, 9, 1), date(2026, 9, 3))
	booking.ID = 42

	assert.ErrorIs(t, repo.Update(context.Background(), booking), domain.ErrNotFound)
}

func TestMemoryRepo_FindOverlapping_HalfOpenBoundaries(t *testing.T) {
	repo := repository.NewMemoryBookingRepository()
	booking := newBooking(date(2026, 9, 10), date(2026, 9, 13))
	require.NoError(t, repo.Insert(context.Background(), booking))

	// window ending exactly on the arrival day does not overlap
	got, err := repo.FindOverlapping(context.Background(), date(2026, 9, 7), date(2026, 9, 10))
	require.NoError(t, err)
	assert.Empty(t, got)

	// window starting exactly on the departure day does not overlap
	got, err = repo.FindOverlapping(context.Background(), date(2026, 9, 13), date(2026, 9, 16))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.FindOverlapping(context.Background(), date(2026, 9, 12), date(2026, 9, 16))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestMemoryRepo_FindOverlapping_ExcludesCancelled(t *testing.T) {
	repo := repository.NewMemoryBookingRepository()
	booking := newBooking(date(2026, 9, 10), date(2026, 9, 13))
	require.NoError(t, repo.Insert(context.Background(), booking))

	booking.Status = domain.BookingStatusCancelled
	require.NoError(t, repo.Update(context.Background(), booking))

	got, err := repo.FindOverlapping(context.Background(), date(2026, 9, 1), date(2026, 9, 30))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryRepo_FindOverlapping_SortedByArrival(t *testing.T) {
	repo := repository.NewMemoryBookingRepository()
	late := newBooking(date(2026, 9, 20), date(2026, 9, 22))
	early := newBooking(date(2026, 9, 5), date(2026, 9, 8))
	middle := newBooking(date(2026, 9, 12), date(2026, 9, 14))
	for _, b := range []*domain.Booking{late, early, middle} {
		require.NoError(t, repo.Insert(context.Background(), b))
	}

	got, err := repo.FindOverlapping(context.Background(), date(2026, 9, 1), date(2026, 9, 30))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, early.ID, got[0].ID)
	assert.Equal(t, middle.ID, got[1].ID)
	assert.Equal(t, late.ID, got[2].ID)
}

func TestMemoryRepo_GetByID_ReturnsCopy(t *testing.T) {
	repo := repository.NewMemoryBookingRepository()
	booking := newBooking(date(2026, 9, 10), date(2026, 9, 13))
	require.NoError(t, repo.Insert(context.Background(), booking))

	loaded, err := repo.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	loaded.Status = domain.BookingStatusCancelled

	reloaded, err := repo.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusActive, reloaded.Status)
}
