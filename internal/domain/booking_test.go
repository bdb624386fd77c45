package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hjalloh/campsite/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBooking_Overlaps_HalfOpen(t *testing.T) {
	booking := domain.Booking{
		ArrivalDate:   date(2026, 9, 10),
		DepartureDate: date(2026, 9, 13),
	}

	// plain intersection
	assert.True(t, booking.Overlaps(date(2026, 9, 11), date(2026, 9, 12)))
	assert.True(t, booking.Overlaps(date(2026, 9, 8), date(2026, 9, 11)))
	assert.True(t, booking.Overlaps(date(2026, 9, 12), date(2026, 9, 20)))
	// window spanning the whole booking
	assert.True(t, booking.Overlaps(date(2026, 9, 1), date(2026, 9, 30)))

	// shared boundary day is a turnover, not a conflict
	assert.False(t, booking.Overlaps(date(2026, 9, 13), date(2026, 9, 16)))
	assert.False(t, booking.Overlaps(date(2026, 9, 7), date(2026, 9, 10)))

	// fully disjoint
	assert.False(t, booking.Overlaps(date(2026, 9, 20), date(2026, 9, 22)))
}

func TestBooking_StayNights(t *testing.T) {
	booking := domain.Booking{
		ArrivalDate:   date(2026, 9, 10),
		DepartureDate: date(2026, 9, 13),
	}
	assert.Equal(t, 3, booking.StayNights())
}

func TestParseDate(t *testing.T) {
	parsed, err := domain.ParseDate("2026-09-10")
	require.NoError(t, err)
	assert.Equal(t, date(2026, 9, 10), parsed)

	_, err = domain.ParseDate("10/09/2026")
	assert.Error(t, err)
}

func TestDay_TruncatesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	stamp := time.Date(2026, 9, 10, 23, 45, 12, 0, loc)
	assert.Equal(t, date(2026, 9, 10), domain.Day(stamp))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 3, domain.DaysBetween(date(2026, 9, 10), date(2026, 9, 13)))
	assert.Equal(t, 0, domain.DaysBetween(date(2026, 9, 10), date(2026, 9, 10)))
	assert.Equal(t, -2, domain.DaysBetween(date(2026, 9, 10), date(2026, 9, 8)))
}

func TestDefaultWindow(t *testing.T) {
	start, end := domain.DefaultWindow(date(2026, 9, 10))
	assert.Equal(t, date(2026, 9, 10), start)
	assert.Equal(t, date(2026, 10, 9), end)
}
