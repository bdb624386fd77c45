package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hjalloh/campsite/internal/domain"
)

// BookingRepository encapsulates booking persistence. FindOverlapping is the
// overlap query used both for conflict detection and for availability reads;
// implementations must not take application-level locks of their own, since
// the booking service already holds the reservation critical section when it
// calls Insert/Update after a conflict check.
type BookingRepository interface {
	Insert(ctx context.Context, booking *domain.Booking) error
	Update(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// FindOverlapping returns the non-cancelled bookings whose half-open
	// range [arrival, departure) intersects [start, end), ordered by
	// arrival date ascending.
	FindOverlapping(ctx context.Context, start, end time.Time) ([]domain.Booking, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository instantiates the Postgres-backed repository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

func (r *bookingRepository) Insert(ctx context.Context, booking *domain.Booking) error {
	const query = `
        INSERT INTO bookings (reference_key, visitor_email, visitor_full_name, arrival_date, departure_date, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		booking.ReferenceKey,
		booking.VisitorEmail,
		booking.VisitorFullName,
		booking.ArrivalDate,
		booking.DepartureDate,
		booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *bookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	const query = `
        UPDATE bookings SET visitor_email=$1, visitor_full_name=$2, arrival_date=$3, departure_date=$4,
            status=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		booking.VisitorEmail,
		booking.VisitorFullName,
		booking.ArrivalDate,
		booking.DepartureDate,
		booking.Status,
		booking.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	const query = `
        SELECT id, reference_key, visitor_email, visitor_full_name, arrival_date, departure_date,
               status, created_at, updated_at
        FROM bookings WHERE id=$1`
	var booking domain.Booking
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.ReferenceKey,
		&booking.VisitorEmail,
		&booking.VisitorFullName,
		&booking.ArrivalDate,
		&booking.DepartureDate,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindOverlapping(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	const query = `
        SELECT id, reference_key, visitor_email, visitor_full_name, arrival_date, departure_date,
               status, created_at, updated_at
        FROM bookings
        WHERE status <> $1 AND arrival_date < $3 AND departure_date > $2
        ORDER BY arrival_date ASC`
	rows, err := r.pool.Query(ctx, query, domain.BookingStatusCancelled, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var result []domain.Booking
	for rows.Next() {
		var booking domain.Booking
		if err := rows.Scan(
			&booking.ID,
			&booking.ReferenceKey,
			&booking.VisitorEmail,
			&booking.VisitorFullName,
			&booking.ArrivalDate,
			&booking.DepartureDate,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, booking)
	}
	return result, rows.Err()
}
