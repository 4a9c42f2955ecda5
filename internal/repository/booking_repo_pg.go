package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KiraMuss/AndersonStudio/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	BookedLabels(ctx context.Context, date time.Time) ([]string, error)
	GetByToken(ctx context.Context, token string) (*domain.Booking, error)
	Cancel(ctx context.Context, token string) (*domain.Booking, error)
	ListForDate(ctx context.Context, date time.Time) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// Create inserts a new booking. The existence query is only a fast path for
// the common conflict; the guarantee that two submissions racing for one slot
// cannot both land is the partial unique index on active (booking_date,
// time_label) rows — the loser's insert fails with a unique violation, which
// is surfaced as domain.ErrSlotTaken.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	var taken bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE booking_date=$1 AND time_label=$2 AND status<>$3
		)`, booking.Date, booking.TimeLabel, domain.BookingStatusCancelled).Scan(&taken); err != nil {
		return err
	}
	if taken {
		return domain.ErrSlotTaken
	}

	booking.Status = domain.BookingStatusNew
	if err := r.db.QueryRow(ctx, `INSERT INTO bookings (token, name, phone, email, booking_date, time_label, services, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		booking.Token, booking.Name, booking.Phone, booking.Email, booking.Date, booking.TimeLabel, booking.Services, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		if isSlotConflict(err) {
			return domain.ErrSlotTaken
		}
		return err
	}

	return nil
}

// isSlotConflict reports whether err is a unique violation on the active
// date+slot index.
func isSlotConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// BookedLabels returns the slot labels taken for a date, cancelled bookings
// excluded.
func (r *PGBookingRepository) BookedLabels(ctx context.Context, date time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT time_label FROM bookings WHERE booking_date=$1 AND status<>$2 ORDER BY time_label`, date, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

func (r *PGBookingRepository) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, token, name, phone, email, booking_date, time_label, services, status, created_at, updated_at FROM bookings WHERE token=$1`, token)
	return scanBooking(row)
}

func (r *PGBookingRepository) Cancel(ctx context.Context, token string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE token=$2 RETURNING id, token, name, phone, email, booking_date, time_label, services, status, created_at, updated_at`, domain.BookingStatusCancelled, token)
	booking, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.New("booking not found")
	}
	return booking, err
}

func (r *PGBookingRepository) ListForDate(ctx context.Context, date time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, token, name, phone, email, booking_date, time_label, services, status, created_at, updated_at FROM bookings WHERE booking_date=$1 AND status<>$2 ORDER BY time_label`, date, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Token, &b.Name, &b.Phone, &b.Email, &b.Date, &b.TimeLabel, &b.Services, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
