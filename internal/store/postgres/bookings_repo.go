package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"salonbook/internal/domain"
	"salonbook/internal/store"
)

// calendarLockKey serializes check-and-create across the single shared
// calendar. One business, one resource, one lock.
const calendarLockKey = "salonbook:calendar"

type BookingRepo struct {
	db *bun.DB
}

func NewBookingRepo(db *bun.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

type calendarTx struct {
	tx bun.Tx
}

// Create inserts a booking only if no ACTIVE booking overlaps its interval.
// The conflict check and the insert run in one transaction holding the
// calendar advisory lock, so two concurrent overlapping creates can never
// both observe "no conflict". The bookings_no_overlap exclusion constraint
// enforces the same invariant inside the database.
func (r *BookingRepo) Create(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	var out domain.Booking
	err := r.InCalendarTransaction(ctx, func(ctx context.Context, tx store.CalendarTx) error {
		clashes, err := tx.ListOverlapping(ctx, booking.StartAt, booking.EndAt)
		if err != nil {
			return err
		}
		if len(clashes) > 0 {
			return store.ErrConflict
		}
		b, err := tx.InsertBooking(ctx, booking)
		if err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return out, nil
}

func (r *BookingRepo) ListWindow(ctx context.Context, windowStart, windowEnd time.Time) ([]domain.Booking, error) {
	var rows []domain.Booking
	err := r.db.NewSelect().
		Model(&rows).
		Relation("Customer").
		Relation("ServiceType").
		Where("b.status = ?", domain.BookingStatusActive).
		Where("b.start_at < ?", windowEnd).
		Where("b.end_at > ?", windowStart).
		OrderExpr("b.start_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Cancel loads the booking and applies the lifecycle transition. A booking
// that already reached the terminal state comes back unchanged, which keeps
// repeated cancels idempotent. Single-row change, no calendar lock needed.
func (r *BookingRepo) Cancel(ctx context.Context, bookingID uuid.UUID) (domain.Booking, error) {
	var out domain.Booking
	err := r.db.NewSelect().
		Model(&out).
		Relation("Customer").
		Relation("ServiceType").
		Where("b.id = ?", bookingID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Booking{}, err
	}
	if !out.IsActive() {
		return out, nil
	}

	out.Cancel()
	_, err = r.db.NewUpdate().
		Model(&out).
		Column("status", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Booking{}, err
	}
	return out, nil
}

func (r *BookingRepo) InCalendarTransaction(ctx context.Context, fn func(ctx context.Context, tx store.CalendarTx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockCalendar(ctx, tx); err != nil {
			return err
		}
		return fn(ctx, calendarTx{tx: tx})
	})
}

func lockCalendar(ctx context.Context, tx bun.Tx) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", calendarLockKey).Exec(ctx)
	return err
}

func (r calendarTx) ListOverlapping(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	var rows []domain.Booking
	err := r.tx.NewSelect().
		Model(&rows).
		Where("b.status = ?", domain.BookingStatusActive).
		Where("b.start_at < ?", end).
		Where("b.end_at > ?", start).
		OrderExpr("b.start_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r calendarTx) InsertBooking(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	m := domain.Booking{
		ID:            booking.ID,
		CustomerID:    booking.CustomerID,
		ServiceTypeID: booking.ServiceTypeID,
		StartAt:       booking.StartAt,
		EndAt:         booking.EndAt,
		Status:        booking.Status,
		Source:        booking.Source,
		Notes:         booking.Notes,
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}

	_, err := r.tx.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23P01" && pgErr.ConstraintName == "bookings_no_overlap" {
			return domain.Booking{}, store.ErrConflict
		}
		return domain.Booking{}, err
	}

	booking.ID = m.ID
	booking.CreatedAt = m.CreatedAt
	booking.UpdatedAt = m.UpdatedAt
	return booking, nil
}
