package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"salonbook/internal/domain"
)

// BookingRepository owns the authoritative set of booking intervals.
type BookingRepository interface {
	// Create atomically checks the candidate interval against every ACTIVE
	// booking and inserts it only if no overlap exists; otherwise it returns
	// ErrConflict and writes nothing.
	Create(ctx context.Context, booking domain.Booking) (domain.Booking, error)

	// ListWindow returns ACTIVE bookings whose interval overlaps the window
	// (half-open test, not a date equality match), ordered by start time.
	ListWindow(ctx context.Context, windowStart, windowEnd time.Time) ([]domain.Booking, error)

	// Cancel flips the booking to CANCELED and returns it. Absent ids yield
	// ErrNotFound; re-canceling a canceled booking is a no-op success.
	Cancel(ctx context.Context, bookingID uuid.UUID) (domain.Booking, error)
}
