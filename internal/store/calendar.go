package store

import (
	"context"
	"time"

	"salonbook/internal/domain"
)

// CalendarTx is the view of the calendar inside one exclusive transaction.
// Both steps of check-and-create run through it so they commit or fail as a
// unit.
type CalendarTx interface {
	ListOverlapping(ctx context.Context, start, end time.Time) ([]domain.Booking, error)
	InsertBooking(ctx context.Context, booking domain.Booking) (domain.Booking, error)
}
