package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BookingStatus string

const (
	BookingStatusActive   BookingStatus = "ACTIVE"
	BookingStatusCanceled BookingStatus = "CANCELED"
)

type BookingSource string

const (
	BookingSourceAdmin  BookingSource = "ADMIN"
	BookingSourceOnline BookingSource = "ONLINE"
)

// Booking occupies the half-open interval [StartAt, EndAt) on the one shared
// calendar. Rows are never deleted: cancellation flips Status to CANCELED,
// which removes the interval from conflict checks and listings while keeping
// the record for history.
type Booking struct {
	bun.BaseModel `bun:"table:bookings,alias:b"`

	ID            uuid.UUID     `bun:"id,pk,type:uuid"`
	CustomerID    uuid.UUID     `bun:"customer_id,notnull,type:uuid"`
	ServiceTypeID uuid.UUID     `bun:"service_type_id,notnull,type:uuid"`
	StartAt       time.Time     `bun:"start_at,notnull"`
	EndAt         time.Time     `bun:"end_at,notnull"`
	Status        BookingStatus `bun:"status,notnull"`
	Source        BookingSource `bun:"source,notnull"`
	Notes         string        `bun:"notes"`
	CreatedAt     time.Time     `bun:"created_at,notnull"`
	UpdatedAt     time.Time     `bun:"updated_at,notnull"`

	Customer    *Customer    `bun:"rel:belongs-to,join:customer_id=id"`
	ServiceType *ServiceType `bun:"rel:belongs-to,join:service_type_id=id"`
}

func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartAt, End: b.EndAt}
}

func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusActive
}

// Cancel applies the single lifecycle transition. It is terminal and
// idempotent: canceling a canceled booking leaves it unchanged.
func (b *Booking) Cancel() {
	b.Status = BookingStatusCanceled
}

func (b *Booking) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now()
	switch query.(type) {
	case *bun.InsertQuery:
		if b.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			b.ID = id
		}
		if b.CreatedAt.IsZero() {
			b.CreatedAt = now
		}
		if b.UpdatedAt.IsZero() {
			b.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		b.UpdatedAt = now
	}
	return nil
}
