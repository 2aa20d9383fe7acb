package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ServiceType belongs to the service catalog collaborator. DurationMinutes is
// the only field the scheduling core needs to compute an interval.
type ServiceType struct {
	bun.BaseModel `bun:"table:service_types,alias:st"`

	ID               uuid.UUID `bun:"id,pk,type:uuid"`
	DisplayName      string    `bun:"display_name,notnull"`
	BaseName         string    `bun:"base_name,notnull"`
	DurationMinutes  int       `bun:"duration_minutes,notnull"`
	IsOnlineBookable bool      `bun:"is_online_bookable,notnull"`
	IsActive         bool      `bun:"is_active,notnull"`
	CreatedAt        time.Time `bun:"created_at,notnull"`
	UpdatedAt        time.Time `bun:"updated_at,notnull"`
}

func (s *ServiceType) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now()
	switch query.(type) {
	case *bun.InsertQuery:
		if s.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			s.ID = id
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		s.UpdatedAt = now
	}
	return nil
}
