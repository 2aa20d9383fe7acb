// Package catalog is the service-catalog collaborator: it owns the service
// types the scheduling core books against.
package catalog

import (
	"context"
	"strings"

	"salonbook/internal/domain"
	"salonbook/internal/store"
)

type Service struct {
	repo store.ServiceTypeRepository
}

func NewService(repo store.ServiceTypeRepository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	DisplayName      string
	BaseName         string
	DurationMinutes  int
	IsOnlineBookable bool
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.ServiceType, error) {
	displayName := strings.TrimSpace(in.DisplayName)
	if displayName == "" {
		return domain.ServiceType{}, domain.NewValidationError("displayName is required")
	}
	baseName := strings.TrimSpace(in.BaseName)
	if baseName == "" {
		return domain.ServiceType{}, domain.NewValidationError("baseName is required")
	}
	if in.DurationMinutes < 15 || in.DurationMinutes > 600 {
		return domain.ServiceType{}, domain.NewValidationError("durationMinutes must be between 15 and 600")
	}
	if in.DurationMinutes%5 != 0 {
		return domain.ServiceType{}, domain.NewValidationError("durationMinutes must be a multiple of 5")
	}

	return s.repo.Create(ctx, domain.ServiceType{
		DisplayName:      displayName,
		BaseName:         baseName,
		DurationMinutes:  in.DurationMinutes,
		IsOnlineBookable: in.IsOnlineBookable,
		IsActive:         true,
	})
}

// List returns the active catalog, online-bookable entries first, shortest
// durations first.
func (s *Service) List(ctx context.Context) ([]domain.ServiceType, error) {
	return s.repo.ListActive(ctx)
}
