package store

import (
	"context"

	"github.com/google/uuid"

	"salonbook/internal/domain"
)

type ServiceTypeRepository interface {
	Create(ctx context.Context, serviceType domain.ServiceType) (domain.ServiceType, error)
	Get(ctx context.Context, serviceTypeID uuid.UUID) (domain.ServiceType, error)
	ListActive(ctx context.Context) ([]domain.ServiceType, error)
}
