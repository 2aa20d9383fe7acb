package store

import (
	"context"

	"github.com/google/uuid"

	"salonbook/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	Get(ctx context.Context, customerID uuid.UUID) (domain.Customer, error)
	Search(ctx context.Context, query string) ([]domain.Customer, error)
}
