package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"salonbook/internal/domain"
	"salonbook/internal/store"
)

type ServiceTypeRepo struct {
	db *bun.DB
}

func NewServiceTypeRepo(db *bun.DB) *ServiceTypeRepo {
	return &ServiceTypeRepo{db: db}
}

func (r *ServiceTypeRepo) Create(ctx context.Context, serviceType domain.ServiceType) (domain.ServiceType, error) {
	m := serviceType
	_, err := r.db.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		return domain.ServiceType{}, err
	}
	return m, nil
}

func (r *ServiceTypeRepo) Get(ctx context.Context, serviceTypeID uuid.UUID) (domain.ServiceType, error) {
	var out domain.ServiceType
	err := r.db.NewSelect().
		Model(&out).
		Where("st.id = ?", serviceTypeID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ServiceType{}, store.ErrNotFound
	}
	if err != nil {
		return domain.ServiceType{}, err
	}
	return out, nil
}

func (r *ServiceTypeRepo) ListActive(ctx context.Context) ([]domain.ServiceType, error) {
	var rows []domain.ServiceType
	err := r.db.NewSelect().
		Model(&rows).
		Where("st.is_active = TRUE").
		OrderExpr("st.is_online_bookable DESC, st.duration_minutes ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
