package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"salonbook/internal/domain"
	"salonbook/internal/store"
)

type CustomerRepo struct {
	db *bun.DB
}

func NewCustomerRepo(db *bun.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

func (r *CustomerRepo) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	m := customer
	_, err := r.db.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Phone numbers are unique in the directory.
			return domain.Customer{}, store.ErrConflict
		}
		return domain.Customer{}, err
	}
	return m, nil
}

func (r *CustomerRepo) Get(ctx context.Context, customerID uuid.UUID) (domain.Customer, error) {
	var out domain.Customer
	err := r.db.NewSelect().
		Model(&out).
		Where("c.id = ?", customerID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Customer{}, err
	}
	return out, nil
}

func (r *CustomerRepo) Search(ctx context.Context, query string) ([]domain.Customer, error) {
	var rows []domain.Customer
	q := r.db.NewSelect().Model(&rows)
	if query != "" {
		pattern := "%" + query + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				WhereOr("c.first_name ILIKE ?", pattern).
				WhereOr("c.last_name ILIKE ?", pattern).
				WhereOr("c.phone ILIKE ?", pattern).
				WhereOr("c.email ILIKE ?", pattern)
		})
	}
	err := q.OrderExpr("c.created_at DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
