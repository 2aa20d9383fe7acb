// Package customers is the customer-directory collaborator: bookings only
// reference customers, they never own them.
package customers

import (
	"context"
	"strings"

	"salonbook/internal/domain"
	"salonbook/internal/store"
)

type Service struct {
	repo store.CustomerRepository
}

func NewService(repo store.CustomerRepository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Notes     string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Customer, error) {
	firstName := strings.TrimSpace(in.FirstName)
	if firstName == "" {
		return domain.Customer{}, domain.NewValidationError("firstName is required")
	}
	lastName := strings.TrimSpace(in.LastName)
	if lastName == "" {
		return domain.Customer{}, domain.NewValidationError("lastName is required")
	}
	phone := strings.TrimSpace(in.Phone)
	if len(phone) < 3 {
		return domain.Customer{}, domain.NewValidationError("phone is required")
	}
	email := strings.TrimSpace(in.Email)
	if email != "" && !strings.Contains(email, "@") {
		return domain.Customer{}, domain.NewValidationError("email is invalid")
	}

	return s.repo.Create(ctx, domain.Customer{
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		Email:     email,
		Notes:     strings.TrimSpace(in.Notes),
	})
}

// Search matches the query as a substring of name, phone or email, newest
// customers first. An empty query lists everyone.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Customer, error) {
	return s.repo.Search(ctx, strings.TrimSpace(query))
}
