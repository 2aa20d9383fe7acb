package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"salonbook/internal/domain"
	"salonbook/internal/service/customers"
	"salonbook/internal/store"
)

type customersService interface {
	Create(ctx context.Context, in customers.CreateInput) (domain.Customer, error)
	Search(ctx context.Context, query string) ([]domain.Customer, error)
}

type CustomersHandler struct {
	svc customersService
	log *slog.Logger
}

func NewCustomersHandler(svc customersService, log *slog.Logger) *CustomersHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CustomersHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.customers")),
	}
}

type createCustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Notes     string `json:"notes"`
}

type customerPayload struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

func (h *CustomersHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("handler", "CreateCustomer"))

	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_json"))
		writeError(w, http.StatusBadRequest, codeValidation, "invalid json body")
		return
	}

	customer, err := h.svc.Create(r.Context(), customers.CreateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			log.Info("customer phone already registered")
			writeError(w, http.StatusConflict, codeConflict, "a customer with this phone already exists")
			return
		}
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			log.Warn("invalid request", slog.Any("err", err))
			writeError(w, http.StatusBadRequest, codeValidation, vErr.Error())
			return
		}
		log.Error("customer create failed", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}

	log.Info("customer created", slog.String("customer_id", customer.ID.String()))
	writeJSON(w, http.StatusOK, map[string]any{"customer": toCustomerPayload(customer)})
}

func (h *CustomersHandler) Search(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("handler", "SearchCustomers"))

	found, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		log.Error("customer search failed", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}

	out := make([]customerPayload, 0, len(found))
	for _, c := range found {
		out = append(out, toCustomerPayload(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"customers": out})
}

func toCustomerPayload(c domain.Customer) customerPayload {
	return customerPayload{
		ID:        c.ID.String(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Email:     c.Email,
		Notes:     c.Notes,
	}
}
