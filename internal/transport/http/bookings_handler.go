package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"salonbook/internal/domain"
	"salonbook/internal/service/bookings"
	"salonbook/internal/store"
)

// Booking timestamps cross the wire as local civil time, without a zone
// offset, matching how the scheduling core treats them.
const civilTimeLayout = "2006-01-02T15:04:05"

type bookingsService interface {
	Create(ctx context.Context, in bookings.CreateInput) (domain.Booking, error)
	ListDay(ctx context.Context, date string) ([]domain.Booking, error)
	Cancel(ctx context.Context, bookingID uuid.UUID) (domain.Booking, error)
	Slots(ctx context.Context, date string, serviceTypeID uuid.UUID) ([]domain.Slot, error)
}

type BookingsHandler struct {
	svc bookingsService
	log *slog.Logger
}

func NewBookingsHandler(svc bookingsService, log *slog.Logger) *BookingsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &BookingsHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.bookings")),
	}
}

type createBookingRequest struct {
	Date          string `json:"date"`
	Time          string `json:"time"`
	ServiceTypeID string `json:"serviceTypeId"`
	CustomerID    string `json:"customerId"`
	Notes         string `json:"notes"`
	Source        string `json:"source"`
}

type bookingPayload struct {
	ID            string              `json:"id"`
	CustomerID    string              `json:"customerId"`
	ServiceTypeID string              `json:"serviceTypeId"`
	StartAt       string              `json:"startAt"`
	EndAt         string              `json:"endAt"`
	Status        string              `json:"status"`
	Source        string              `json:"source"`
	Notes         string              `json:"notes,omitempty"`
	CreatedAt     string              `json:"createdAt"`
	Customer      *customerPayload    `json:"customer,omitempty"`
	ServiceType   *serviceTypePayload `json:"serviceType,omitempty"`
}

type slotPayload struct {
	Time      string `json:"time"`
	Blocked   bool   `json:"blocked"`
	BlockedBy string `json:"blockedBy,omitempty"`
}

func (h *BookingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("handler", "CreateBooking"))

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_json"))
		writeError(w, http.StatusBadRequest, codeValidation, "invalid json body")
		return
	}

	serviceTypeID, err := parseOptionalUUID(req.ServiceTypeID)
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_service_type_id"))
		writeError(w, http.StatusBadRequest, codeValidation, "serviceTypeId must be a UUID")
		return
	}
	customerID, err := parseOptionalUUID(req.CustomerID)
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_customer_id"))
		writeError(w, http.StatusBadRequest, codeValidation, "customerId must be a UUID")
		return
	}

	booking, err := h.svc.Create(r.Context(), bookings.CreateInput{
		Date:          strings.TrimSpace(req.Date),
		Time:          strings.TrimSpace(req.Time),
		ServiceTypeID: serviceTypeID,
		CustomerID:    customerID,
		Notes:         req.Notes,
		Source:        domain.BookingSource(strings.TrimSpace(req.Source)),
	})
	if err != nil {
		h.writeBookingError(w, log, err)
		return
	}

	log.Info("booking created",
		slog.String("booking_id", booking.ID.String()),
		slog.Time("start_at", booking.StartAt),
		slog.Time("end_at", booking.EndAt),
		slog.String("source", string(booking.Source)),
	)
	writeJSON(w, http.StatusOK, map[string]any{"booking": toBookingPayload(booking)})
}

func (h *BookingsHandler) List(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("handler", "ListBookings"))

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		writeJSON(w, http.StatusOK, map[string]any{"bookings": []bookingPayload{}})
		return
	}

	active, err := h.svc.ListDay(r.Context(), date)
	if err != nil {
		h.writeBookingError(w, log, err)
		return
	}

	out := make([]bookingPayload, 0, len(active))
	for _, b := range active {
		out = append(out, toBookingPayload(b))
	}

	log.Debug("bookings listed", slog.String("date", date), slog.Int("count", len(out)))
	writeJSON(w, http.StatusOK, map[string]any{"bookings": out})
}

func (h *BookingsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("handler", "CancelBooking"))

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_booking_id"))
		writeError(w, http.StatusBadRequest, codeValidation, "booking id must be a UUID")
		return
	}

	booking, err := h.svc.Cancel(r.Context(), id)
	if err != nil {
		h.writeBookingError(w, log, err)
		return
	}

	log.Info("booking canceled", slog.String("booking_id", booking.ID.String()))
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "booking": toBookingPayload(booking)})
}

func (h *BookingsHandler) Slots(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("handler", "ListSlots"))

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	serviceTypeID, err := parseOptionalUUID(r.URL.Query().Get("serviceTypeId"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_service_type_id"))
		writeError(w, http.StatusBadRequest, codeValidation, "serviceTypeId must be a UUID")
		return
	}

	slots, err := h.svc.Slots(r.Context(), date, serviceTypeID)
	if err != nil {
		h.writeBookingError(w, log, err)
		return
	}

	out := make([]slotPayload, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotPayload{Time: s.Time, Blocked: s.Blocked, BlockedBy: s.BlockedBy})
	}

	log.Debug("slots listed", slog.String("date", date), slog.Int("count", len(out)))
	writeJSON(w, http.StatusOK, map[string]any{"slots": out})
}

func (h *BookingsHandler) writeBookingError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, store.ErrConflict):
		log.Info("booking conflict", slog.Any("err", err))
		writeError(w, http.StatusConflict, codeConflict, "The requested time is already taken. Pick a different slot.")
	case errors.Is(err, bookings.ErrServiceNotFound):
		log.Warn("service type not found")
		writeError(w, http.StatusBadRequest, codeServiceNotFound, "service type not found")
	case errors.Is(err, bookings.ErrServiceNotBookable):
		log.Warn("service type not bookable online")
		writeError(w, http.StatusBadRequest, codeServiceNotBookable, "service type is not bookable online")
	case errors.Is(err, bookings.ErrCustomerNotFound):
		log.Warn("customer not found")
		writeError(w, http.StatusBadRequest, codeCustomerNotFound, "customer not found")
	case errors.Is(err, store.ErrNotFound):
		log.Info("booking not found")
		writeError(w, http.StatusNotFound, codeNotFound, "booking not found")
	default:
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			log.Warn("invalid request", slog.Any("err", err))
			writeError(w, http.StatusBadRequest, codeValidation, vErr.Error())
			return
		}
		log.Error("request failed", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

func parseOptionalUUID(s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}

func toBookingPayload(b domain.Booking) bookingPayload {
	p := bookingPayload{
		ID:            b.ID.String(),
		CustomerID:    b.CustomerID.String(),
		ServiceTypeID: b.ServiceTypeID.String(),
		StartAt:       b.StartAt.Format(civilTimeLayout),
		EndAt:         b.EndAt.Format(civilTimeLayout),
		Status:        string(b.Status),
		Source:        string(b.Source),
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt.Format(civilTimeLayout),
	}
	if b.Customer != nil {
		c := toCustomerPayload(*b.Customer)
		p.Customer = &c
	}
	if b.ServiceType != nil {
		st := toServiceTypePayload(*b.ServiceType)
		p.ServiceType = &st
	}
	return p
}
