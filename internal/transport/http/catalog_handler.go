package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"salonbook/internal/domain"
	"salonbook/internal/service/catalog"
)

type catalogService interface {
	Create(ctx context.Context, in catalog.CreateInput) (domain.ServiceType, error)
	List(ctx context.Context) ([]domain.ServiceType, error)
}

type CatalogHandler struct {
	svc catalogService
	log *slog.Logger
}

func NewCatalogHandler(svc catalogService, log *slog.Logger) *CatalogHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CatalogHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.catalog")),
	}
}

type createServiceTypeRequest struct {
	DisplayName      string `json:"displayName"`
	BaseName         string `json:"baseName"`
	DurationMinutes  int    `json:"durationMinutes"`
	IsOnlineBookable bool   `json:"isOnlineBookable"`
}

type serviceTypePayload struct {
	ID               string `json:"id"`
	DisplayName      string `json:"displayName"`
	BaseName         string `json:"baseName"`
	DurationMinutes  int    `json:"durationMinutes"`
	IsOnlineBookable bool   `json:"isOnlineBookable"`
	IsActive         bool   `json:"isActive"`
}

func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("handler", "CreateServiceType"))

	var req createServiceTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_json"))
		writeError(w, http.StatusBadRequest, codeValidation, "invalid json body")
		return
	}

	serviceType, err := h.svc.Create(r.Context(), catalog.CreateInput{
		DisplayName:      req.DisplayName,
		BaseName:         req.BaseName,
		DurationMinutes:  req.DurationMinutes,
		IsOnlineBookable: req.IsOnlineBookable,
	})
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			log.Warn("invalid request", slog.Any("err", err))
			writeError(w, http.StatusBadRequest, codeValidation, vErr.Error())
			return
		}
		log.Error("service type create failed", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}

	log.Info("service type created",
		slog.String("service_type_id", serviceType.ID.String()),
		slog.Int("duration_minutes", serviceType.DurationMinutes),
	)
	writeJSON(w, http.StatusOK, map[string]any{"service": toServiceTypePayload(serviceType)})
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("handler", "ListServiceTypes"))

	serviceTypes, err := h.svc.List(r.Context())
	if err != nil {
		log.Error("service type list failed", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}

	out := make([]serviceTypePayload, 0, len(serviceTypes))
	for _, st := range serviceTypes {
		out = append(out, toServiceTypePayload(st))
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": out})
}

func toServiceTypePayload(st domain.ServiceType) serviceTypePayload {
	return serviceTypePayload{
		ID:               st.ID.String(),
		DisplayName:      st.DisplayName,
		BaseName:         st.BaseName,
		DurationMinutes:  st.DurationMinutes,
		IsOnlineBookable: st.IsOnlineBookable,
		IsActive:         st.IsActive,
	}
}
