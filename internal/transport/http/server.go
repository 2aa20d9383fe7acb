// Package http exposes the booking API as JSON over net/http.
package http

import (
	"log/slog"
	"net/http"
	"time"
)

type Handlers struct {
	Bookings  *BookingsHandler
	Catalog   *CatalogHandler
	Customers *CustomersHandler
}

type RouterOptions struct {
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

func NewRouter(h Handlers, log *slog.Logger, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/bookings", h.Bookings.Create)
	mux.HandleFunc("GET /api/bookings", h.Bookings.List)
	mux.HandleFunc("DELETE /api/bookings/{id}", h.Bookings.Cancel)
	mux.HandleFunc("GET /api/slots", h.Bookings.Slots)

	mux.HandleFunc("GET /api/services", h.Catalog.List)
	mux.HandleFunc("POST /api/services", h.Catalog.Create)

	mux.HandleFunc("GET /api/customers", h.Customers.Search)
	mux.HandleFunc("POST /api/customers", h.Customers.Create)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	middleware := []Middleware{WithRequestID, WithAccessLog(log)}
	if opts.MaxBodyBytes > 0 {
		middleware = append(middleware, WithBodyLimit(opts.MaxBodyBytes))
	}
	if opts.RequestTimeout > 0 {
		middleware = append(middleware, WithTimeout(opts.RequestTimeout))
	}
	return Chain(mux, middleware...)
}
