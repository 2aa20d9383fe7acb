package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"salonbook/internal/config"
	"salonbook/internal/domain"
	"salonbook/internal/service/bookings"
	"salonbook/internal/service/catalog"
	"salonbook/internal/service/customers"
	"salonbook/internal/store/postgres"
	httpTransport "salonbook/internal/transport/http"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With(
		slog.String("service", "salonbook-server"),
	)
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)})).With(
		slog.String("service", "salonbook-server"),
	)
	slog.SetDefault(log)

	hours, err := businessHours(cfg)
	if err != nil {
		log.Error("invalid business hours config", slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("starting",
		slog.String("http_addr", cfg.HTTPAddr()),
		slog.String("log_level", cfg.LogLevel),
		slog.String("business_open", hours.Open.String()),
		slog.String("business_close", hours.Close.String()),
	)

	log.Info("connecting to database", databaseLogArgs(cfg.DatabaseURL)...)
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()
	db, err := postgres.Open(dbCtx, cfg.DatabaseURL, postgres.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		args := append([]any{slog.Any("err", err)}, databaseLogArgs(cfg.DatabaseURL)...)
		log.Error("database connection failed", args...)
		os.Exit(1)
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			log.Warn("database close failed", slog.Any("err", err))
		}
	}()

	if err := postgres.Migrate(context.Background(), db); err != nil {
		log.Error("migrations failed", slog.Any("err", err))
		os.Exit(1)
	}

	bookingRepo := postgres.NewBookingRepo(db)
	serviceTypeRepo := postgres.NewServiceTypeRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)

	bookingSvc := bookings.NewService(bookingRepo, serviceTypeRepo, customerRepo, hours)
	catalogSvc := catalog.NewService(serviceTypeRepo)
	customerSvc := customers.NewService(customerRepo)

	router := httpTransport.NewRouter(httpTransport.Handlers{
		Bookings:  httpTransport.NewBookingsHandler(bookingSvc, log),
		Catalog:   httpTransport.NewCatalogHandler(catalogSvc, log),
		Customers: httpTransport.NewCustomersHandler(customerSvc, log),
	}, log, httpTransport.RouterOptions{
		MaxBodyBytes:   cfg.MaxBodyBytes,
		RequestTimeout: cfg.HTTPRequestTimeout,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	log.Info("http server started", slog.String("http_addr", cfg.HTTPAddr()))

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdown(log, server, cfg.ShutdownTimeout)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped with error", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func businessHours(cfg config.Config) (domain.BusinessHours, error) {
	open, err := domain.ParseClock(cfg.BusinessOpen)
	if err != nil {
		return domain.BusinessHours{}, err
	}
	closeAt, err := domain.ParseClock(cfg.BusinessClose)
	if err != nil {
		return domain.BusinessHours{}, err
	}
	if closeAt.MinutesSinceMidnight() <= open.MinutesSinceMidnight() {
		return domain.BusinessHours{}, errors.New("business close must be after open")
	}
	if cfg.SlotStepMinutes <= 0 {
		return domain.BusinessHours{}, errors.New("slot step must be positive")
	}
	return domain.BusinessHours{Open: open, Close: closeAt, StepMinutes: cfg.SlotStepMinutes}, nil
}

func shutdown(log *slog.Logger, s *http.Server, timeout time.Duration) {
	log.Info("shutting down http server", slog.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Warn("http graceful shutdown timed out; forcing close", slog.Any("err", err))
		_ = s.Close()
		return
	}
	log.Info("http server stopped")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func databaseLogArgs(databaseURL string) []any {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return []any{slog.String("db_url", "invalid")}
	}
	name := strings.TrimPrefix(u.Path, "/")
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "default"
	}
	if host == "" {
		host = "unknown"
	}
	if name == "" {
		name = "unknown"
	}
	return []any{
		slog.String("db_host", host),
		slog.String("db_port", port),
		slog.String("db_name", name),
	}
}
