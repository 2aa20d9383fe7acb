package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"salonbook/internal/domain"
	"salonbook/internal/store"
)

var (
	// ErrServiceNotFound and ErrCustomerNotFound distinguish a bad reference
	// on a create request from a missing booking on cancel; callers surface
	// them as client errors, not 404s.
	ErrServiceNotFound    = errors.New("service type not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrServiceNotBookable = errors.New("service type is not bookable online")
)

type Service struct {
	repo      store.BookingRepository
	services  store.ServiceTypeRepository
	customers store.CustomerRepository
	hours     domain.BusinessHours
}

func NewService(repo store.BookingRepository, services store.ServiceTypeRepository, customers store.CustomerRepository, hours domain.BusinessHours) *Service {
	return &Service{
		repo:      repo,
		services:  services,
		customers: customers,
		hours:     hours,
	}
}

type CreateInput struct {
	Date          string
	Time          string
	ServiceTypeID uuid.UUID
	CustomerID    uuid.UUID
	Notes         string
	Source        domain.BookingSource
}

// Create turns a date, a time and a service into a booking interval and hands
// it to the store's atomic check-and-create. Validation finishes before any
// state is touched; a conflict comes back verbatim so the caller can offer a
// different slot.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Booking, error) {
	day, err := domain.ParseDate(in.Date)
	if err != nil {
		return domain.Booking{}, err
	}
	clock, err := domain.ParseClock(in.Time)
	if err != nil {
		return domain.Booking{}, err
	}
	if in.ServiceTypeID == uuid.Nil {
		return domain.Booking{}, domain.NewValidationError("serviceTypeId is required")
	}
	if in.CustomerID == uuid.Nil {
		return domain.Booking{}, domain.NewValidationError("customerId is required")
	}

	source := in.Source
	if source == "" {
		source = domain.BookingSourceAdmin
	}
	if source != domain.BookingSourceAdmin && source != domain.BookingSourceOnline {
		return domain.Booking{}, domain.NewValidationError("source must be ADMIN or ONLINE")
	}

	serviceType, err := s.services.Get(ctx, in.ServiceTypeID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Booking{}, ErrServiceNotFound
	}
	if err != nil {
		return domain.Booking{}, err
	}

	customer, err := s.customers.Get(ctx, in.CustomerID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Booking{}, ErrCustomerNotFound
	}
	if err != nil {
		return domain.Booking{}, err
	}

	if source == domain.BookingSourceOnline {
		if !serviceType.IsActive || !serviceType.IsOnlineBookable {
			return domain.Booking{}, ErrServiceNotBookable
		}
		m := clock.MinutesSinceMidnight()
		if m < s.hours.Open.MinutesSinceMidnight() || m >= s.hours.Close.MinutesSinceMidnight() {
			return domain.Booking{}, domain.NewValidationError("time is outside business hours")
		}
	}

	startAt, endAt := domain.ToInterval(day, clock, serviceType.DurationMinutes)

	out, err := s.repo.Create(ctx, domain.Booking{
		CustomerID:    in.CustomerID,
		ServiceTypeID: in.ServiceTypeID,
		StartAt:       startAt,
		EndAt:         endAt,
		Status:        domain.BookingStatusActive,
		Source:        source,
		Notes:         strings.TrimSpace(in.Notes),
	})
	if err != nil {
		return domain.Booking{}, err
	}

	out.Customer = &customer
	out.ServiceType = &serviceType
	return out, nil
}

// ListDay returns active bookings overlapping the date's window, ordered by
// start time. Overlap, not date equality: a booking that started the previous
// evening and runs past midnight shows up too.
func (s *Service) ListDay(ctx context.Context, date string) ([]domain.Booking, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	windowStart, windowEnd := domain.DayWindow(day)
	return s.repo.ListWindow(ctx, windowStart, windowEnd)
}

func (s *Service) Cancel(ctx context.Context, bookingID uuid.UUID) (domain.Booking, error) {
	if bookingID == uuid.Nil {
		return domain.Booking{}, domain.NewValidationError("booking id is required")
	}
	return s.repo.Cancel(ctx, bookingID)
}

// Slots builds the advisory free/blocked view for a date and service. It is
// a snapshot: availability is re-validated when the caller commits to a
// create.
func (s *Service) Slots(ctx context.Context, date string, serviceTypeID uuid.UUID) ([]domain.Slot, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if serviceTypeID == uuid.Nil {
		return nil, domain.NewValidationError("serviceTypeId is required")
	}

	serviceType, err := s.services.Get(ctx, serviceTypeID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}

	windowStart, windowEnd := domain.DayWindow(day)
	active, err := s.repo.ListWindow(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.BusyInterval, 0, len(active))
	for i := range active {
		b := &active[i]
		busy = append(busy, domain.BusyInterval{
			Interval: b.Interval(),
			Label:    busyLabel(b),
		})
	}

	return domain.BuildDaySchedule(day, s.hours, serviceType.DurationMinutes, busy), nil
}

func busyLabel(b *domain.Booking) string {
	name := "Appointment"
	if b.ServiceType != nil && b.ServiceType.DisplayName != "" {
		name = b.ServiceType.DisplayName
	}
	return fmt.Sprintf("%s (%s)", name, b.Source)
}
