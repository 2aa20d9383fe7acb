package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"salonbook/internal/domain"
	"salonbook/internal/service/bookings"
	"salonbook/internal/service/catalog"
	"salonbook/internal/service/customers"
	"salonbook/internal/store"
)

type fakeBookingsService struct {
	createFn  func(ctx context.Context, in bookings.CreateInput) (domain.Booking, error)
	listDayFn func(ctx context.Context, date string) ([]domain.Booking, error)
	cancelFn  func(ctx context.Context, bookingID uuid.UUID) (domain.Booking, error)
	slotsFn   func(ctx context.Context, date string, serviceTypeID uuid.UUID) ([]domain.Slot, error)
}

func (f *fakeBookingsService) Create(ctx context.Context, in bookings.CreateInput) (domain.Booking, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, in)
}

func (f *fakeBookingsService) ListDay(ctx context.Context, date string) ([]domain.Booking, error) {
	if f.listDayFn == nil {
		panic("ListDay not configured")
	}
	return f.listDayFn(ctx, date)
}

func (f *fakeBookingsService) Cancel(ctx context.Context, bookingID uuid.UUID) (domain.Booking, error) {
	if f.cancelFn == nil {
		panic("Cancel not configured")
	}
	return f.cancelFn(ctx, bookingID)
}

func (f *fakeBookingsService) Slots(ctx context.Context, date string, serviceTypeID uuid.UUID) ([]domain.Slot, error) {
	if f.slotsFn == nil {
		panic("Slots not configured")
	}
	return f.slotsFn(ctx, date, serviceTypeID)
}

type fakeCatalogService struct {
	createFn func(ctx context.Context, in catalog.CreateInput) (domain.ServiceType, error)
	listFn   func(ctx context.Context) ([]domain.ServiceType, error)
}

func (f *fakeCatalogService) Create(ctx context.Context, in catalog.CreateInput) (domain.ServiceType, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, in)
}

func (f *fakeCatalogService) List(ctx context.Context) ([]domain.ServiceType, error) {
	if f.listFn == nil {
		panic("List not configured")
	}
	return f.listFn(ctx)
}

type fakeCustomersService struct {
	createFn func(ctx context.Context, in customers.CreateInput) (domain.Customer, error)
	searchFn func(ctx context.Context, query string) ([]domain.Customer, error)
}

func (f *fakeCustomersService) Create(ctx context.Context, in customers.CreateInput) (domain.Customer, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, in)
}

func (f *fakeCustomersService) Search(ctx context.Context, query string) ([]domain.Customer, error) {
	if f.searchFn == nil {
		panic("Search not configured")
	}
	return f.searchFn(ctx, query)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, b *fakeBookingsService, c *fakeCatalogService, cu *fakeCustomersService) *httptest.Server {
	t.Helper()
	log := discardLogger()
	if b == nil {
		b = &fakeBookingsService{}
	}
	if c == nil {
		c = &fakeCatalogService{}
	}
	if cu == nil {
		cu = &fakeCustomersService{}
	}
	router := NewRouter(Handlers{
		Bookings:  NewBookingsHandler(b, log),
		Catalog:   NewCatalogHandler(c, log),
		Customers: NewCustomersHandler(cu, log),
	}, log, RouterOptions{MaxBodyBytes: 1 << 20, RequestTimeout: 5 * time.Second})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("NewRequest error: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil && err != io.EOF {
		t.Fatalf("decode response: %v", err)
	}
	return resp, payload
}

func sampleBooking() domain.Booking {
	start := time.Date(2024, 1, 10, 10, 0, 0, 0, time.Local)
	return domain.Booking{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		ServiceTypeID: uuid.New(),
		StartAt:       start,
		EndAt:         start.Add(30 * time.Minute),
		Status:        domain.BookingStatusActive,
		Source:        domain.BookingSourceAdmin,
		CreatedAt:     start,
		Customer:      &domain.Customer{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace", Phone: "123456"},
		ServiceType:   &domain.ServiceType{ID: uuid.New(), DisplayName: "Beratung", BaseName: "beratung", DurationMinutes: 30},
	}
}

func TestCreateBooking_Success(t *testing.T) {
	want := sampleBooking()
	var gotInput bookings.CreateInput
	svc := &fakeBookingsService{
		createFn: func(ctx context.Context, in bookings.CreateInput) (domain.Booking, error) {
			gotInput = in
			return want, nil
		},
	}
	srv := newTestServer(t, svc, nil, nil)

	body := `{"date":"2024-01-10","time":"10:00","serviceTypeId":"` + want.ServiceTypeID.String() +
		`","customerId":"` + want.CustomerID.String() + `","source":"ADMIN"}`
	resp, payload := doJSON(t, http.MethodPost, srv.URL+"/api/bookings", body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if gotInput.Date != "2024-01-10" || gotInput.Time != "10:00" {
		t.Fatalf("input = %+v, want parsed date and time", gotInput)
	}

	booking, ok := payload["booking"].(map[string]any)
	if !ok {
		t.Fatalf("response missing booking object: %v", payload)
	}
	if booking["startAt"] != "2024-01-10T10:00:00" {
		t.Fatalf("startAt = %v, want civil local time without offset", booking["startAt"])
	}
	if booking["status"] != "ACTIVE" {
		t.Fatalf("status = %v, want ACTIVE", booking["status"])
	}
	customer, ok := booking["customer"].(map[string]any)
	if !ok || customer["firstName"] != "Ada" {
		t.Fatalf("customer payload = %v, want embedded display data", booking["customer"])
	}
}

func TestCreateBooking_Conflict(t *testing.T) {
	svc := &fakeBookingsService{
		createFn: func(ctx context.Context, in bookings.CreateInput) (domain.Booking, error) {
			return domain.Booking{}, store.ErrConflict
		},
	}
	srv := newTestServer(t, svc, nil, nil)

	body := `{"date":"2024-01-10","time":"10:00","serviceTypeId":"` + uuid.NewString() +
		`","customerId":"` + uuid.NewString() + `"}`
	resp, payload := doJSON(t, http.MethodPost, srv.URL+"/api/bookings", body)

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
	if payload["error"] != "CONFLICT" {
		t.Fatalf("error code = %v, want CONFLICT", payload["error"])
	}
	if msg, _ := payload["message"].(string); !strings.Contains(msg, "different slot") {
		t.Fatalf("message = %v, want slot advice", payload["message"])
	}
}

func TestCreateBooking_BadInput(t *testing.T) {
	srv := newTestServer(t, &fakeBookingsService{}, nil, nil)

	resp, payload := doJSON(t, http.MethodPost, srv.URL+"/api/bookings", `{not json`)
	if resp.StatusCode != http.StatusBadRequest || payload["error"] != "VALIDATION" {
		t.Fatalf("bad json: status = %d, error = %v", resp.StatusCode, payload["error"])
	}

	resp, payload = doJSON(t, http.MethodPost, srv.URL+"/api/bookings",
		`{"date":"2024-01-10","time":"10:00","serviceTypeId":"not-a-uuid","customerId":"`+uuid.NewString()+`"}`)
	if resp.StatusCode != http.StatusBadRequest || payload["error"] != "VALIDATION" {
		t.Fatalf("bad uuid: status = %d, error = %v", resp.StatusCode, payload["error"])
	}
}

func TestCreateBooking_UnknownServiceType(t *testing.T) {
	svc := &fakeBookingsService{
		createFn: func(ctx context.Context, in bookings.CreateInput) (domain.Booking, error) {
			return domain.Booking{}, bookings.ErrServiceNotFound
		},
	}
	srv := newTestServer(t, svc, nil, nil)

	body := `{"date":"2024-01-10","time":"10:00","serviceTypeId":"` + uuid.NewString() +
		`","customerId":"` + uuid.NewString() + `"}`
	resp, payload := doJSON(t, http.MethodPost, srv.URL+"/api/bookings", body)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if payload["error"] != "SERVICE_NOT_FOUND" {
		t.Fatalf("error code = %v, want SERVICE_NOT_FOUND", payload["error"])
	}
}

func TestListBookings_NoDateReturnsEmpty(t *testing.T) {
	srv := newTestServer(t, &fakeBookingsService{}, nil, nil)

	resp, payload := doJSON(t, http.MethodGet, srv.URL+"/api/bookings", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	list, ok := payload["bookings"].([]any)
	if !ok || len(list) != 0 {
		t.Fatalf("bookings = %v, want empty array", payload["bookings"])
	}
}

func TestListBookings_ByDate(t *testing.T) {
	b := sampleBooking()
	svc := &fakeBookingsService{
		listDayFn: func(ctx context.Context, date string) ([]domain.Booking, error) {
			if date != "2024-01-10" {
				t.Errorf("date = %q, want 2024-01-10", date)
			}
			return []domain.Booking{b}, nil
		},
	}
	srv := newTestServer(t, svc, nil, nil)

	resp, payload := doJSON(t, http.MethodGet, srv.URL+"/api/bookings?date=2024-01-10", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	list, ok := payload["bookings"].([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("bookings = %v, want one entry", payload["bookings"])
	}
}

func TestCancelBooking(t *testing.T) {
	b := sampleBooking()
	b.Status = domain.BookingStatusCanceled
	svc := &fakeBookingsService{
		cancelFn: func(ctx context.Context, bookingID uuid.UUID) (domain.Booking, error) {
			if bookingID != b.ID {
				t.Errorf("bookingID = %v, want path id", bookingID)
			}
			return b, nil
		},
	}
	srv := newTestServer(t, svc, nil, nil)

	resp, payload := doJSON(t, http.MethodDelete, srv.URL+"/api/bookings/"+b.ID.String(), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if payload["ok"] != true {
		t.Fatalf("ok = %v, want true", payload["ok"])
	}
	booking, _ := payload["booking"].(map[string]any)
	if booking["status"] != "CANCELED" {
		t.Fatalf("status = %v, want CANCELED", booking["status"])
	}
}

func TestCancelBooking_Unknown(t *testing.T) {
	svc := &fakeBookingsService{
		cancelFn: func(ctx context.Context, bookingID uuid.UUID) (domain.Booking, error) {
			return domain.Booking{}, store.ErrNotFound
		},
	}
	srv := newTestServer(t, svc, nil, nil)

	resp, payload := doJSON(t, http.MethodDelete, srv.URL+"/api/bookings/"+uuid.NewString(), "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if payload["error"] != "NOT_FOUND" {
		t.Fatalf("error code = %v, want NOT_FOUND", payload["error"])
	}
}

func TestCancelBooking_BadID(t *testing.T) {
	srv := newTestServer(t, &fakeBookingsService{}, nil, nil)

	resp, payload := doJSON(t, http.MethodDelete, srv.URL+"/api/bookings/not-a-uuid", "")
	if resp.StatusCode != http.StatusBadRequest || payload["error"] != "VALIDATION" {
		t.Fatalf("status = %d, error = %v", resp.StatusCode, payload["error"])
	}
}

func TestListSlots(t *testing.T) {
	serviceTypeID := uuid.New()
	svc := &fakeBookingsService{
		slotsFn: func(ctx context.Context, date string, id uuid.UUID) ([]domain.Slot, error) {
			if date != "2024-01-10" || id != serviceTypeID {
				t.Errorf("args = (%q, %v), want query values", date, id)
			}
			return []domain.Slot{
				{Time: "09:00"},
				{Time: "09:30", Blocked: true, BlockedBy: "Beratung (ADMIN)"},
			}, nil
		},
	}
	srv := newTestServer(t, svc, nil, nil)

	resp, payload := doJSON(t, http.MethodGet,
		srv.URL+"/api/slots?date=2024-01-10&serviceTypeId="+serviceTypeID.String(), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	slots, ok := payload["slots"].([]any)
	if !ok || len(slots) != 2 {
		t.Fatalf("slots = %v, want two entries", payload["slots"])
	}
	free, _ := slots[0].(map[string]any)
	if free["blocked"] != false {
		t.Fatalf("free slot = %v", free)
	}
	if _, present := free["blockedBy"]; present {
		t.Fatalf("free slot should omit blockedBy: %v", free)
	}
	blocked, _ := slots[1].(map[string]any)
	if blocked["blockedBy"] != "Beratung (ADMIN)" {
		t.Fatalf("blocked slot = %v", blocked)
	}
}

func TestCreateCustomer_PhoneConflict(t *testing.T) {
	svc := &fakeCustomersService{
		createFn: func(ctx context.Context, in customers.CreateInput) (domain.Customer, error) {
			return domain.Customer{}, store.ErrConflict
		},
	}
	srv := newTestServer(t, nil, nil, svc)

	resp, payload := doJSON(t, http.MethodPost, srv.URL+"/api/customers",
		`{"firstName":"Ada","lastName":"Lovelace","phone":"123456"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
	if payload["error"] != "CONFLICT" {
		t.Fatalf("error code = %v, want CONFLICT", payload["error"])
	}
}

func TestListServices(t *testing.T) {
	svc := &fakeCatalogService{
		listFn: func(ctx context.Context) ([]domain.ServiceType, error) {
			return []domain.ServiceType{{ID: uuid.New(), DisplayName: "Beratung", DurationMinutes: 30, IsActive: true}}, nil
		},
	}
	srv := newTestServer(t, nil, svc, nil)

	resp, payload := doJSON(t, http.MethodGet, srv.URL+"/api/services", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	services, ok := payload["services"].([]any)
	if !ok || len(services) != 1 {
		t.Fatalf("services = %v, want one entry", payload["services"])
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
