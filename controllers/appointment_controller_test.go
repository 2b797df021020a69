package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Grizzway/SalonSync-sub000/config"
	"github.com/Grizzway/SalonSync-sub000/controllers"
	"github.com/Grizzway/SalonSync-sub000/middleware"
	"github.com/Grizzway/SalonSync-sub000/models"
	"github.com/Grizzway/SalonSync-sub000/routes"
	"github.com/Grizzway/SalonSync-sub000/services"
	"github.com/Grizzway/SalonSync-sub000/utils"
)

// Stubs embed the store interfaces and implement only what the booking endpoints touch.

type stubAppointments struct {
	services.AppointmentStore
	mu   sync.Mutex
	docs []models.Appointment
}

func (s *stubAppointments) FindBySlot(_ context.Context, slot models.Slot) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if slotOf(&s.docs[i]) == slot {
			a := s.docs[i]
			return &a, nil
		}
	}
	return nil, nil
}

func slotOf(a *models.Appointment) models.Slot {
	return models.Slot{EmployeeID: a.EmployeeID, Date: a.Date, Time: a.Time}
}

func (s *stubAppointments) FindByAppointmentID(_ context.Context, id int) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].AppointmentID == id {
			a := s.docs[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (s *stubAppointments) Insert(_ context.Context, a *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = primitive.NewObjectID()
	s.docs = append(s.docs, *a)
	return nil
}

func (s *stubAppointments) DeleteByAppointmentID(_ context.Context, id int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].AppointmentID == id {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *stubAppointments) ListByCustomer(_ context.Context, id int) ([]models.AppointmentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.AppointmentView
	for _, a := range s.docs {
		if a.CustomerID == id {
			out = append(out, models.AppointmentView{Appointment: a, EmployeeName: "Sam"})
		}
	}
	return out, nil
}

func (s *stubAppointments) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

type stubCustomers struct {
	services.CustomerStore
}

func (stubCustomers) FindByID(_ context.Context, id int) (*models.Customer, error) {
	return &models.Customer{CustomerID: id, Name: "Jane", Email: "jane@example.com"}, nil
}

type stubEmployees struct {
	services.EmployeeStore
}

func (stubEmployees) FindByID(_ context.Context, id int) (*models.Employee, error) {
	return &models.Employee{
		EmployeeID:  id,
		SalonID:     7,
		Name:        "Sam",
		Email:       "sam@example.com",
		Specialties: []models.Specialty{{Name: "Haircut", Duration: 30, Price: 50}},
	}, nil
}

type stubPayments struct {
	services.PaymentStore
	mu   sync.Mutex
	docs []models.Payment
}

func (s *stubPayments) Insert(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, *p)
	return nil
}

func (s *stubPayments) FindByAppointment(_ context.Context, ref primitive.ObjectID) (*models.Payment, error) {
	return nil, nil
}

type seqIDs struct {
	mu   sync.Mutex
	next int
}

func (s *seqIDs) Next(context.Context, string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next == 0 {
		s.next = models.BaseID
	}
	id := s.next
	s.next++
	return id, nil
}

type directTx struct{}

func (directTx) Atomic() bool { return false }

func (directTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type countingNotifier struct {
	mu sync.Mutex
	n  int
}

func (c *countingNotifier) Notify(context.Context, services.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
}

type harness struct {
	e            *echo.Echo
	appointments *stubAppointments
	payments     *stubPayments
	notifier     *countingNotifier
	sessions     *services.SessionManager
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		appointments: &stubAppointments{},
		payments:     &stubPayments{},
		notifier:     &countingNotifier{},
		sessions:     services.NewSessionManager(services.NewMemorySessionStore(), "test-secret", time.Hour),
	}
	stores := services.Stores{
		Customers:    stubCustomers{},
		Employees:    stubEmployees{},
		Appointments: h.appointments,
		Payments:     h.payments,
	}
	bookings := services.NewBookingService(stores, &seqIDs{}, directTx{}, h.notifier,
		config.BookingConfig{DefaultDuration: 60, DefaultPrice: 100})

	h.e = echo.New()
	h.e.Validator = utils.NewValidator()
	h.e.HTTPErrorHandler = middleware.HTTPErrorHandler
	routes.SetupRoutes(h.e, routes.Controllers{
		Appointments: controllers.NewAppointmentController(bookings),
		Payments:     controllers.NewPaymentController(bookings),
	}, h.sessions)
	return h
}

func (h *harness) login(t *testing.T, user models.SessionUser) *http.Cookie {
	t.Helper()
	token, _, err := h.sessions.Issue(context.Background(), user)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookie, Value: token}
}

func (h *harness) do(method, target, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

const haircutBooking = `{"customerId":5,"salonId":7,"employeeId":42,"service":"Haircut","date":"2025-06-01","time":"10:00","paymentOption":"half"}`

func TestCreateAppointment(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/appointments", haircutBooking, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1000, resp.AppointmentID)
	assert.True(t, resp.PaymentRecorded)

	require.Len(t, h.payments.docs, 1)
	assert.Equal(t, 25.0, h.payments.docs[0].Cost)
	assert.Equal(t, 2, h.notifier.n)
}

func TestCreateAppointmentSlotTaken(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/appointments", haircutBooking, nil).Code)

	rec := h.do(http.MethodPost, "/appointments", haircutBooking, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "This time slot is already booked")
	assert.Equal(t, 1, h.appointments.count())
}

func TestCreateAppointmentMissingFields(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/appointments", `{"salonId":7,"service":"Haircut"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing or invalid fields")
	assert.Zero(t, h.appointments.count())
}

func TestCancelAppointment(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/appointments", haircutBooking, nil).Code)
	cookie := h.login(t, models.SessionUser{ID: 5, Name: "Jane", Type: models.UserTypeCustomer})

	t.Run("requires a session", func(t *testing.T) {
		rec := h.do(http.MethodDelete, "/appointments/customer?appointmentId=1000", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := h.do(http.MethodDelete, "/appointments/customer?appointmentId=999", "", cookie)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("cancels", func(t *testing.T) {
		before := h.notifier.n
		rec := h.do(http.MethodDelete, "/appointments/customer?appointmentId=1000", "", cookie)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp models.CancellationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Zero(t, h.appointments.count())
		assert.Equal(t, before+2, h.notifier.n)
	})
}

func TestGetCustomerAppointments(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/appointments", haircutBooking, nil).Code)
	cookie := h.login(t, models.SessionUser{ID: 5, Name: "Jane", Type: models.UserTypeCustomer})

	rec := h.do(http.MethodGet, "/appointments/customer?customerId=5", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AppointmentsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "Sam", resp.Appointments[0].EmployeeName)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/appointments/customer?customerId=abc", "", cookie).Code)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/appointments/customer?customerId=6", "", cookie).Code)

	employee := h.login(t, models.SessionUser{ID: 42, Type: models.UserTypeEmployee})
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/appointments/customer?customerId=5", "", employee).Code)
}

func TestUpdatePaymentRejectsBadReference(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPatch, "/payment/update", `{"appointmentId":"not-hex","paymentOption":"full","amount":50}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid appointmentId")
}
