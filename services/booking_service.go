package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
	"github.com/Grizzway/SalonSync-sub000/config"
	"github.com/Grizzway/SalonSync-sub000/models"
)

// DefaultCustomerName is shown to employees when the customer left no name
const DefaultCustomerName = "A customer"

const errSlotBooked = "This time slot is already booked"

// BookingService owns the appointment booking, cancellation and payment recording flow
type BookingService struct {
	stores   Stores
	ids      IDAllocator
	tx       Transactor
	notifier Notifier
	defaults config.BookingConfig
	now      func() time.Time
}

func NewBookingService(stores Stores, ids IDAllocator, tx Transactor, notifier Notifier, defaults config.BookingConfig) *BookingService {
	return &BookingService{
		stores:   stores,
		ids:      ids,
		tx:       tx,
		notifier: notifier,
		defaults: defaults,
		now:      time.Now,
	}
}

// BookingResult is the outcome of a booking. Without transactions the appointment can commit
// while the payment insert fails; PaymentErr then carries that failure.
type BookingResult struct {
	Appointment *models.Appointment
	Payment     *models.Payment
	PaymentErr  error
}

// PartiallyCommitted reports an appointment stored without its payment
func (r *BookingResult) PartiallyCommitted() bool {
	return r.PaymentErr != nil
}

// ResolvedCustomer is the customer a booking is made for
type ResolvedCustomer struct {
	CustomerID int
	Name       string
	Email      string
	Phone      string
}

// Book creates the appointment and its payment, then notifies the customer and the employee
func (s *BookingService) Book(ctx context.Context, req models.BookingRequest) (*BookingResult, error) {
	slot := models.Slot{EmployeeID: req.EmployeeID, Date: req.Date, Time: req.Time}
	existing, err := s.stores.Appointments.FindBySlot(ctx, slot)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to check availability", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError(errSlotBooked)
	}

	customer, err := s.ResolveCustomer(ctx, req)
	if err != nil {
		return nil, err
	}

	employee, specialty, err := s.LookupService(ctx, req.EmployeeID, req.Service)
	if err != nil {
		return nil, err
	}

	// allocated outside the transaction; a rolled-back booking leaves a gap in the sequence
	appointmentID, err := s.ids.Next(ctx, models.SequenceAppointment)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create appointment", err)
	}

	option := models.PaidOption(req.PaymentOption)
	now := s.now()
	var result *BookingResult

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		// the transaction may run fn more than once
		result = &BookingResult{}

		appointment := &models.Appointment{
			AppointmentID: appointmentID,
			CustomerID:    customer.CustomerID,
			SalonID:       req.SalonID,
			EmployeeID:    req.EmployeeID,
			Service:       req.Service,
			Date:          req.Date,
			Time:          req.Time,
			Duration:      specialty.Duration,
			Price:         specialty.Price,
			Status:        models.AppointmentStatusBooked,
			CreatedAt:     now,
		}
		if err := s.stores.Appointments.Insert(ctx, appointment); err != nil {
			return err
		}
		result.Appointment = appointment

		payment := &models.Payment{
			AppointmentID: appointment.ID,
			CustomerID:    customer.CustomerID,
			SalonID:       req.SalonID,
			EmployeeID:    req.EmployeeID,
			Cost:          models.PaymentCost(specialty.Price, option),
			PaymentMethod: models.PaymentMethodPlaceholder,
			Paid:          option,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.stores.Payments.Insert(ctx, payment); err != nil {
			if s.tx.Atomic() {
				return err
			}
			result.PaymentErr = err
			return nil
		}
		result.Payment = payment
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, apperrors.NewConflictError(errSlotBooked)
		}
		return nil, apperrors.NewInternalError("Failed to create appointment", err)
	}

	if result.PartiallyCommitted() {
		log.Warn().Err(result.PaymentErr).
			Int("appointmentId", appointmentID).
			Msg("Appointment stored without payment record")
	}

	employeeName := "your stylist"
	if employee != nil {
		employeeName = employee.Name
	}
	s.notifier.Notify(ctx, bookingConfirmationMessage(
		customerContact(customer.CustomerID, customer.Name, customer.Email, customer.Phone),
		result.Appointment, employeeName))
	s.notifier.Notify(ctx, newBookingMessage(
		employeeContact(employee, req.EmployeeID),
		result.Appointment, customer.Name))

	return result, nil
}

// ResolveCustomer trusts an explicit customerId; otherwise it finds the customer by email
// or creates a guest customer
func (s *BookingService) ResolveCustomer(ctx context.Context, req models.BookingRequest) (*ResolvedCustomer, error) {
	resolved := &ResolvedCustomer{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Phone: strings.TrimSpace(req.Phone),
	}

	if req.CustomerID != nil && *req.CustomerID > 0 {
		resolved.CustomerID = *req.CustomerID
		// details only feed notifications, so a failed lookup is not fatal
		existing, err := s.stores.Customers.FindByID(ctx, resolved.CustomerID)
		if err != nil {
			log.Warn().Err(err).Int("customerId", resolved.CustomerID).Msg("Customer lookup failed")
		}
		resolved.fillFrom(existing)
		return resolved, nil
	}

	if resolved.Email == "" {
		return nil, apperrors.NewValidationError("Missing required fields")
	}

	existing, err := s.stores.Customers.FindByEmail(ctx, resolved.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to resolve customer", err)
	}
	if existing != nil {
		resolved.CustomerID = existing.CustomerID
		resolved.fillFrom(existing)
		return resolved, nil
	}

	customerID, err := s.ids.Next(ctx, models.SequenceCustomer)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to resolve customer", err)
	}
	customer := &models.Customer{
		CustomerID:     customerID,
		Name:           resolved.Name,
		Email:          resolved.Email,
		Phone:          resolved.Phone,
		Bio:            "",
		ProfilePicture: nil,
		CreatedAt:      s.now(),
	}
	if err := s.stores.Customers.Insert(ctx, customer); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, apperrors.NewInternalError("Failed to resolve customer", err)
		}
		// a concurrent booking created the same email first
		existing, err = s.stores.Customers.FindByEmail(ctx, resolved.Email)
		if err != nil || existing == nil {
			return nil, apperrors.NewInternalError("Failed to resolve customer", err)
		}
		customerID = existing.CustomerID
	}

	resolved.CustomerID = customerID
	resolved.fillFrom(nil)
	return resolved, nil
}

func (r *ResolvedCustomer) fillFrom(c *models.Customer) {
	if c != nil {
		if r.Name == "" {
			r.Name = c.Name
		}
		if r.Email == "" {
			r.Email = c.Email
		}
		if r.Phone == "" {
			r.Phone = c.Phone
		}
	}
	if r.Name == "" {
		r.Name = DefaultCustomerName
	}
}

// LookupService finds the price and duration of the named service among the employee's specialties.
// The match is exact and case-sensitive. A miss falls back to the configured defaults.
func (s *BookingService) LookupService(ctx context.Context, employeeID int, service string) (*models.Employee, models.Specialty, error) {
	fallback := models.Specialty{Name: service, Duration: s.defaults.DefaultDuration, Price: s.defaults.DefaultPrice}

	employee, err := s.stores.Employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, fallback, apperrors.NewInternalError("Failed to look up service", err)
	}
	if employee == nil {
		log.Warn().Int("employeeId", employeeID).Msg("Employee not found, using default service price and duration")
		return nil, fallback, nil
	}

	specialty, ok := employee.FindSpecialty(service)
	if !ok {
		log.Warn().Int("employeeId", employeeID).Str("service", service).Msg("Service not offered, using default price and duration")
		return employee, fallback, nil
	}
	return employee, specialty, nil
}

// CancelResult describes a completed cancellation
type CancelResult struct {
	Appointment *models.Appointment
	Refund      bool
}

// Cancel deletes the appointment and notifies both parties. The payment record is left untouched;
// the refund is only announced.
func (s *BookingService) Cancel(ctx context.Context, appointmentID int, actor *models.SessionUser) (*CancelResult, error) {
	appointment, err := s.stores.Appointments.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to cancel appointment", err)
	}
	if appointment == nil {
		return nil, apperrors.NewNotFoundError("Appointment not found")
	}
	if !canManageAppointment(actor, appointment) {
		return nil, apperrors.NewForbiddenError("You cannot cancel this appointment")
	}

	customer, err := s.stores.Customers.FindByID(ctx, appointment.CustomerID)
	if err != nil {
		log.Warn().Err(err).Int("customerId", appointment.CustomerID).Msg("Customer lookup failed")
	}
	employee, err := s.stores.Employees.FindByID(ctx, appointment.EmployeeID)
	if err != nil {
		log.Warn().Err(err).Int("employeeId", appointment.EmployeeID).Msg("Employee lookup failed")
	}
	payment, err := s.stores.Payments.FindByAppointment(ctx, appointment.ID)
	if err != nil {
		log.Warn().Err(err).Int("appointmentId", appointmentID).Msg("Payment lookup failed")
	}

	deleted, err := s.stores.Appointments.DeleteByAppointmentID(ctx, appointmentID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to cancel appointment", err)
	}
	if deleted != 1 {
		return nil, apperrors.NewInternalError("Failed to cancel appointment", nil)
	}

	refund := payment != nil && payment.Paid == models.PaymentFull

	resolved := &ResolvedCustomer{CustomerID: appointment.CustomerID}
	resolved.fillFrom(customer)
	s.notifier.Notify(ctx, customerCancellationMessage(
		customerContact(resolved.CustomerID, resolved.Name, resolved.Email, resolved.Phone),
		appointment, refund))
	s.notifier.Notify(ctx, employeeCancellationMessage(
		employeeContact(employee, appointment.EmployeeID),
		appointment, resolved.Name))

	return &CancelResult{Appointment: appointment, Refund: refund}, nil
}

// canManageAppointment allows the booking customer, the assigned employee and the salon owner
func canManageAppointment(actor *models.SessionUser, a *models.Appointment) bool {
	if actor == nil {
		return false
	}
	switch actor.Type {
	case models.UserTypeCustomer:
		return actor.ID == a.CustomerID
	case models.UserTypeEmployee:
		return actor.ID == a.EmployeeID
	case models.UserTypeBusiness:
		return actor.ID == a.SalonID
	default:
		return false
	}
}

func (s *BookingService) ListCustomerAppointments(ctx context.Context, customerID int) ([]models.AppointmentView, error) {
	if customerID <= 0 {
		return nil, apperrors.NewValidationError("Missing customerId")
	}
	appointments, err := s.stores.Appointments.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to fetch appointments", err)
	}
	return appointments, nil
}

func (s *BookingService) ListEmployeeAppointments(ctx context.Context, employeeID int) ([]models.AppointmentView, error) {
	if employeeID <= 0 {
		return nil, apperrors.NewValidationError("Missing employeeId")
	}
	appointments, err := s.stores.Appointments.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to fetch appointments", err)
	}
	return appointments, nil
}

// BookedTimes lists the taken start times of an employee on a date
func (s *BookingService) BookedTimes(ctx context.Context, employeeID int, date string) ([]string, error) {
	if employeeID <= 0 {
		return nil, apperrors.NewValidationError("Missing employeeId")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperrors.NewValidationError("Invalid date, expected YYYY-MM-DD")
	}
	times, err := s.stores.Appointments.BookedTimes(ctx, employeeID, date)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to fetch booked times", err)
	}
	return times, nil
}

// UpdatePayment overwrites cost and paid option of the payment for the appointment with the
// given store _id, creating the payment when it does not exist yet
func (s *BookingService) UpdatePayment(ctx context.Context, req models.PaymentUpdateRequest) (*models.Payment, bool, error) {
	ref, err := primitive.ObjectIDFromHex(req.AppointmentID)
	if err != nil {
		return nil, false, apperrors.NewValidationError("Invalid appointmentId")
	}
	if req.PaymentOption != models.PaymentHalf && req.PaymentOption != models.PaymentFull {
		return nil, false, apperrors.NewValidationError("paymentOption must be \"half\" or \"full\"")
	}
	if req.Amount == nil || *req.Amount < 0 {
		return nil, false, apperrors.NewValidationError("Invalid amount")
	}

	payment := &models.Payment{
		AppointmentID: ref,
		Cost:          *req.Amount,
		Paid:          req.PaymentOption,
		PaymentMethod: models.PaymentMethodPlaceholder,
	}

	appointment, err := s.stores.Appointments.FindByObjectID(ctx, ref)
	if err != nil {
		return nil, false, apperrors.NewInternalError("Failed to update payment", err)
	}
	if appointment != nil {
		payment.CustomerID = appointment.CustomerID
		payment.SalonID = appointment.SalonID
		payment.EmployeeID = appointment.EmployeeID
	} else {
		log.Warn().Str("appointmentRef", req.AppointmentID).Msg("Recording payment for unknown appointment")
	}

	created, err := s.stores.Payments.Upsert(ctx, payment)
	if err != nil {
		return nil, false, apperrors.NewInternalError("Failed to update payment", err)
	}
	return payment, created, nil
}
