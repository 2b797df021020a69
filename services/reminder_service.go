package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ReminderService sends a reminder for every appointment dated tomorrow, on a cron schedule
type ReminderService struct {
	stores   Stores
	notifier Notifier
	schedule string
	cron     *cron.Cron
	now      func() time.Time
}

func NewReminderService(stores Stores, notifier Notifier, schedule string) *ReminderService {
	return &ReminderService{
		stores:   stores,
		notifier: notifier,
		schedule: schedule,
		cron:     cron.New(),
		now:      time.Now,
	}
}

// Start registers the job and starts the scheduler
func (s *ReminderService) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		sent, err := s.SendReminders(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Reminder run failed")
			return
		}
		log.Info().Int("sent", sent).Msg("Reminder run completed")
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	log.Info().Str("schedule", s.schedule).Msg("Reminder scheduler started")
	return nil
}

// Stop stops the scheduler; the returned context is done once a running job finishes
func (s *ReminderService) Stop() context.Context {
	return s.cron.Stop()
}

// SendReminders queues a reminder to the customer of each appointment tomorrow and returns how many were queued
func (s *ReminderService) SendReminders(ctx context.Context) (int, error) {
	tomorrow := s.now().AddDate(0, 0, 1).Format("2006-01-02")
	appointments, err := s.stores.Appointments.ListByDate(ctx, tomorrow)
	if err != nil {
		return 0, err
	}

	employeeNames := make(map[int]string)
	sent := 0
	for i := range appointments {
		a := &appointments[i]

		customer, err := s.stores.Customers.FindByID(ctx, a.CustomerID)
		if err != nil {
			log.Warn().Err(err).Int("appointmentId", a.AppointmentID).Msg("Skipping reminder: customer lookup failed")
			continue
		}
		if customer == nil {
			continue
		}

		name, ok := employeeNames[a.EmployeeID]
		if !ok {
			name = "your stylist"
			if employee, err := s.stores.Employees.FindByID(ctx, a.EmployeeID); err == nil && employee != nil {
				name = employee.Name
			}
			employeeNames[a.EmployeeID] = name
		}

		resolved := &ResolvedCustomer{CustomerID: customer.CustomerID}
		resolved.fillFrom(customer)
		s.notifier.Notify(ctx, reminderMessage(
			customerContact(customer.CustomerID, resolved.Name, customer.Email, customer.Phone),
			a, name))
		sent++
	}
	return sent, nil
}
