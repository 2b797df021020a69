package services

import (
	"fmt"

	"github.com/Grizzway/SalonSync-sub000/models"
)

// contact is whoever a message about an appointment is addressed to
type contact struct {
	recipient string
	name      string
	email     string
	phone     string
}

func customerContact(id int, name, email, phone string) contact {
	return contact{recipient: models.RecipientKey(models.UserTypeCustomer, id), name: name, email: email, phone: phone}
}

func employeeContact(e *models.Employee, id int) contact {
	c := contact{recipient: models.RecipientKey(models.UserTypeEmployee, id), name: "there"}
	if e != nil {
		c.name = e.Name
		c.email = e.Email
	}
	return c
}

func appointmentData(a *models.Appointment) map[string]interface{} {
	return map[string]interface{}{
		"appointmentId": a.AppointmentID,
		"salonId":       a.SalonID,
		"employeeId":    a.EmployeeID,
		"customerId":    a.CustomerID,
		"service":       a.Service,
		"date":          a.Date,
		"time":          a.Time,
	}
}

func (c contact) message(kind, subject, body string, data map[string]interface{}) Message {
	return Message{
		Type:      kind,
		Recipient: c.recipient,
		Email:     c.email,
		Phone:     c.phone,
		Subject:   subject,
		Body:      body,
		Data:      data,
	}
}

func bookingConfirmationMessage(to contact, a *models.Appointment, employeeName string) Message {
	body := fmt.Sprintf("Hi %s,\n\nYour %s appointment with %s is booked for %s at %s (%d minutes, $%.2f).\nAppointment number: %d\n\nSee you soon!",
		to.name, a.Service, employeeName, a.Date, a.Time, a.Duration, a.Price, a.AppointmentID)
	return to.message(models.NotificationBookingConfirmation, "Your appointment is confirmed", body, appointmentData(a))
}

func newBookingMessage(to contact, a *models.Appointment, customerName string) Message {
	body := fmt.Sprintf("Hi %s,\n\n%s booked a %s with you on %s at %s (%d minutes).\nAppointment number: %d",
		to.name, customerName, a.Service, a.Date, a.Time, a.Duration, a.AppointmentID)
	return to.message(models.NotificationNewBooking, "New appointment booked", body, appointmentData(a))
}

func customerCancellationMessage(to contact, a *models.Appointment, refund bool) Message {
	body := fmt.Sprintf("Hi %s,\n\nYour %s appointment on %s at %s has been cancelled.", to.name, a.Service, a.Date, a.Time)
	if refund {
		body += "\nSince you paid in full, 50% of your payment will be refunded."
	}
	return to.message(models.NotificationCancellation, "Your appointment was cancelled", body, appointmentData(a))
}

func employeeCancellationMessage(to contact, a *models.Appointment, customerName string) Message {
	body := fmt.Sprintf("Hi %s,\n\n%s cancelled the %s appointment on %s at %s.", to.name, customerName, a.Service, a.Date, a.Time)
	return to.message(models.NotificationCancellation, "Appointment cancelled", body, appointmentData(a))
}

func reminderMessage(to contact, a *models.Appointment, employeeName string) Message {
	body := fmt.Sprintf("Hi %s,\n\nThis is a reminder of your %s appointment with %s tomorrow, %s at %s.",
		to.name, a.Service, employeeName, a.Date, a.Time)
	return to.message(models.NotificationReminder, "Appointment reminder", body, appointmentData(a))
}

func newReviewMessage(b *models.Business, r *models.Review, average float64) Message {
	to := contact{recipient: models.RecipientKey(models.UserTypeBusiness, b.SalonID), name: b.BusinessName, email: b.Email}
	body := fmt.Sprintf("Hi %s,\n\nYou received a new %d-star review. Your rating is now %.2f.\n\n%q",
		to.name, r.Rating, average, r.Review)
	return to.message(models.NotificationNewReview, "New review", body, map[string]interface{}{
		"salonId":    r.SalonID,
		"customerId": r.CustomerID,
		"rating":     r.Rating,
	})
}
