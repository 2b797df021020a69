package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment statuses. Cancelled appointments are hard-deleted, so "Booked" is the only stored value.
const (
	AppointmentStatusBooked = "Booked"
)

// Appointment model
type Appointment struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	AppointmentID int                `json:"appointmentId" bson:"appointmentId"`
	CustomerID    int                `json:"customerId" bson:"customerId"`
	SalonID       int                `json:"salonId" bson:"salonId"`
	EmployeeID    int                `json:"employeeId" bson:"employeeId"`
	Service       string             `json:"service" bson:"service"` // specialty name, not a reference
	Date          string             `json:"date" bson:"date"`       // YYYY-MM-DD
	Time          string             `json:"time" bson:"time"`       // HH:MM
	Duration      int                `json:"duration" bson:"duration"`
	Price         float64            `json:"price" bson:"price"`
	Status        string             `json:"status" bson:"status"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

// AppointmentView is an appointment joined with the display name of the other party
type AppointmentView struct {
	Appointment  `bson:",inline"`
	EmployeeName string `json:"employeeName,omitempty" bson:"employeeName,omitempty"`
	CustomerName string `json:"customerName,omitempty" bson:"customerName,omitempty"`
	SalonName    string `json:"salonName,omitempty" bson:"salonName,omitempty"`
}

// BookingRequest is the body of POST /appointments
type BookingRequest struct {
	CustomerID    *int   `json:"customerId"`
	Name          string `json:"name"`
	Email         string `json:"email" validate:"required_without=CustomerID,omitempty,email"`
	Phone         string `json:"phone"`
	SalonID       int    `json:"salonId" validate:"required"`
	EmployeeID    int    `json:"employeeId" validate:"required"`
	Service       string `json:"service" validate:"required"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string `json:"time" validate:"required,datetime=15:04"`
	PaymentOption string `json:"paymentOption"`
}

// Slot identifies a bookable window
type Slot struct {
	EmployeeID int
	Date       string
	Time       string
}
