package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment options accepted from clients
const (
	PaymentHalf = "half"
	PaymentFull = "full"
)

// PaymentMethodPlaceholder is stored on every payment; no real processor is involved
const PaymentMethodPlaceholder = "Mock Card"

// Payment model. AppointmentID references the appointment's store-generated _id, not its numeric appointmentId.
type Payment struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	AppointmentID primitive.ObjectID `json:"appointmentId" bson:"appointmentId"`
	CustomerID    int                `json:"customerId" bson:"customerId"`
	SalonID       int                `json:"salonId" bson:"salonId"`
	EmployeeID    int                `json:"employeeId" bson:"employeeId"`
	Cost          float64            `json:"cost" bson:"cost"`
	PaymentMethod string             `json:"paymentMethod" bson:"paymentMethod"`
	Paid          string             `json:"paid" bson:"paid"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PaymentUpdateRequest is the body of PATCH /payment/update
type PaymentUpdateRequest struct {
	AppointmentID string   `json:"appointmentId" validate:"required"`
	PaymentOption string   `json:"paymentOption" validate:"required"`
	Amount        *float64 `json:"amount" validate:"required,gte=0"`
}

// PaidOption normalizes a client payment option. Anything other than "half" is a full payment.
func PaidOption(option string) string {
	if option == PaymentHalf {
		return PaymentHalf
	}
	return PaymentFull
}

// PaymentCost returns the amount charged at booking time for the given option
func PaymentCost(price float64, option string) float64 {
	if option == PaymentHalf {
		return price / 2
	}
	return price
}
