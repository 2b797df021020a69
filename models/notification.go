package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification kinds
const (
	NotificationBookingConfirmation = "booking_confirmation"
	NotificationNewBooking          = "new_booking"
	NotificationCancellation        = "appointment_cancelled"
	NotificationReminder            = "appointment_reminder"
	NotificationNewReview           = "new_review"
)

// Notification model, stored in-app for the recipient
type Notification struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Recipient string             `json:"recipient" bson:"recipient"` // e.g. "employee:42"
	Title     string             `json:"title" bson:"title"`
	Message   string             `json:"message" bson:"message"`
	Type      string             `json:"type" bson:"type"`
	Data      interface{}        `json:"data,omitempty" bson:"data"`
	IsRead    bool               `json:"isRead" bson:"isRead"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
