package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review model
type Review struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	SalonID    int                `json:"salonId" bson:"salonId"`
	CustomerID int                `json:"customerId" bson:"customerId"`
	Rating     int                `json:"rating" bson:"rating"`
	Review     string             `json:"review" bson:"review"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// ReviewRequest is the body of POST /reviews/:salonId
type ReviewRequest struct {
	Rating     int    `json:"rating"`
	Review     string `json:"review"`
	CustomerID int    `json:"customerId"`
}

// ReviewResponse model
type ReviewResponse struct {
	Status  int     `json:"status"`
	Message string  `json:"message"`
	Data    *Review `json:"data,omitempty"`
	Rating  float64 `json:"rating"`
}
