package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer model
type Customer struct {
	ID             primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	CustomerID     int                `json:"customerId" bson:"customerId"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	Phone          string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Password       string             `json:"-" bson:"password,omitempty"`
	Bio            string             `json:"bio" bson:"bio"`
	ProfilePicture *string            `json:"profilePicture" bson:"profilePicture"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}

// CustomerSignupRequest is the body of POST /register
type CustomerSignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone"`
}
