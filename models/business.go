package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hours is an opening window, e.g. {"open": "09:00", "close": "17:00"}
type Hours struct {
	Open  string `json:"open" bson:"open"`
	Close string `json:"close" bson:"close"`
}

// Business model. Field names Phone and Description are capitalized on the wire.
type Business struct {
	ID            primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	SalonID       int                `json:"salonId" bson:"salonId"`
	BusinessName  string             `json:"businessName" bson:"businessName"`
	Email         string             `json:"email" bson:"email"`
	Password      string             `json:"-" bson:"password"`
	Address       string             `json:"address" bson:"address"`
	Phone         string             `json:"Phone" bson:"Phone"`
	Description   string             `json:"Description" bson:"Description"`
	Logo          string             `json:"logo,omitempty" bson:"logo,omitempty"`
	Banner        string             `json:"banner,omitempty" bson:"banner,omitempty"`
	BusinessHours map[string]Hours   `json:"businessHours,omitempty" bson:"businessHours,omitempty"`
	Theme         string             `json:"theme,omitempty" bson:"theme,omitempty"`
	Rating        float64            `json:"rating" bson:"rating"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

// BusinessSignupRequest is the body of POST /register/business
type BusinessSignupRequest struct {
	BusinessName string `json:"businessName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Address      string `json:"address"`
	Phone        string `json:"Phone"`
	Description  string `json:"Description"`
}

// BusinessUpdateRequest is the body of PATCH /salons/:salonId. Nil fields are left unchanged.
type BusinessUpdateRequest struct {
	BusinessName  *string          `json:"businessName"`
	Address       *string          `json:"address"`
	Phone         *string          `json:"Phone"`
	Description   *string          `json:"Description"`
	Logo          *string          `json:"logo"`
	Banner        *string          `json:"banner"`
	Theme         *string          `json:"theme"`
	BusinessHours map[string]Hours `json:"businessHours"`
}
