package models

import "time"

// CustomerSurvey is the intake survey, one document per customer
type CustomerSurvey struct {
	CustomerID        int               `json:"customerId" bson:"customerId"`
	HairType          string            `json:"hairType,omitempty" bson:"hairType,omitempty"`
	HairLength        string            `json:"hairLength,omitempty" bson:"hairLength,omitempty"`
	Allergies         string            `json:"allergies,omitempty" bson:"allergies,omitempty"`
	PreferredServices []string          `json:"preferredServices,omitempty" bson:"preferredServices,omitempty"`
	Answers           map[string]string `json:"answers,omitempty" bson:"answers,omitempty"`
	Notes             string            `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt         time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt" bson:"updatedAt"`
}
