package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Specialty is a service an employee offers
type Specialty struct {
	Name     string  `json:"name" bson:"name" validate:"required"`
	Duration int     `json:"duration" bson:"duration" validate:"gt=0"`
	Price    float64 `json:"price" bson:"price" validate:"gte=0"`
}

// Employee model. Password and EmployeeCode are nil until the invite is redeemed / after it is redeemed.
type Employee struct {
	ID             primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	EmployeeID     int                `json:"employeeId" bson:"employeeId"`
	SalonID        int                `json:"salonId" bson:"salonId"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	Password       *string            `json:"-" bson:"password"`
	EmployeeCode   *string            `json:"-" bson:"employeeCode"`
	Specialties    []Specialty        `json:"specialties" bson:"specialties"`
	ProfilePicture *string            `json:"profilePicture" bson:"profilePicture"`
	Bio            string             `json:"bio" bson:"bio"`
	SalonIDs       []int              `json:"salonIds" bson:"salonIds"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}

// FindSpecialty returns the specialty with exactly the given name
func (e *Employee) FindSpecialty(name string) (Specialty, bool) {
	for _, s := range e.Specialties {
		if s.Name == name {
			return s, true
		}
	}
	return Specialty{}, false
}

// EmployeeInviteRequest is the body of POST /salons/:salonId/employees
type EmployeeInviteRequest struct {
	Name        string      `json:"name" validate:"required"`
	Email       string      `json:"email" validate:"required,email"`
	Bio         string      `json:"bio"`
	Specialties []Specialty `json:"specialties" validate:"dive"`
}

// EmployeeInviteResponse carries the one-time code the owner hands to the employee
type EmployeeInviteResponse struct {
	Status       int       `json:"status"`
	Message      string    `json:"message"`
	Employee     *Employee `json:"employee"`
	EmployeeCode string    `json:"employeeCode"`
}

// EmployeeSignupRequest is the body of POST /register/employee
type EmployeeSignupRequest struct {
	EmployeeCode string `json:"employeeCode" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
}

// SpecialtiesRequest replaces an employee's specialties
type SpecialtiesRequest struct {
	Specialties []Specialty `json:"specialties" validate:"required,dive"`
}
