package models

import "fmt"

// User types carried by sessions
const (
	UserTypeCustomer = "customer"
	UserTypeEmployee = "employee"
	UserTypeBusiness = "business"
)

// SessionUser is the identity behind a session. It is also the JSON blob stored in the "user" cookie.
type SessionUser struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	SalonIDs []int  `json:"salonIds,omitempty"`
}

// Key returns the recipient key used for in-app notifications
func (u SessionUser) Key() string {
	return RecipientKey(u.Type, u.ID)
}

// OwnsSalon reports whether a business session belongs to the salon, or an employee works there
func (u SessionUser) OwnsSalon(salonID int) bool {
	if u.Type == UserTypeBusiness {
		return u.ID == salonID
	}
	for _, id := range u.SalonIDs {
		if id == salonID {
			return true
		}
	}
	return false
}

// RecipientKey builds "<type>:<id>"
func RecipientKey(userType string, id int) string {
	return fmt.Sprintf("%s:%d", userType, id)
}

// LoginRequest is the body of POST /login and POST /login/employee
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Type     string `json:"type" validate:"omitempty,oneof=customer business"`
}

// LoginResponse model
type LoginResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	User    SessionUser `json:"user"`
	Token   string      `json:"token"`
}
