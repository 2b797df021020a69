package models

import "time"

// EmployeeSchedule holds weekly working windows for an employee at a salon. Informational only.
type EmployeeSchedule struct {
	SalonID    int              `json:"salonId" bson:"salonId"`
	EmployeeID int              `json:"employeeId" bson:"employeeId"`
	Schedule   map[string]Hours `json:"schedule" bson:"schedule" validate:"required"`
	UpdatedAt  time.Time        `json:"updatedAt" bson:"updatedAt"`
}
