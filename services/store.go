package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Grizzway/SalonSync-sub000/models"
)

// Lookups return (nil, nil) when the document does not exist.

// IDAllocator hands out integer ids per sequence: max(existing)+1, or models.BaseID for an empty collection
type IDAllocator interface {
	Next(ctx context.Context, sequence string) (int, error)
}

// Transactor runs fn as one unit when Atomic reports true; otherwise fn's writes commit one by one
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	Atomic() bool
}

type CustomerStore interface {
	FindByID(ctx context.Context, customerID int) (*models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	Insert(ctx context.Context, customer *models.Customer) error
	ClaimGuest(ctx context.Context, customerID int, name, passwordHash, phone string) (bool, error)
	UpdateProfilePicture(ctx context.Context, customerID int, url string) (bool, error)
}

type EmployeeStore interface {
	FindByID(ctx context.Context, employeeID int) (*models.Employee, error)
	FindByEmail(ctx context.Context, email string) (*models.Employee, error)
	FindByCode(ctx context.Context, code string) (*models.Employee, error)
	Insert(ctx context.Context, employee *models.Employee) error
	CompleteRegistration(ctx context.Context, employeeID int, passwordHash string) (bool, error)
	ListBySalon(ctx context.Context, salonID int) ([]models.Employee, error)
	UpdateSpecialties(ctx context.Context, employeeID int, specialties []models.Specialty) (bool, error)
	UpdateProfilePicture(ctx context.Context, employeeID int, url string) (bool, error)
	Delete(ctx context.Context, salonID, employeeID int) (int64, error)
}

type BusinessStore interface {
	FindByID(ctx context.Context, salonID int) (*models.Business, error)
	FindByEmail(ctx context.Context, email string) (*models.Business, error)
	Insert(ctx context.Context, business *models.Business) error
	List(ctx context.Context, nameQuery string) ([]models.Business, error)
	Update(ctx context.Context, salonID int, req models.BusinessUpdateRequest) (bool, error)
	UpdateRating(ctx context.Context, salonID int, rating float64) error
}

type AppointmentStore interface {
	FindBySlot(ctx context.Context, slot models.Slot) (*models.Appointment, error)
	FindByAppointmentID(ctx context.Context, appointmentID int) (*models.Appointment, error)
	FindByObjectID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error)
	Insert(ctx context.Context, appointment *models.Appointment) error
	DeleteByAppointmentID(ctx context.Context, appointmentID int) (int64, error)
	ListByCustomer(ctx context.Context, customerID int) ([]models.AppointmentView, error)
	ListByEmployee(ctx context.Context, employeeID int) ([]models.AppointmentView, error)
	ListByDate(ctx context.Context, date string) ([]models.Appointment, error)
	BookedTimes(ctx context.Context, employeeID int, date string) ([]string, error)
}

type PaymentStore interface {
	Insert(ctx context.Context, payment *models.Payment) error
	FindByAppointment(ctx context.Context, appointmentRef primitive.ObjectID) (*models.Payment, error)
	Upsert(ctx context.Context, payment *models.Payment) (bool, error)
}

type ReviewStore interface {
	Exists(ctx context.Context, salonID, customerID int) (bool, error)
	Insert(ctx context.Context, review *models.Review) error
	ListBySalon(ctx context.Context, salonID int) ([]models.Review, error)
	Ratings(ctx context.Context, salonID int) ([]int, error)
}

type SurveyStore interface {
	Upsert(ctx context.Context, survey *models.CustomerSurvey) error
	FindByCustomer(ctx context.Context, customerID int) (*models.CustomerSurvey, error)
}

type ScheduleStore interface {
	Upsert(ctx context.Context, schedule *models.EmployeeSchedule) error
	Find(ctx context.Context, salonID, employeeID int) (*models.EmployeeSchedule, error)
}

type NotificationStore interface {
	Insert(ctx context.Context, notification *models.Notification) error
}

// Stores groups the persistence dependencies shared by the services
type Stores struct {
	Customers     CustomerStore
	Employees     EmployeeStore
	Businesses    BusinessStore
	Appointments  AppointmentStore
	Payments      PaymentStore
	Reviews       ReviewStore
	Surveys       SurveyStore
	Schedules     ScheduleStore
	Notifications NotificationStore
}
