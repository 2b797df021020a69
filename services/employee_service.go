package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
	"github.com/Grizzway/SalonSync-sub000/models"
	"github.com/Grizzway/SalonSync-sub000/utils"
)

// EmployeeService manages a salon's staff, their specialties and weekly schedules
type EmployeeService struct {
	stores Stores
	ids    IDAllocator
	now    func() time.Time
}

func NewEmployeeService(stores Stores, ids IDAllocator) *EmployeeService {
	return &EmployeeService{stores: stores, ids: ids, now: time.Now}
}

// requireOwner allows only the salon's business account
func requireOwner(actor *models.SessionUser, salonID int) error {
	if actor == nil {
		return apperrors.NewUnauthorizedError("Not logged in")
	}
	if actor.Type != models.UserTypeBusiness || actor.ID != salonID {
		return apperrors.NewForbiddenError("Access denied")
	}
	return nil
}

// Invite creates an employee without a password and returns the one-time code that completes registration
func (s *EmployeeService) Invite(ctx context.Context, actor *models.SessionUser, salonID int, req models.EmployeeInviteRequest) (*models.Employee, string, error) {
	if err := requireOwner(actor, salonID); err != nil {
		return nil, "", err
	}
	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return nil, "", apperrors.NewValidationError("Invalid email format")
	}
	if err := validateSpecialties(req.Specialties); err != nil {
		return nil, "", err
	}

	existing, err := s.stores.Employees.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.NewInternalError("Failed to create employee", err)
	}
	if existing != nil {
		return nil, "", apperrors.NewConflictError("An employee with this email already exists")
	}

	employeeID, err := s.ids.Next(ctx, models.SequenceEmployee)
	if err != nil {
		return nil, "", apperrors.NewInternalError("Failed to create employee", err)
	}

	code := uuid.NewString()
	specialties := req.Specialties
	if specialties == nil {
		specialties = []models.Specialty{}
	}
	employee := &models.Employee{
		EmployeeID:   employeeID,
		SalonID:      salonID,
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		EmployeeCode: &code,
		Specialties:  specialties,
		Bio:          utils.SanitizeInput(req.Bio),
		SalonIDs:     []int{salonID},
		CreatedAt:    s.now(),
	}
	if err := s.stores.Employees.Insert(ctx, employee); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, "", apperrors.NewConflictError("An employee with this email already exists")
		}
		return nil, "", apperrors.NewInternalError("Failed to create employee", err)
	}
	return employee, code, nil
}

func (s *EmployeeService) List(ctx context.Context, salonID int) ([]models.Employee, error) {
	if salonID <= 0 {
		return nil, apperrors.NewValidationError("Invalid salonId")
	}
	employees, err := s.stores.Employees.ListBySalon(ctx, salonID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to fetch employees", err)
	}
	return employees, nil
}

// UpdateSpecialties replaces the specialties. The employee or their salon's owner may do this.
func (s *EmployeeService) UpdateSpecialties(ctx context.Context, actor *models.SessionUser, employeeID int, specialties []models.Specialty) (*models.Employee, error) {
	if err := validateSpecialties(specialties); err != nil {
		return nil, err
	}

	employee, err := s.stores.Employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to update specialties", err)
	}
	if employee == nil {
		return nil, apperrors.NewNotFoundError("Employee not found")
	}
	if !canEditEmployee(actor, employee) {
		return nil, apperrors.NewForbiddenError("Access denied")
	}

	ok, err := s.stores.Employees.UpdateSpecialties(ctx, employeeID, specialties)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to update specialties", err)
	}
	if !ok {
		return nil, apperrors.NewNotFoundError("Employee not found")
	}
	employee.Specialties = specialties
	return employee, nil
}

func canEditEmployee(actor *models.SessionUser, e *models.Employee) bool {
	if actor == nil {
		return false
	}
	switch actor.Type {
	case models.UserTypeEmployee:
		return actor.ID == e.EmployeeID
	case models.UserTypeBusiness:
		return actor.ID == e.SalonID
	default:
		return false
	}
}

// Remove deletes the employee from the salon. Existing appointments are kept.
func (s *EmployeeService) Remove(ctx context.Context, actor *models.SessionUser, salonID, employeeID int) error {
	if err := requireOwner(actor, salonID); err != nil {
		return err
	}
	deleted, err := s.stores.Employees.Delete(ctx, salonID, employeeID)
	if err != nil {
		return apperrors.NewInternalError("Failed to remove employee", err)
	}
	if deleted == 0 {
		return apperrors.NewNotFoundError("Employee not found")
	}
	return nil
}

// SetSchedule stores the employee's weekly windows at the salon
func (s *EmployeeService) SetSchedule(ctx context.Context, actor *models.SessionUser, salonID, employeeID int, schedule map[string]models.Hours) (*models.EmployeeSchedule, error) {
	if err := requireOwner(actor, salonID); err != nil {
		return nil, err
	}
	if err := ValidateWeeklyHours(schedule); err != nil {
		return nil, err
	}

	employee, err := s.stores.Employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to save schedule", err)
	}
	if employee == nil || !worksAt(employee, salonID) {
		return nil, apperrors.NewNotFoundError("Employee not found")
	}

	record := &models.EmployeeSchedule{SalonID: salonID, EmployeeID: employeeID, Schedule: normalizeWeekdays(schedule)}
	if err := s.stores.Schedules.Upsert(ctx, record); err != nil {
		return nil, apperrors.NewInternalError("Failed to save schedule", err)
	}
	return record, nil
}

func (s *EmployeeService) GetSchedule(ctx context.Context, salonID, employeeID int) (*models.EmployeeSchedule, error) {
	schedule, err := s.stores.Schedules.Find(ctx, salonID, employeeID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to fetch schedule", err)
	}
	if schedule == nil {
		return nil, apperrors.NewNotFoundError("Schedule not found")
	}
	return schedule, nil
}

func worksAt(e *models.Employee, salonID int) bool {
	for _, id := range employeeSalons(e) {
		if id == salonID {
			return true
		}
	}
	return false
}

func validateSpecialties(specialties []models.Specialty) error {
	seen := make(map[string]bool, len(specialties))
	for _, sp := range specialties {
		if strings.TrimSpace(sp.Name) == "" || sp.Duration <= 0 || sp.Price < 0 {
			return apperrors.NewValidationError("Each specialty needs a name, a positive duration and a non-negative price")
		}
		if seen[sp.Name] {
			return apperrors.NewValidationError(fmt.Sprintf("Duplicate specialty %q", sp.Name))
		}
		seen[sp.Name] = true
	}
	return nil
}

var (
	weekdays  = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	hhmmRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ValidateWeeklyHours checks weekday names and HH:MM windows where open is before close
func ValidateWeeklyHours(hours map[string]models.Hours) error {
	for day, h := range hours {
		if !isWeekday(day) {
			return apperrors.NewValidationError(fmt.Sprintf("Unknown weekday %q", day))
		}
		if !hhmmRegex.MatchString(h.Open) || !hhmmRegex.MatchString(h.Close) {
			return apperrors.NewValidationError(fmt.Sprintf("Hours for %s must be HH:MM", day))
		}
		// zero-padded HH:MM compares correctly as a string
		if h.Open >= h.Close {
			return apperrors.NewValidationError(fmt.Sprintf("Opening time must be before closing time on %s", day))
		}
	}
	return nil
}

func isWeekday(day string) bool {
	day = strings.ToLower(day)
	for _, d := range weekdays {
		if d == day {
			return true
		}
	}
	return false
}

func normalizeWeekdays(hours map[string]models.Hours) map[string]models.Hours {
	out := make(map[string]models.Hours, len(hours))
	for day, h := range hours {
		out[strings.ToLower(day)] = h
	}
	return out
}
