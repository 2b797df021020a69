package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
	"github.com/Grizzway/SalonSync-sub000/models"
	"github.com/Grizzway/SalonSync-sub000/utils"
)

const errInvalidCredentials = "Invalid email or password"

// AuthService registers and authenticates customers, salon owners and employees
type AuthService struct {
	stores Stores
	ids    IDAllocator
	now    func() time.Time
}

func NewAuthService(stores Stores, ids IDAllocator) *AuthService {
	return &AuthService{stores: stores, ids: ids, now: time.Now}
}

// RegisterCustomer creates a customer account. A guest record created by an earlier booking
// with the same email is upgraded in place and keeps its customerId.
func (s *AuthService) RegisterCustomer(ctx context.Context, req models.CustomerSignupRequest) (*models.Customer, error) {
	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid email format")
	}
	phone, err := utils.SanitizePhone(req.Phone)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid phone number")
	}
	name := strings.TrimSpace(req.Name)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create account", err)
	}

	existing, err := s.stores.Customers.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create account", err)
	}
	if existing != nil {
		if existing.Password != "" {
			return nil, apperrors.NewConflictError("Email already registered")
		}
		claimed, err := s.stores.Customers.ClaimGuest(ctx, existing.CustomerID, name, hash, phone)
		if err != nil {
			return nil, apperrors.NewInternalError("Failed to create account", err)
		}
		if !claimed {
			return nil, apperrors.NewConflictError("Email already registered")
		}
		existing.Name = name
		if phone != "" {
			existing.Phone = phone
		}
		log.Info().Int("customerId", existing.CustomerID).Msg("Guest customer registered")
		return existing, nil
	}

	customerID, err := s.ids.Next(ctx, models.SequenceCustomer)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create account", err)
	}
	customer := &models.Customer{
		CustomerID: customerID,
		Name:       name,
		Email:      email,
		Phone:      phone,
		Password:   hash,
		CreatedAt:  s.now(),
	}
	if err := s.stores.Customers.Insert(ctx, customer); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, apperrors.NewConflictError("Email already registered")
		}
		return nil, apperrors.NewInternalError("Failed to create account", err)
	}
	return customer, nil
}

// RegisterBusiness creates a salon and its owner account
func (s *AuthService) RegisterBusiness(ctx context.Context, req models.BusinessSignupRequest) (*models.Business, error) {
	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid email format")
	}

	existing, err := s.stores.Businesses.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create business", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("Email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create business", err)
	}
	salonID, err := s.ids.Next(ctx, models.SequenceSalon)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create business", err)
	}

	business := &models.Business{
		SalonID:      salonID,
		BusinessName: strings.TrimSpace(req.BusinessName),
		Email:        email,
		Password:     hash,
		Address:      strings.TrimSpace(req.Address),
		Phone:        strings.TrimSpace(req.Phone),
		Description:  utils.SanitizeInput(req.Description),
		CreatedAt:    s.now(),
	}
	if err := s.stores.Businesses.Insert(ctx, business); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, apperrors.NewConflictError("Email already registered")
		}
		return nil, apperrors.NewInternalError("Failed to create business", err)
	}
	return business, nil
}

// CompleteEmployeeRegistration redeems an invite code. The code works once and only for the invited email.
func (s *AuthService) CompleteEmployeeRegistration(ctx context.Context, req models.EmployeeSignupRequest) (*models.Employee, error) {
	code := strings.TrimSpace(req.EmployeeCode)
	employee, err := s.stores.Employees.FindByCode(ctx, code)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to complete registration", err)
	}
	if employee == nil || !strings.EqualFold(employee.Email, strings.TrimSpace(req.Email)) {
		return nil, apperrors.NewValidationError("Invalid employee code or email")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to complete registration", err)
	}
	ok, err := s.stores.Employees.CompleteRegistration(ctx, employee.EmployeeID, hash)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to complete registration", err)
	}
	if !ok {
		return nil, apperrors.NewValidationError("Invalid employee code or email")
	}

	employee.Password = &hash
	employee.EmployeeCode = nil
	return employee, nil
}

// Login authenticates a customer, or a salon owner when req.Type is "business"
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.SessionUser, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if req.Type == models.UserTypeBusiness {
		business, err := s.stores.Businesses.FindByEmail(ctx, email)
		if err != nil {
			return nil, apperrors.NewInternalError("Login failed", err)
		}
		if business == nil || !utils.CheckPassword(business.Password, req.Password) {
			return nil, apperrors.NewUnauthorizedError(errInvalidCredentials)
		}
		return &models.SessionUser{
			ID:       business.SalonID,
			Name:     business.BusinessName,
			Type:     models.UserTypeBusiness,
			SalonIDs: []int{business.SalonID},
		}, nil
	}

	customer, err := s.stores.Customers.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewInternalError("Login failed", err)
	}
	if customer == nil || !utils.CheckPassword(customer.Password, req.Password) {
		return nil, apperrors.NewUnauthorizedError(errInvalidCredentials)
	}
	return &models.SessionUser{
		ID:   customer.CustomerID,
		Name: customer.Name,
		Type: models.UserTypeCustomer,
	}, nil
}

// LoginEmployee authenticates an employee who has completed registration
func (s *AuthService) LoginEmployee(ctx context.Context, req models.LoginRequest) (*models.SessionUser, error) {
	employee, err := s.stores.Employees.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("Login failed", err)
	}
	if employee == nil || employee.Password == nil || !utils.CheckPassword(*employee.Password, req.Password) {
		return nil, apperrors.NewUnauthorizedError(errInvalidCredentials)
	}
	return &models.SessionUser{
		ID:       employee.EmployeeID,
		Name:     employee.Name,
		Type:     models.UserTypeEmployee,
		SalonIDs: employeeSalons(employee),
	}, nil
}

// employeeSalons merges the home salon with the additional salons
func employeeSalons(e *models.Employee) []int {
	salons := []int{e.SalonID}
	for _, id := range e.SalonIDs {
		if id != e.SalonID {
			salons = append(salons, id)
		}
	}
	return salons
}
