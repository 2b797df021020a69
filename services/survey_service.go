package services

import (
	"context"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
	"github.com/Grizzway/SalonSync-sub000/models"
	"github.com/Grizzway/SalonSync-sub000/utils"
)

type SurveyService struct {
	stores Stores
}

func NewSurveyService(stores Stores) *SurveyService {
	return &SurveyService{stores: stores}
}

// Save upserts the customer's intake survey. Customers may only edit their own.
func (s *SurveyService) Save(ctx context.Context, actor *models.SessionUser, customerID int, survey models.CustomerSurvey) (*models.CustomerSurvey, error) {
	if actor == nil || actor.Type != models.UserTypeCustomer || actor.ID != customerID {
		return nil, apperrors.NewForbiddenError("Access denied")
	}

	customer, err := s.stores.Customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to save survey", err)
	}
	if customer == nil {
		return nil, apperrors.NewNotFoundError("Customer not found")
	}

	survey.CustomerID = customerID
	survey.HairType = utils.SanitizeInput(survey.HairType)
	survey.HairLength = utils.SanitizeInput(survey.HairLength)
	survey.Allergies = utils.SanitizeInput(survey.Allergies)
	survey.Notes = utils.SanitizeInput(survey.Notes)
	survey.PreferredServices = utils.SanitizeStringArray(survey.PreferredServices)
	survey.Answers = utils.SanitizeMap(survey.Answers)

	if err := s.stores.Surveys.Upsert(ctx, &survey); err != nil {
		return nil, apperrors.NewInternalError("Failed to save survey", err)
	}
	return &survey, nil
}

// Get returns the survey to the customer or to staff of any salon
func (s *SurveyService) Get(ctx context.Context, actor *models.SessionUser, customerID int) (*models.CustomerSurvey, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorizedError("Not logged in")
	}
	if actor.Type == models.UserTypeCustomer && actor.ID != customerID {
		return nil, apperrors.NewForbiddenError("Access denied")
	}

	survey, err := s.stores.Surveys.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to fetch survey", err)
	}
	if survey == nil {
		return nil, apperrors.NewNotFoundError("Survey not found")
	}
	return survey, nil
}
