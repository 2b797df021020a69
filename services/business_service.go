package services

import (
	"context"
	"strings"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
	"github.com/Grizzway/SalonSync-sub000/models"
	"github.com/Grizzway/SalonSync-sub000/utils"
)

type BusinessService struct {
	stores Stores
}

func NewBusinessService(stores Stores) *BusinessService {
	return &BusinessService{stores: stores}
}

func (s *BusinessService) Get(ctx context.Context, salonID int) (*models.Business, error) {
	business, err := s.stores.Businesses.FindByID(ctx, salonID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to fetch salon", err)
	}
	if business == nil {
		return nil, apperrors.NewNotFoundError("Salon not found")
	}
	business.Password = ""
	return business, nil
}

func (s *BusinessService) List(ctx context.Context, nameQuery string) ([]models.Business, error) {
	businesses, err := s.stores.Businesses.List(ctx, nameQuery)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to fetch salons", err)
	}
	for i := range businesses {
		businesses[i].Password = ""
	}
	return businesses, nil
}

// Update edits the salon profile. Only the salon's owner may call it.
func (s *BusinessService) Update(ctx context.Context, actor *models.SessionUser, salonID int, req models.BusinessUpdateRequest) (*models.Business, error) {
	if err := requireOwner(actor, salonID); err != nil {
		return nil, err
	}
	if req.BusinessName != nil && strings.TrimSpace(*req.BusinessName) == "" {
		return nil, apperrors.NewValidationError("businessName cannot be empty")
	}
	if req.BusinessHours != nil {
		if err := ValidateWeeklyHours(req.BusinessHours); err != nil {
			return nil, err
		}
		req.BusinessHours = normalizeWeekdays(req.BusinessHours)
	}
	if req.Description != nil {
		description := utils.SanitizeInput(*req.Description)
		req.Description = &description
	}

	ok, err := s.stores.Businesses.Update(ctx, salonID, req)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to update salon", err)
	}
	if !ok {
		return nil, apperrors.NewNotFoundError("Salon not found")
	}
	return s.Get(ctx, salonID)
}
