package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
	"github.com/Grizzway/SalonSync-sub000/models"
	"github.com/Grizzway/SalonSync-sub000/utils"
)

const errAlreadyReviewed = "You have already reviewed this salon"

type ReviewService struct {
	stores   Stores
	notifier Notifier
	now      func() time.Time
}

func NewReviewService(stores Stores, notifier Notifier) *ReviewService {
	return &ReviewService{stores: stores, notifier: notifier, now: time.Now}
}

// Create stores a review and recomputes the salon's rating from all of its reviews.
// It returns the new rating.
func (s *ReviewService) Create(ctx context.Context, salonID int, req models.ReviewRequest) (*models.Review, float64, error) {
	text := strings.TrimSpace(req.Review)
	if salonID <= 0 || req.Rating == 0 || text == "" || req.CustomerID == 0 {
		return nil, 0, apperrors.NewValidationError("Missing required fields")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, 0, apperrors.NewValidationError("Rating must be between 1 and 5")
	}

	customer, err := s.stores.Customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("Failed to submit review", err)
	}
	if customer == nil {
		return nil, 0, apperrors.NewValidationError("Customer not found")
	}

	exists, err := s.stores.Reviews.Exists(ctx, salonID, req.CustomerID)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("Failed to submit review", err)
	}
	if exists {
		return nil, 0, apperrors.NewConflictError(errAlreadyReviewed).WithStatus(http.StatusBadRequest)
	}

	review := &models.Review{
		SalonID:    salonID,
		CustomerID: req.CustomerID,
		Rating:     req.Rating,
		Review:     utils.SanitizeInput(text),
		CreatedAt:  s.now(),
	}
	if err := s.stores.Reviews.Insert(ctx, review); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, 0, apperrors.NewConflictError(errAlreadyReviewed).WithStatus(http.StatusBadRequest)
		}
		return nil, 0, apperrors.NewInternalError("Failed to submit review", err)
	}

	// the review is stored; a stale rating is repaired by the next review
	rating, err := s.recomputeRating(ctx, salonID)
	if err != nil {
		log.Error().Err(err).Int("salonId", salonID).Msg("Failed to update salon rating")
	}

	business, err := s.stores.Businesses.FindByID(ctx, salonID)
	if err != nil {
		log.Warn().Err(err).Int("salonId", salonID).Msg("Salon lookup failed")
	}
	if business != nil {
		s.notifier.Notify(ctx, newReviewMessage(business, review, rating))
	}

	return review, rating, nil
}

func (s *ReviewService) recomputeRating(ctx context.Context, salonID int) (float64, error) {
	ratings, err := s.stores.Reviews.Ratings(ctx, salonID)
	if err != nil {
		return 0, err
	}
	average := AverageRating(ratings)
	return average, s.stores.Businesses.UpdateRating(ctx, salonID, average)
}

func (s *ReviewService) List(ctx context.Context, salonID int) ([]models.Review, error) {
	if salonID <= 0 {
		return nil, apperrors.NewValidationError("Invalid salonId")
	}
	reviews, err := s.stores.Reviews.ListBySalon(ctx, salonID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to fetch reviews", err)
	}
	return reviews, nil
}

// AverageRating is the arithmetic mean of the ratings, 0 when there are none
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}
