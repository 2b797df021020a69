package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Grizzway/SalonSync-sub000/models"
	"github.com/Grizzway/SalonSync-sub000/services"
)

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// CreateReview adds a review for a salon and returns the recomputed rating
func (rc *ReviewController) CreateReview(c echo.Context) error {
	salonID, err := intParam(c, "salonId")
	if err != nil {
		return err
	}

	var req models.ReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, rating, err := rc.reviews.Create(c.Request().Context(), salonID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, models.ReviewResponse{
		Status:  http.StatusCreated,
		Message: "Review submitted successfully",
		Data:    review,
		Rating:  rating,
	})
}

// GetReviews lists a salon's reviews, newest first
func (rc *ReviewController) GetReviews(c echo.Context) error {
	salonID, err := intParam(c, "salonId")
	if err != nil {
		return err
	}

	reviews, err := rc.reviews.List(c.Request().Context(), salonID)
	if err != nil {
		return err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Reviews retrieved successfully",
		Data:    reviews,
	})
}
