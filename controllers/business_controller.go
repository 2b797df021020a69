package controllers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Grizzway/SalonSync-sub000/middleware"
	"github.com/Grizzway/SalonSync-sub000/models"
	"github.com/Grizzway/SalonSync-sub000/services"
)

type BusinessController struct {
	businesses *services.BusinessService
}

func NewBusinessController(businesses *services.BusinessService) *BusinessController {
	return &BusinessController{businesses: businesses}
}

func (bc *BusinessController) GetBusiness(c echo.Context) error {
	salonID, err := intParam(c, "salonId")
	if err != nil {
		return err
	}

	business, err := bc.businesses.Get(c.Request().Context(), salonID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Salon retrieved successfully",
		Data:    business,
	})
}

// ListBusinesses lists salons, optionally filtered by name with ?q=
func (bc *BusinessController) ListBusinesses(c echo.Context) error {
	businesses, err := bc.businesses.List(c.Request().Context(), strings.TrimSpace(c.QueryParam("q")))
	if err != nil {
		return err
	}
	if businesses == nil {
		businesses = []models.Business{}
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Salons retrieved successfully",
		Data:    businesses,
	})
}

func (bc *BusinessController) UpdateBusiness(c echo.Context) error {
	salonID, err := intParam(c, "salonId")
	if err != nil {
		return err
	}
	var req models.BusinessUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	business, err := bc.businesses.Update(c.Request().Context(), middleware.CurrentUser(c), salonID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Salon updated successfully",
		Data:    business,
	})
}
