package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
	"github.com/Grizzway/SalonSync-sub000/middleware"
	"github.com/Grizzway/SalonSync-sub000/models"
	"github.com/Grizzway/SalonSync-sub000/services"
)

type CustomerController struct {
	surveys *services.SurveyService
	media   *services.MediaService
}

func NewCustomerController(surveys *services.SurveyService, media *services.MediaService) *CustomerController {
	return &CustomerController{surveys: surveys, media: media}
}

func (cc *CustomerController) SaveSurvey(c echo.Context) error {
	customerID, err := intParam(c, "customerId")
	if err != nil {
		return err
	}
	var req models.CustomerSurvey
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	survey, err := cc.surveys.Save(c.Request().Context(), middleware.CurrentUser(c), customerID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Survey saved successfully",
		Data:    survey,
	})
}

func (cc *CustomerController) GetSurvey(c echo.Context) error {
	customerID, err := intParam(c, "customerId")
	if err != nil {
		return err
	}

	survey, err := cc.surveys.Get(c.Request().Context(), middleware.CurrentUser(c), customerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Survey retrieved successfully",
		Data:    survey,
	})
}

func (cc *CustomerController) UploadCustomerPicture(c echo.Context) error {
	customerID, err := intParam(c, "customerId")
	if err != nil {
		return err
	}
	return uploadPicture(c, func(upload services.Upload) (string, error) {
		return cc.media.SetCustomerPicture(c.Request().Context(), middleware.CurrentUser(c), customerID, upload)
	})
}

func (cc *CustomerController) UploadEmployeePicture(c echo.Context) error {
	employeeID, err := intParam(c, "employeeId")
	if err != nil {
		return err
	}
	return uploadPicture(c, func(upload services.Upload) (string, error) {
		return cc.media.SetEmployeePicture(c.Request().Context(), middleware.CurrentUser(c), employeeID, upload)
	})
}

// uploadPicture reads the multipart "file" field and hands it to store
func uploadPicture(c echo.Context, store func(services.Upload) (string, error)) error {
	file, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("Missing file")
	}
	src, err := file.Open()
	if err != nil {
		return apperrors.NewValidationError("Unreadable file")
	}
	defer src.Close()

	url, err := store(services.Upload{Filename: file.Filename, Size: file.Size, Content: src})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile picture updated successfully",
		Data:    map[string]string{"profilePicture": url},
	})
}
