package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Grizzway/SalonSync-sub000/models"
	"github.com/Grizzway/SalonSync-sub000/services"
)

type PaymentController struct {
	bookings *services.BookingService
}

func NewPaymentController(bookings *services.BookingService) *PaymentController {
	return &PaymentController{bookings: bookings}
}

// UpdatePayment upserts the payment keyed by the appointment's store _id
func (pc *PaymentController) UpdatePayment(c echo.Context) error {
	var req models.PaymentUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	payment, created, err := pc.bookings.UpdatePayment(c.Request().Context(), req)
	if err != nil {
		return err
	}

	message := "Payment updated successfully"
	if created {
		message = "Payment created successfully"
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: message,
		Data:    payment,
	})
}
