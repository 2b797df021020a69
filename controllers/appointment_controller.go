package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
	"github.com/Grizzway/SalonSync-sub000/middleware"
	"github.com/Grizzway/SalonSync-sub000/models"
	"github.com/Grizzway/SalonSync-sub000/services"
)

type AppointmentController struct {
	bookings *services.BookingService
}

func NewAppointmentController(bookings *services.BookingService) *AppointmentController {
	return &AppointmentController{bookings: bookings}
}

// CreateAppointment books a slot for a registered or guest customer
func (ac *AppointmentController) CreateAppointment(c echo.Context) error {
	var req models.BookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := ac.bookings.Book(c.Request().Context(), req)
	if err != nil {
		return err
	}

	message := "Appointment booked successfully"
	if result.PartiallyCommitted() {
		log.Error().Err(result.PaymentErr).
			Int("appointmentId", result.Appointment.AppointmentID).
			Msg("Appointment stored without payment")
		message = "Appointment booked, but the payment could not be recorded"
	}

	return c.JSON(http.StatusCreated, models.BookingResponse{
		Status:          http.StatusCreated,
		Message:         message,
		AppointmentID:   result.Appointment.AppointmentID,
		PaymentRecorded: !result.PartiallyCommitted(),
	})
}

// CancelAppointment deletes an appointment by its numeric appointmentId
func (ac *AppointmentController) CancelAppointment(c echo.Context) error {
	appointmentID, err := intQuery(c, "appointmentId")
	if err != nil {
		return err
	}

	if _, err := ac.bookings.Cancel(c.Request().Context(), appointmentID, middleware.CurrentUser(c)); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.CancellationResponse{
		Status:  http.StatusOK,
		Message: "Appointment cancelled",
		Success: true,
	})
}

func (ac *AppointmentController) GetCustomerAppointments(c echo.Context) error {
	customerID, err := intQuery(c, "customerId")
	if err != nil {
		return err
	}
	user := middleware.CurrentUser(c)
	if user.Type != models.UserTypeCustomer || user.ID != customerID {
		return apperrors.NewForbiddenError("Access denied")
	}

	appointments, err := ac.bookings.ListCustomerAppointments(c.Request().Context(), customerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.AppointmentsResponse{
		Status:       http.StatusOK,
		Message:      "Appointments retrieved successfully",
		Appointments: nonNil(appointments),
	})
}

func (ac *AppointmentController) GetEmployeeAppointments(c echo.Context) error {
	employeeID, err := intQuery(c, "employeeId")
	if err != nil {
		return err
	}
	user := middleware.CurrentUser(c)
	if user.Type != models.UserTypeEmployee || user.ID != employeeID {
		return apperrors.NewForbiddenError("Access denied")
	}

	appointments, err := ac.bookings.ListEmployeeAppointments(c.Request().Context(), employeeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.AppointmentsResponse{
		Status:       http.StatusOK,
		Message:      "Appointments retrieved successfully",
		Appointments: nonNil(appointments),
	})
}

// GetBookedSlots returns the taken start times of an employee on a date
func (ac *AppointmentController) GetBookedSlots(c echo.Context) error {
	employeeID, err := intQuery(c, "employeeId")
	if err != nil {
		return err
	}

	times, err := ac.bookings.BookedTimes(c.Request().Context(), employeeID, c.QueryParam("date"))
	if err != nil {
		return err
	}
	if times == nil {
		times = []string{}
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Booked times retrieved successfully",
		Data:    map[string]interface{}{"times": times},
	})
}

func nonNil(appointments []models.AppointmentView) []models.AppointmentView {
	if appointments == nil {
		return []models.AppointmentView{}
	}
	return appointments
}
