package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Grizzway/SalonSync-sub000/middleware"
	"github.com/Grizzway/SalonSync-sub000/models"
	"github.com/Grizzway/SalonSync-sub000/services"
)

type EmployeeController struct {
	employees *services.EmployeeService
}

func NewEmployeeController(employees *services.EmployeeService) *EmployeeController {
	return &EmployeeController{employees: employees}
}

// InviteEmployee creates an employee with a one-time registration code
func (ec *EmployeeController) InviteEmployee(c echo.Context) error {
	salonID, err := intParam(c, "salonId")
	if err != nil {
		return err
	}
	var req models.EmployeeInviteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	employee, code, err := ec.employees.Invite(c.Request().Context(), middleware.CurrentUser(c), salonID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.EmployeeInviteResponse{
		Status:       http.StatusCreated,
		Message:      "Employee invited successfully",
		Employee:     employee,
		EmployeeCode: code,
	})
}

func (ec *EmployeeController) ListEmployees(c echo.Context) error {
	salonID, err := intParam(c, "salonId")
	if err != nil {
		return err
	}

	employees, err := ec.employees.List(c.Request().Context(), salonID)
	if err != nil {
		return err
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Employees retrieved successfully",
		Data:    employees,
	})
}

func (ec *EmployeeController) UpdateSpecialties(c echo.Context) error {
	employeeID, err := intParam(c, "employeeId")
	if err != nil {
		return err
	}
	var req models.SpecialtiesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	employee, err := ec.employees.UpdateSpecialties(c.Request().Context(), middleware.CurrentUser(c), employeeID, req.Specialties)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Specialties updated successfully",
		Data:    employee,
	})
}

func (ec *EmployeeController) RemoveEmployee(c echo.Context) error {
	salonID, err := intParam(c, "salonId")
	if err != nil {
		return err
	}
	employeeID, err := intParam(c, "employeeId")
	if err != nil {
		return err
	}

	if err := ec.employees.Remove(c.Request().Context(), middleware.CurrentUser(c), salonID, employeeID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Employee removed successfully",
	})
}

func (ec *EmployeeController) SetSchedule(c echo.Context) error {
	salonID, err := intParam(c, "salonId")
	if err != nil {
		return err
	}
	employeeID, err := intParam(c, "employeeId")
	if err != nil {
		return err
	}
	var req models.EmployeeSchedule
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	schedule, err := ec.employees.SetSchedule(c.Request().Context(), middleware.CurrentUser(c), salonID, employeeID, req.Schedule)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Schedule saved successfully",
		Data:    schedule,
	})
}

func (ec *EmployeeController) GetSchedule(c echo.Context) error {
	salonID, err := intParam(c, "salonId")
	if err != nil {
		return err
	}
	employeeID, err := intParam(c, "employeeId")
	if err != nil {
		return err
	}

	schedule, err := ec.employees.GetSchedule(c.Request().Context(), salonID, employeeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Schedule retrieved successfully",
		Data:    schedule,
	})
}
