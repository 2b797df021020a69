package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Grizzway/SalonSync-sub000/controllers"
	"github.com/Grizzway/SalonSync-sub000/middleware"
	"github.com/Grizzway/SalonSync-sub000/models"
)

// Controllers bundles every HTTP handler set
type Controllers struct {
	Auth         *controllers.AuthController
	Appointments *controllers.AppointmentController
	Payments     *controllers.PaymentController
	Reviews      *controllers.ReviewController
	Employees    *controllers.EmployeeController
	Businesses   *controllers.BusinessController
	Customers    *controllers.CustomerController
	WebSocket    *controllers.WebSocketController
}

// SetupRoutes registers all routes
func SetupRoutes(e *echo.Echo, ctrl Controllers, sessions middleware.SessionValidator) {
	requireSession := middleware.RequireSession(sessions)

	RegisterAuthRoutes(e, ctrl.Auth, requireSession)
	RegisterAppointmentRoutes(e, ctrl.Appointments, ctrl.Payments, requireSession)
	RegisterSalonRoutes(e, ctrl.Businesses, ctrl.Employees, ctrl.Reviews, requireSession)
	RegisterCustomerRoutes(e, ctrl.Customers, requireSession)

	e.GET("/ws", ctrl.WebSocket.Connect, middleware.OptionalSession(sessions))
}

func RegisterAuthRoutes(e *echo.Echo, auth *controllers.AuthController, requireSession echo.MiddlewareFunc) {
	e.POST("/register", auth.Register)
	e.POST("/register/business", auth.RegisterBusiness)
	e.POST("/register/employee", auth.RegisterEmployee)
	e.POST("/login", auth.Login)
	e.POST("/login/employee", auth.LoginEmployee)
	e.POST("/logout", auth.Logout)
	e.GET("/session", auth.GetSession, requireSession)
}

func RegisterAppointmentRoutes(e *echo.Echo, appointments *controllers.AppointmentController, payments *controllers.PaymentController, requireSession echo.MiddlewareFunc) {
	// guests book without an account
	e.POST("/appointments", appointments.CreateAppointment)
	e.GET("/appointments/slots", appointments.GetBookedSlots)

	// guards are attached per route: group middleware would also claim the public routes above
	protected := e.Group("/appointments")
	protected.DELETE("/customer", appointments.CancelAppointment, requireSession)
	protected.GET("/customer", appointments.GetCustomerAppointments, requireSession, middleware.RequireUserType(models.UserTypeCustomer))
	protected.GET("/employee", appointments.GetEmployeeAppointments, requireSession, middleware.RequireUserType(models.UserTypeEmployee))

	e.PATCH("/payment/update", payments.UpdatePayment)
}

func RegisterSalonRoutes(e *echo.Echo, businesses *controllers.BusinessController, employees *controllers.EmployeeController, reviews *controllers.ReviewController, requireSession echo.MiddlewareFunc) {
	e.GET("/salons", businesses.ListBusinesses)
	e.GET("/salons/:salonId", businesses.GetBusiness)
	e.GET("/salons/:salonId/employees", employees.ListEmployees)
	e.GET("/salons/:salonId/employees/:employeeId/schedule", employees.GetSchedule)
	e.GET("/reviews/:salonId", reviews.GetReviews)
	e.POST("/reviews/:salonId", reviews.CreateReview)

	ownerOnly := middleware.RequireUserType(models.UserTypeBusiness)
	owner := e.Group("/salons")
	owner.PATCH("/:salonId", businesses.UpdateBusiness, requireSession, ownerOnly)
	owner.POST("/:salonId/employees", employees.InviteEmployee, requireSession, ownerOnly)
	owner.DELETE("/:salonId/employees/:employeeId", employees.RemoveEmployee, requireSession, ownerOnly)
	owner.PUT("/:salonId/employees/:employeeId/schedule", employees.SetSchedule, requireSession, ownerOnly)

	staff := e.Group("/employees")
	staff.PUT("/:employeeId/specialties", employees.UpdateSpecialties, requireSession,
		middleware.RequireUserType(models.UserTypeBusiness, models.UserTypeEmployee))
}

func RegisterCustomerRoutes(e *echo.Echo, customers *controllers.CustomerController, requireSession echo.MiddlewareFunc) {
	customerOnly := middleware.RequireUserType(models.UserTypeCustomer)
	staffOnly := middleware.RequireUserType(models.UserTypeBusiness, models.UserTypeEmployee)

	e.PUT("/customers/:customerId/survey", customers.SaveSurvey, requireSession, customerOnly)
	e.GET("/customers/:customerId/survey", customers.GetSurvey, requireSession)
	e.PUT("/customers/:customerId/picture", customers.UploadCustomerPicture, requireSession, customerOnly)
	e.PUT("/employees/:employeeId/picture", customers.UploadEmployeePicture, requireSession, staffOnly)
}
