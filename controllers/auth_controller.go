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

type AuthController struct {
	auth          *services.AuthService
	sessions      *services.SessionManager
	secureCookies bool
}

func NewAuthController(auth *services.AuthService, sessions *services.SessionManager, secureCookies bool) *AuthController {
	return &AuthController{auth: auth, sessions: sessions, secureCookies: secureCookies}
}

// Register creates a customer account
func (ac *AuthController) Register(c echo.Context) error {
	var req models.CustomerSignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	customer, err := ac.auth.RegisterCustomer(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Registration successful",
		Data:    customer,
	})
}

// RegisterBusiness creates a salon owner account
func (ac *AuthController) RegisterBusiness(c echo.Context) error {
	var req models.BusinessSignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	business, err := ac.auth.RegisterBusiness(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Business registered successfully",
		Data:    business,
	})
}

// RegisterEmployee completes an invite with the employee's password
func (ac *AuthController) RegisterEmployee(c echo.Context) error {
	var req models.EmployeeSignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	employee, err := ac.auth.CompleteEmployeeRegistration(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Employee registration completed",
		Data:    employee,
	})
}

// Login authenticates a customer or a salon owner and opens a session
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := ac.auth.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return ac.startSession(c, user)
}

func (ac *AuthController) LoginEmployee(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := ac.auth.LoginEmployee(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return ac.startSession(c, user)
}

func (ac *AuthController) startSession(c echo.Context, user *models.SessionUser) error {
	token, expires, err := ac.sessions.Issue(c.Request().Context(), *user)
	if err != nil {
		return apperrors.NewInternalError("Login failed", err)
	}
	middleware.SetSessionCookies(c, token, *user, expires, ac.secureCookies)

	log.Info().Str("user", user.Key()).Msg("Session started")
	return c.JSON(http.StatusOK, models.LoginResponse{
		Status:  http.StatusOK,
		Message: "Login successful",
		User:    *user,
		Token:   token,
	})
}

// Logout revokes the current session and clears the cookies
func (ac *AuthController) Logout(c echo.Context) error {
	if token := middleware.TokenFromRequest(c); token != "" {
		if err := ac.sessions.Revoke(c.Request().Context(), token); err != nil {
			return apperrors.NewInternalError("Logout failed", err)
		}
	}
	middleware.ClearSessionCookies(c)
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Logged out successfully",
	})
}

// GetSession returns the identity behind the current session
func (ac *AuthController) GetSession(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Session is active",
		Data:    middleware.CurrentUser(c),
	})
}
