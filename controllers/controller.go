package controllers

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
)

// bindAndValidate binds the request body into req and runs the echo validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.NewValidationError("Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

// intParam parses a positive numeric path parameter
func intParam(c echo.Context, name string) (int, error) {
	return parseID(c.Param(name), name)
}

// intQuery parses a positive numeric query parameter
func intQuery(c echo.Context, name string) (int, error) {
	return parseID(c.QueryParam(name), name)
}

func parseID(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperrors.NewValidationError("Missing " + name)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Invalid " + name)
	}
	return id, nil
}
