package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
	"github.com/Grizzway/SalonSync-sub000/models"
)

// HTTPErrorHandler renders every error as models.Response. Internal details are logged, never returned.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := apperrors.HTTPStatus(err)
	message := apperrors.PublicMessage(err)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		message = http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}

	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Int("status", status).
		Msg("Request failed")

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, models.Response{Status: status, Message: message})
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to write error response")
	}
}
