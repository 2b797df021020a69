package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
)

// RequireUserType checks if the authenticated user has one of the allowed user types.
// It must run after RequireSession.
func RequireUserType(allowedTypes ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return unauthorized
			}

			for _, allowedType := range allowedTypes {
				if user.Type == allowedType {
					return next(c)
				}
			}

			log.Warn().
				Str("path", c.Request().URL.Path).
				Str("userType", user.Type).
				Strs("allowed", allowedTypes).
				Msg("Access denied for user type")
			return apperrors.NewForbiddenError("Access denied for your user type")
		}
	}
}
