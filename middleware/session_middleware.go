package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
	"github.com/Grizzway/SalonSync-sub000/models"
)

// Cookie names. "user" is read by the web client and is not httpOnly; "session" carries the signed token.
const (
	SessionCookie = "session"
	UserCookie    = "user"

	contextUserKey  = "sessionUser"
	contextTokenKey = "sessionToken"
)

// SessionValidator resolves a session token to its user
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*models.SessionUser, error)
}

// RequireSession rejects requests without a live session and stores the session user in the context
func RequireSession(validator SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c)
			if token == "" {
				return unauthorized
			}
			user, err := validator.Validate(c.Request().Context(), token)
			if err != nil {
				log.Debug().Err(err).Str("path", c.Path()).Msg("Session rejected")
				return err
			}
			c.Set(contextUserKey, user)
			c.Set(contextTokenKey, token)
			return next(c)
		}
	}
}

// OptionalSession attaches the session user when a valid session is present and never rejects
func OptionalSession(validator SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := TokenFromRequest(c); token != "" {
				if user, err := validator.Validate(c.Request().Context(), token); err == nil {
					c.Set(contextUserKey, user)
					c.Set(contextTokenKey, token)
				}
			}
			return next(c)
		}
	}
}

// TokenFromRequest reads the session cookie, falling back to a Bearer authorization header
func TokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// CurrentUser returns the session user set by RequireSession or OptionalSession, or nil
func CurrentUser(c echo.Context) *models.SessionUser {
	user, _ := c.Get(contextUserKey).(*models.SessionUser)
	return user
}

// CurrentToken returns the validated session token, or ""
func CurrentToken(c echo.Context) string {
	token, _ := c.Get(contextTokenKey).(string)
	return token
}

// SetSessionCookies writes the httpOnly session cookie and the client-readable user cookie
func SetSessionCookies(c echo.Context, token string, user models.SessionUser, expires time.Time, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})

	blob, err := json.Marshal(user)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode user cookie")
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     UserCookie,
		Value:    url.QueryEscape(string(blob)),
		Path:     "/",
		Expires:  expires,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookies expires both cookies
func ClearSessionCookies(c echo.Context) {
	for _, name := range []string{SessionCookie, UserCookie} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: name == SessionCookie,
		})
	}
}

// unauthorized is returned when a guard runs without a session in the context
var unauthorized = apperrors.NewUnauthorizedError("Not logged in")
