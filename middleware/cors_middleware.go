package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// defaultOrigins are the local development front-ends
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://localhost:8080",
}

// CORS allows the web client origins with credentials so the session cookie travels.
// extraOrigins come from CORS_ALLOWED_ORIGINS.
func CORS(extraOrigins []string) echo.MiddlewareFunc {
	origins := append([]string{}, defaultOrigins...)
	origins = append(origins, extraOrigins...)

	return echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch,
			http.MethodPost, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-Requested-With"},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentLength, echo.HeaderContentType},
		MaxAge:           86400, // 24 hours
	})
}
