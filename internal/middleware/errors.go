package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// problemDetails mirrors handler.ProblemDetails; middleware cannot import handler
type problemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

const (
	errorTypeUnauthorized = "https://pennywise.app/errors/unauthorized"
	errorTypeRateLimit    = "https://pennywise.app/errors/rate-limit"
)

func problem(c echo.Context, status int, typ, detail string) error {
	return c.JSON(status, problemDetails{
		Type:     typ,
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

func unauthorizedError(c echo.Context, detail string) error {
	return problem(c, http.StatusUnauthorized, errorTypeUnauthorized, detail)
}

func rateLimitError(c echo.Context, retryAfter int) error {
	return problem(c, http.StatusTooManyRequests, errorTypeRateLimit,
		"Too many requests. Please retry after "+strconv.Itoa(retryAfter)+" seconds.")
}
