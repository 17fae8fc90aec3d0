package middleware

import "github.com/labstack/echo/v4"

// subject returns the display identity JWTAuth stored in the context, or
// "anon" when the request was not authenticated.
func subject(c echo.Context) string {
	if s, ok := c.Get(SubjectKey).(string); ok && s != "" {
		return s
	}
	return "anon"
}
