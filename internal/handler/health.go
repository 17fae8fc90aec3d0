// Package handler contains the HTTP handlers of the gate display API.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a simple health check used by the gate display's supervisor to
// verify that the desk process is serving.  It does not look at the
// snapshot store; a desk with no bookings yet is still healthy.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
