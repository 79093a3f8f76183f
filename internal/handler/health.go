// Package handler exposes the HTTP endpoints: public room browsing and
// booking, the payment webhook, and the authenticated admin back office.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports process liveness for load balancers and uptime checks.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
