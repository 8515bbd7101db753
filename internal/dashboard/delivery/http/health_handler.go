package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Healthz godoc
// @Summary Liveness probe
// @Tags health
// @Produce  json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
