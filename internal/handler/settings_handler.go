package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront-service/internal/repository"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"
)

// SetModeRequest selects the data-access strategy
type SetModeRequest struct {
	UseStoredProcedures bool `json:"use_stored_procedures"`
}

// GetMode reports the active data-access mode
func GetMode(c echo.Context) error {
	mode := repository.CurrentMode()
	return c.JSON(http.StatusOK, echo.Map{
		"mode": mode.String(),
	})
}

// SetMode switches the data-access mode at runtime. Requests already running
// finish under the mode they started with.
func SetMode(c echo.Context) error {
	log := logger.FromContext(c)

	var req SetModeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	mode := repository.ModeOrm
	if req.UseStoredProcedures {
		mode = repository.ModeProcedure
	}
	repository.SwitchMode(mode)
	prometheus.SetRepositoryMode(req.UseStoredProcedures)

	log.Info("Repository mode switched", zap.String("mode", mode.String()))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "repository mode switched",
		"mode":    mode.String(),
	})
}
