package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront-service/internal/repository"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"
)

// CustomerOrderSummaries reports per-customer order counts and spend
func CustomerOrderSummaries(c echo.Context) error {
	log := logger.FromContext(c)

	store := repository.Active()

	defer prometheus.TrackDBOperation("customer_summaries")(time.Now())
	summaries, err := store.CustomerOrderSummaries(c.Request().Context())
	if err != nil {
		log.Error("Failed to retrieve customer order summaries", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve summaries"})
	}

	return c.JSON(http.StatusOK, summaries)
}

// TopCustomers reports the ten highest-spending customers
func TopCustomers(c echo.Context) error {
	log := logger.FromContext(c)

	store := repository.Active()

	defer prometheus.TrackDBOperation("top_customers")(time.Now())
	top, err := store.TopCustomers(c.Request().Context())
	if err != nil {
		log.Error("Failed to retrieve top customers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve top customers"})
	}

	return c.JSON(http.StatusOK, top)
}

// PotentialDiscount reports a customer's earned loyalty discount
func PotentialDiscount(c echo.Context) error {
	log := logger.FromContext(c)

	customerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}

	store := repository.Active()

	defer prometheus.TrackDBOperation("potential_discount")(time.Now())
	amount, err := store.PotentialDiscount(c.Request().Context(), uint(customerID))
	if err != nil {
		log.Error("Failed to resolve potential discount",
			zap.Uint64("customer_id", customerID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve discount"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"customer_id":        customerID,
		"potential_discount": amount,
		"is_eligible":        amount > 0,
	})
}
