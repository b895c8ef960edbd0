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

// ListProducts returns the full catalog with resolved categories
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	store := repository.Active()

	defer prometheus.TrackDBOperation("list_products")(time.Now())
	products, err := store.ListProducts(c.Request().Context())
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve products"})
	}

	log.Info("Products retrieved", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// StockStatus returns the server-side stock label for one product
func StockStatus(c echo.Context) error {
	log := logger.FromContext(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	store := repository.Active()

	defer prometheus.TrackDBOperation("stock_status")(time.Now())
	status, err := store.StockStatus(c.Request().Context(), uint(productID))
	if err != nil {
		log.Error("Failed to resolve stock status",
			zap.Uint64("product_id", productID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve stock status"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"product_id":   productID,
		"stock_status": status,
	})
}

// ProductSalesStatus returns stock-vs-sold figures for every product
func ProductSalesStatus(c echo.Context) error {
	log := logger.FromContext(c)

	store := repository.Active()

	defer prometheus.TrackDBOperation("product_sales_status")(time.Now())
	statuses, err := store.ProductSalesStatus(c.Request().Context())
	if err != nil {
		log.Error("Failed to retrieve product sales status", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve sales status"})
	}

	return c.JSON(http.StatusOK, statuses)
}
