package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront-service/internal/repository"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"
)

// PlaceOrderRequest is the payload for creating an order
type PlaceOrderRequest struct {
	CustomerID uint `json:"customer_id"`
	ProductID  uint `json:"product_id"`
	Quantity   int  `json:"quantity"`
}

// PlaceOrder creates one order with one line item. The stock decrement is
// performed by the database trigger, not here.
func PlaceOrder(c echo.Context) error {
	log := logger.FromContext(c)

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse order request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	store := repository.Active()

	defer prometheus.TrackDBOperation("place_order")(time.Now())
	err := store.PlaceOrder(c.Request().Context(), req.CustomerID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidQuantity):
			prometheus.RecordOrderError("invalid_quantity")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
		case errors.Is(err, repository.ErrProductNotFound):
			log.Warn("Order for unknown product", zap.Uint("product_id", req.ProductID))
			prometheus.RecordOrderError("product_not_found")
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		default:
			log.Error("Failed to place order",
				zap.Uint("customer_id", req.CustomerID),
				zap.Uint("product_id", req.ProductID),
				zap.Int("quantity", req.Quantity),
				zap.Error(err))
			prometheus.RecordOrderError("storage")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to place order"})
		}
	}

	prometheus.OrdersPlacedCounter.Inc()
	log.Info("Order placed",
		zap.Uint("customer_id", req.CustomerID),
		zap.Uint("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity))

	return c.JSON(http.StatusOK, echo.Map{"message": "order placed successfully"})
}

// CustomerOrders returns a customer's recent orders with their line items
func CustomerOrders(c echo.Context) error {
	log := logger.FromContext(c)

	customerID, err := strconv.ParseUint(c.Param("customerId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}

	store := repository.Active()

	defer prometheus.TrackDBOperation("customer_orders")(time.Now())
	orders, err := store.CustomerOrders(c.Request().Context(), uint(customerID))
	if err != nil {
		log.Error("Failed to retrieve customer orders",
			zap.Uint64("customer_id", customerID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve orders"})
	}

	log.Info("Customer orders retrieved",
		zap.Uint64("customer_id", customerID),
		zap.Int("count", len(orders)))
	return c.JSON(http.StatusOK, orders)
}
