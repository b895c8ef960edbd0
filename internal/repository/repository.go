package repository

import (
	"context"

	"storefront-service/internal/model"
)

// Result caps are part of the operation contracts, not incidental limits:
// both strategies must apply the same ones.
const (
	customerOrdersLimit = 50
	orderSummariesLimit = 100
	topCustomersLimit   = 10
)

// stockStatusUnknown is returned when the stock-label function yields no
// value, e.g. for an unknown product id.
const stockStatusUnknown = "Unknown"

// Store is the full data-access contract of the storefront. Two
// implementations exist (OrmStore composes GORM query expressions, ProcStore
// invokes precompiled server-side routines and views) and both must produce
// identical result shapes, orderings, and caps for every operation.
type Store interface {
	// Login returns the customer with the given email, or ErrNotFound.
	Login(ctx context.Context, email string) (*model.Customer, error)

	// Register inserts a new customer. A duplicate email surfaces as
	// ErrEmailTaken; any other failure is passed through.
	Register(ctx context.Context, customer *model.Customer) error

	// ListProducts returns the full catalog ordered by product id, each row
	// carrying its resolved category.
	ListProducts(ctx context.Context) ([]model.Product, error)

	// StockStatus resolves the server-side stock label for a product,
	// returning "Unknown" rather than an error for unknown ids.
	StockStatus(ctx context.Context, productID uint) (string, error)

	// PlaceOrder atomically creates one order header and one order line
	// priced at the product's current price. The line insert fires the
	// stock-decrement trigger; on any failure nothing persists. Returns
	// ErrProductNotFound or ErrInvalidQuantity without writing anything.
	PlaceOrder(ctx context.Context, customerID, productID uint, quantity int) error

	// CustomerOrders returns the customer's 50 most recent orders, newest
	// first, each with line items resolved by the exact (order id,
	// order date) composite key.
	CustomerOrders(ctx context.Context, customerID uint) ([]model.CustomerOrder, error)

	// CustomerOrderSummaries reports per-customer order counts and spend,
	// highest spend first, capped at 100 rows.
	CustomerOrderSummaries(ctx context.Context) ([]model.CustomerOrderSummary, error)

	// TopCustomers returns the ten highest-spending customers.
	TopCustomers(ctx context.Context) ([]model.TopCustomer, error)

	// ProductSalesStatus reports live stock against lifetime units sold for
	// every product, ordered by product id.
	ProductSalesStatus(ctx context.Context) ([]model.ProductSalesStatus, error)

	// PotentialDiscount returns the customer's earned loyalty discount;
	// zero means not eligible.
	PotentialDiscount(ctx context.Context, customerID uint) (float64, error)
}

// validateOrderInput rejects malformed placement input before any storage
// call is made.
func validateOrderInput(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}
