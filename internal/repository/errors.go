package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors forming the failure taxonomy of the store contract.
// Callers distinguish them with errors.Is so the HTTP layer can render
// "not found" vs "already registered" vs "try again" differently.
var (
	// ErrNotFound signals that no row matched (login, unknown customer).
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken signals a unique-constraint violation on registration.
	ErrEmailTaken = errors.New("email already registered")

	// ErrProductNotFound signals order placement against an unknown product.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidQuantity signals a non-positive order quantity, rejected
	// before any storage call.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// SQLSTATE codes the store maps to sentinel errors. no_data_found is what
// sp_place_order raises when the product id does not exist.
const (
	pgUniqueViolation = "23505"
	pgNoDataFound     = "P0002"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isNoDataFound(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgNoDataFound
}
