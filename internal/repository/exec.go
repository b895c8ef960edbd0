package repository

import (
	"context"
	"database/sql"
)

// collectRows runs one parameterized statement and materializes every result
// row through scan. Values always travel as bound parameters; the query text
// never embeds caller input. Errors from the driver are returned unmodified
// (no retries, no swallowing).
func collectRows[T any](ctx context.Context, db *sql.DB, query string, scan func(*sql.Rows) (T, error), args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// scalarString runs a single-value query whose result may be NULL or absent
// (server-side scalar functions return NULL for unknown ids). ok reports
// whether a non-NULL value was produced.
func scalarString(ctx context.Context, db *sql.DB, query string, args ...any) (value string, ok bool, err error) {
	var v sql.NullString
	err = db.QueryRowContext(ctx, query, args...).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v.String, v.Valid, nil
}

// scalarFloat is scalarString for numeric scalar functions; NULL and no-row
// results collapse to zero.
func scalarFloat(ctx context.Context, db *sql.DB, query string, args ...any) (float64, error) {
	var v sql.NullFloat64
	err := db.QueryRowContext(ctx, query, args...).Scan(&v)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return v.Float64, nil
}
