package repository

import (
	"context"
	"database/sql"
	"time"

	"storefront-service/internal/model"
)

// ProcStore implements Store by invoking precompiled server-side routines and
// views instead of composing queries. Routine names and parameter order are a
// fixed contract with the schema (scripts/schema.sql); a rename on the
// database side breaks this strategy only. Result sets must match OrmStore's
// field sets, ordering, and caps exactly.
type ProcStore struct {
	db *sql.DB
}

func NewProcStore(db *sql.DB) *ProcStore {
	return &ProcStore{db: db}
}

func scanCustomer(rows *sql.Rows) (model.Customer, error) {
	var c model.Customer
	var phone, address, city sql.NullString
	err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &phone, &address, &city, &c.PasswordHash, &c.RegisteredAt)
	c.PhoneNumber = phone.String
	c.Address = address.String
	c.City = city.String
	return c, err
}

func (s *ProcStore) Login(ctx context.Context, email string) (*model.Customer, error) {
	customers, err := collectRows(ctx, s.db,
		`SELECT id, first_name, last_name, email, phone_number, address, city, password_hash, registered_at FROM sp_login($1)`,
		scanCustomer, email)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, ErrNotFound
	}
	return &customers[0], nil
}

// Register inserts through sp_register_customer. The procedure's INOUT
// parameters come back as a result row; scanning them populates the entity
// the same way the declarative strategy's insert does.
func (s *ProcStore) Register(ctx context.Context, customer *model.Customer) error {
	var id int64
	var registeredAt time.Time
	err := s.db.QueryRowContext(ctx,
		`CALL sp_register_customer($1, $2, $3, $4, $5, NULL, NULL)`,
		customer.FirstName, customer.LastName, customer.Email,
		nullString(customer.City), customer.PasswordHash).Scan(&id, &registeredAt)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return err
	}
	customer.ID = uint(id)
	customer.RegisteredAt = registeredAt
	return nil
}

func (s *ProcStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	return collectRows(ctx, s.db,
		`SELECT id, name, category_id, description, price, stock_quantity, date_added, category_name, category_description FROM sp_get_all_products()`,
		func(rows *sql.Rows) (model.Product, error) {
			var p model.Product
			var desc, catDesc sql.NullString
			var catName string
			err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &desc, &p.Price, &p.StockQuantity, &p.DateAdded, &catName, &catDesc)
			p.Description = desc.String
			p.Category = &model.Category{ID: p.CategoryID, Name: catName, Description: catDesc.String}
			return p, err
		})
}

func (s *ProcStore) StockStatus(ctx context.Context, productID uint) (string, error) {
	label, ok, err := scalarString(ctx, s.db, `SELECT sp_get_stock_status($1)`, productID)
	if err != nil {
		return "", err
	}
	if !ok {
		return stockStatusUnknown, nil
	}
	return label, nil
}

// PlaceOrder delegates the whole placement unit of work to sp_place_order: the
// routine resolves the current price, inserts the header, inserts the line
// with the header's exact (id, order_date) pair, and lets trg_update_stock
// decrement stock, all inside one server-side transaction. An unknown product
// id surfaces as SQLSTATE P0002 before anything is written.
func (s *ProcStore) PlaceOrder(ctx context.Context, customerID, productID uint, quantity int) error {
	if err := validateOrderInput(quantity); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `CALL sp_place_order($1, $2, $3)`, customerID, productID, quantity)
	if isNoDataFound(err) {
		return ErrProductNotFound
	}
	return err
}

func (s *ProcStore) CustomerOrders(ctx context.Context, customerID uint) ([]model.CustomerOrder, error) {
	orders, err := collectRows(ctx, s.db,
		`SELECT id, order_date, total_amount, status FROM orders WHERE customer_id = $1 ORDER BY order_date DESC LIMIT $2`,
		func(rows *sql.Rows) (model.CustomerOrder, error) {
			var o model.CustomerOrder
			err := rows.Scan(&o.OrderID, &o.OrderDate, &o.TotalAmount, &o.Status)
			return o, err
		},
		customerID, customerOrdersLimit)
	if err != nil {
		return nil, err
	}

	result := make([]model.CustomerOrder, 0, len(orders))
	for _, order := range orders {
		// Both key columns are bound: order_id alone is ambiguous across
		// partitions.
		items, err := collectRows(ctx, s.db,
			`SELECT od.product_id, p.name, od.quantity, od.unit_price
			 FROM order_details od
			 JOIN products p ON p.id = od.product_id
			 WHERE od.order_id = $1 AND od.order_date = $2`,
			func(rows *sql.Rows) (model.OrderItemDetail, error) {
				var it model.OrderItemDetail
				err := rows.Scan(&it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice)
				return it, err
			},
			order.OrderID, order.OrderDate)
		if err != nil {
			return nil, err
		}
		order.Items = items
		result = append(result, order)
	}
	return result, nil
}

func (s *ProcStore) CustomerOrderSummaries(ctx context.Context) ([]model.CustomerOrderSummary, error) {
	return collectRows(ctx, s.db,
		`SELECT customer_id, customer_name, total_orders, total_spent FROM v_customer_order_summary ORDER BY total_spent DESC LIMIT $1`,
		func(rows *sql.Rows) (model.CustomerOrderSummary, error) {
			var cs model.CustomerOrderSummary
			err := rows.Scan(&cs.CustomerID, &cs.CustomerName, &cs.TotalOrders, &cs.TotalSpent)
			return cs, err
		},
		orderSummariesLimit)
}

func (s *ProcStore) TopCustomers(ctx context.Context) ([]model.TopCustomer, error) {
	return collectRows(ctx, s.db,
		`SELECT first_name, last_name, total_spent FROM sp_get_top_customers()`,
		func(rows *sql.Rows) (model.TopCustomer, error) {
			var tc model.TopCustomer
			err := rows.Scan(&tc.FirstName, &tc.LastName, &tc.TotalSpent)
			return tc, err
		})
}

func (s *ProcStore) ProductSalesStatus(ctx context.Context) ([]model.ProductSalesStatus, error) {
	return collectRows(ctx, s.db,
		`SELECT product_id, product_name, current_stock, total_units_sold FROM v_product_sales_status ORDER BY product_id`,
		func(rows *sql.Rows) (model.ProductSalesStatus, error) {
			var ps model.ProductSalesStatus
			err := rows.Scan(&ps.ProductID, &ps.ProductName, &ps.CurrentStock, &ps.TotalUnitsSold)
			return ps, err
		})
}

func (s *ProcStore) PotentialDiscount(ctx context.Context, customerID uint) (float64, error) {
	return scalarFloat(ctx, s.db, `SELECT fn_potential_discount($1)`, customerID)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
