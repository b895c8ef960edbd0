package model

import "time"

// CustomerOrder is an order enriched with its line items for the
// customer-orders listing.
type CustomerOrder struct {
	OrderID     uint              `json:"order_id"`
	OrderDate   time.Time         `json:"order_date"`
	TotalAmount float64           `json:"total_amount"`
	Status      string            `json:"status"`
	Items       []OrderItemDetail `json:"items"`
}

// OrderItemDetail is one line of a customer order joined to its product name.
type OrderItemDetail struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// CustomerOrderSummary aggregates one customer's order count and lifetime
// spend. Mirrors the v_customer_order_summary view's columns.
type CustomerOrderSummary struct {
	CustomerID   uint    `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	TotalOrders  int     `json:"total_orders"`
	TotalSpent   float64 `json:"total_spent"`
}

// TopCustomer is one row of the top-spenders report.
type TopCustomer struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	TotalSpent float64 `json:"total_spent"`
}

// ProductSalesStatus pairs a product's live stock with its lifetime units
// sold. Mirrors the v_product_sales_status view's columns.
type ProductSalesStatus struct {
	ProductID      uint   `json:"product_id"`
	ProductName    string `json:"product_name"`
	CurrentStock   int    `json:"current_stock"`
	TotalUnitsSold int    `json:"total_units_sold"`
}
