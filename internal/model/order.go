package model

import "time"

// OrderStatusPending is the only status this service ever writes; fulfillment
// systems own the later transitions.
const OrderStatusPending = "Pending"

// Order is identified by the composite key (ID, OrderDate). The orders table
// is range-partitioned by order_date, so the surrogate id alone does not
// address a row: every dependent lookup or insert must carry the exact
// order_date value captured when the header was inserted.
type Order struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderDate   time.Time `json:"order_date" gorm:"primaryKey"`
	CustomerID  uint      `json:"customer_id" gorm:"index;not null"`
	TotalAmount float64   `json:"total_amount" gorm:"type:numeric(18,2)"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:Pending"`
}

func (Order) TableName() string { return "orders" }

// OrderDetail is one order line. OrderDate is the parent order's date, not a
// freshly sampled timestamp; it places the row in the same partition as its
// header. Inserting a line fires trg_update_stock, which decrements the
// product's stock; the application never performs or verifies that decrement.
type OrderDetail struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderDate time.Time `json:"order_date" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"index;not null"`
	ProductID uint      `json:"product_id" gorm:"not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	UnitPrice float64   `json:"unit_price" gorm:"type:numeric(18,2);not null"`
}

func (OrderDetail) TableName() string { return "order_details" }

// Payment records a settlement against an order.
type Payment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	OrderID       uint      `json:"order_id"`
	OrderDate     time.Time `json:"order_date"`
	PaymentDate   time.Time `json:"payment_date" gorm:"autoCreateTime"`
	PaymentMethod string    `json:"payment_method" gorm:"type:varchar(50);not null"`
	Amount        float64   `json:"amount" gorm:"type:numeric(18,2)"`
}

func (Payment) TableName() string { return "payments" }

// Review is a customer's product rating.
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProductID  uint      `json:"product_id"`
	CustomerID uint      `json:"customer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty" gorm:"type:text"`
	ReviewDate time.Time `json:"review_date" gorm:"autoCreateTime"`
}

func (Review) TableName() string { return "reviews" }
