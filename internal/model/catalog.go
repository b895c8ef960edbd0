package model

import "time"

// Category represents a product category
type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"type:varchar(50);not null;unique"`
	Description string `json:"description,omitempty" gorm:"type:varchar(255)"`
}

func (Category) TableName() string { return "categories" }

// Product represents a catalog item. StockQuantity is owned by the database:
// the trigger on order_details decrements it, so application code treats the
// column as read-only.
type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(100);not null"`
	CategoryID    uint      `json:"category_id"`
	Description   string    `json:"description,omitempty" gorm:"type:text"`
	Price         float64   `json:"price" gorm:"type:numeric(18,2);not null"`
	StockQuantity int       `json:"stock_quantity"`
	DateAdded     time.Time `json:"date_added" gorm:"autoCreateTime"`
	Category      *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Product) TableName() string { return "products" }
