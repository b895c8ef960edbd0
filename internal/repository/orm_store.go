package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"storefront-service/internal/model"
)

// OrmStore implements Store by composing GORM query expressions against the
// live schema. Only the server-side scalar functions (stock label, discount)
// are invoked as narrow single-expression raw calls; everything else is built
// declaratively.
type OrmStore struct {
	db *gorm.DB
}

func NewOrmStore(db *gorm.DB) *OrmStore {
	return &OrmStore{db: db}
}

func (s *OrmStore) Login(ctx context.Context, email string) (*model.Customer, error) {
	var customer model.Customer
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *OrmStore) Register(ctx context.Context, customer *model.Customer) error {
	err := s.db.WithContext(ctx).Create(customer).Error
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (s *OrmStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Order("id").
		Find(&products).Error
	return products, err
}

func (s *OrmStore) StockStatus(ctx context.Context, productID uint) (string, error) {
	var label sql.NullString
	err := s.db.WithContext(ctx).
		Raw("SELECT fn_get_stock_label(?)", productID).
		Scan(&label).Error
	if err != nil {
		return "", err
	}
	if !label.Valid {
		return stockStatusUnknown, nil
	}
	return label.String, nil
}

// PlaceOrder creates the order header and its single line inside one
// transaction. The (id, order_date) pair captured at the header insert is
// threaded into the line insert unchanged, since re-sampling the clock would
// land the line in the wrong partition. The line insert fires trg_update_stock;
// the decrement is the database's contract and is not re-checked here. Any
// failure rolls the whole unit back: no header, no line, no stock change.
func (s *OrmStore) PlaceOrder(ctx context.Context, customerID, productID uint, quantity int) error {
	if err := validateOrderInput(quantity); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		order := model.Order{
			CustomerID:  customerID,
			OrderDate:   time.Now(),
			Status:      model.OrderStatusPending,
			TotalAmount: product.Price * float64(quantity),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		detail := model.OrderDetail{
			OrderID:   order.ID,
			OrderDate: order.OrderDate,
			ProductID: product.ID,
			Quantity:  quantity,
			UnitPrice: product.Price,
		}
		return tx.Create(&detail).Error
	})
}

func (s *OrmStore) CustomerOrders(ctx context.Context, customerID uint) ([]model.CustomerOrder, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("order_date DESC").
		Limit(customerOrdersLimit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	result := make([]model.CustomerOrder, 0, len(orders))
	for _, order := range orders {
		var items []model.OrderItemDetail
		// Line items are addressed by the full composite key. Filtering by
		// order_id alone could pull lines from another partition where the
		// surrogate id has been recycled.
		err := s.db.WithContext(ctx).
			Table("order_details od").
			Select("od.product_id, p.name AS product_name, od.quantity, od.unit_price").
			Joins("JOIN products p ON p.id = od.product_id").
			Where("od.order_id = ? AND od.order_date = ?", order.ID, order.OrderDate).
			Scan(&items).Error
		if err != nil {
			return nil, err
		}
		result = append(result, model.CustomerOrder{
			OrderID:     order.ID,
			OrderDate:   order.OrderDate,
			TotalAmount: order.TotalAmount,
			Status:      order.Status,
			Items:       items,
		})
	}
	return result, nil
}

func (s *OrmStore) CustomerOrderSummaries(ctx context.Context) ([]model.CustomerOrderSummary, error) {
	var summaries []model.CustomerOrderSummary
	err := s.db.WithContext(ctx).
		Table("customers c").
		Select("c.id AS customer_id, c.first_name || ' ' || c.last_name AS customer_name, COUNT(o.id) AS total_orders, COALESCE(SUM(o.total_amount), 0) AS total_spent").
		Joins("LEFT JOIN orders o ON o.customer_id = c.id").
		Group("c.id, c.first_name, c.last_name").
		Order("total_spent DESC").
		Limit(orderSummariesLimit).
		Scan(&summaries).Error
	return summaries, err
}

func (s *OrmStore) TopCustomers(ctx context.Context) ([]model.TopCustomer, error) {
	var top []model.TopCustomer
	spend := s.db.WithContext(ctx).
		Table("orders").
		Select("customer_id, SUM(total_amount) AS total_spent").
		Group("customer_id").
		Order("total_spent DESC").
		Limit(topCustomersLimit)
	err := s.db.WithContext(ctx).
		Table("(?) AS spend", spend).
		Select("c.first_name, c.last_name, spend.total_spent").
		Joins("JOIN customers c ON c.id = spend.customer_id").
		Order("spend.total_spent DESC").
		Scan(&top).Error
	return top, err
}

func (s *OrmStore) ProductSalesStatus(ctx context.Context) ([]model.ProductSalesStatus, error) {
	var statuses []model.ProductSalesStatus
	err := s.db.WithContext(ctx).
		Table("products p").
		Select("p.id AS product_id, p.name AS product_name, p.stock_quantity AS current_stock, COALESCE(SUM(od.quantity), 0) AS total_units_sold").
		Joins("LEFT JOIN order_details od ON od.product_id = p.id").
		Group("p.id, p.name, p.stock_quantity").
		Order("p.id").
		Scan(&statuses).Error
	return statuses, err
}

func (s *OrmStore) PotentialDiscount(ctx context.Context, customerID uint) (float64, error) {
	var amount sql.NullFloat64
	err := s.db.WithContext(ctx).
		Raw("SELECT fn_potential_discount(?)", customerID).
		Scan(&amount).Error
	if err != nil {
		return 0, err
	}
	return amount.Float64, nil
}
