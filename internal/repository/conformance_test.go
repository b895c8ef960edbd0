package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront-service/internal/model"
)

// Conformance tests run both strategies against a real database and require
// the schema from scripts/schema.sql. They are skipped unless
// STOREFRONT_TEST_DSN is set, e.g.
//
//	STOREFRONT_TEST_DSN="host=localhost user=postgres password=postgres dbname=storefront_test sslmode=disable" go test ./...
func openTestStores(t *testing.T) (*OrmStore, *ProcStore, *gorm.DB) {
	t.Helper()

	dsn := os.Getenv("STOREFRONT_TEST_DSN")
	if dsn == "" {
		t.Skip("STOREFRONT_TEST_DSN not set; skipping database conformance tests")
	}

	db, err := gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	return NewOrmStore(db), NewProcStore(sqlDB), db
}

// seedCatalog inserts a category, a product, and a registered customer, and
// removes them when the test finishes.
func seedCatalog(t *testing.T, db *gorm.DB, stock int, price float64) (model.Product, model.Customer) {
	t.Helper()

	category := model.Category{Name: fmt.Sprintf("conformance-%d", time.Now().UnixNano())}
	require.NoError(t, db.Create(&category).Error)

	product := model.Product{
		Name:          "Conformance Widget",
		CategoryID:    category.ID,
		Price:         price,
		StockQuantity: stock,
	}
	require.NoError(t, db.Create(&product).Error)

	customer := model.Customer{
		FirstName: "Confo",
		LastName:  "Rmance",
		Email:     fmt.Sprintf("conformance-%d@example.com", time.Now().UnixNano()),
	}
	require.NoError(t, db.Create(&customer).Error)

	t.Cleanup(func() {
		db.Exec("DELETE FROM order_details WHERE product_id = ?", product.ID)
		db.Exec("DELETE FROM orders WHERE customer_id = ?", customer.ID)
		db.Delete(&model.Customer{}, customer.ID)
		db.Delete(&model.Product{}, product.ID)
		db.Delete(&model.Category{}, category.ID)
	})
	return product, customer
}

func currentStock(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()
	var stock int
	require.NoError(t, db.Model(&model.Product{}).Select("stock_quantity").Where("id = ?", productID).Scan(&stock).Error)
	return stock
}

func TestStrategyEquivalenceOnReads(t *testing.T) {
	orm, proc, db := openTestStores(t)
	ctx := context.Background()

	product, customer := seedCatalog(t, db, 25, 19.99)
	require.NoError(t, orm.PlaceOrder(ctx, customer.ID, product.ID, 2))

	t.Run("ListProducts", func(t *testing.T) {
		a, err := orm.ListProducts(ctx)
		require.NoError(t, err)
		b, err := proc.ListProducts(ctx)
		require.NoError(t, err)
		require.Equal(t, len(a), len(b))
		for i := range a {
			assert.Equal(t, a[i].ID, b[i].ID)
			assert.Equal(t, a[i].Name, b[i].Name)
			assert.Equal(t, a[i].Price, b[i].Price)
			assert.Equal(t, a[i].StockQuantity, b[i].StockQuantity)
			require.NotNil(t, a[i].Category)
			require.NotNil(t, b[i].Category)
			assert.Equal(t, a[i].Category.Name, b[i].Category.Name)
		}
	})

	t.Run("CustomerOrders", func(t *testing.T) {
		a, err := orm.CustomerOrders(ctx, customer.ID)
		require.NoError(t, err)
		b, err := proc.CustomerOrders(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, a, b)
		require.NotEmpty(t, a)
		assert.LessOrEqual(t, len(a), 50)
	})

	t.Run("CustomerOrderSummaries", func(t *testing.T) {
		a, err := orm.CustomerOrderSummaries(ctx)
		require.NoError(t, err)
		b, err := proc.CustomerOrderSummaries(ctx)
		require.NoError(t, err)
		assert.Equal(t, a, b)
		assert.LessOrEqual(t, len(a), 100)
	})

	t.Run("TopCustomers", func(t *testing.T) {
		a, err := orm.TopCustomers(ctx)
		require.NoError(t, err)
		b, err := proc.TopCustomers(ctx)
		require.NoError(t, err)
		assert.Equal(t, a, b)
		assert.LessOrEqual(t, len(a), 10)
	})

	t.Run("ProductSalesStatus", func(t *testing.T) {
		a, err := orm.ProductSalesStatus(ctx)
		require.NoError(t, err)
		b, err := proc.ProductSalesStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("StockStatus", func(t *testing.T) {
		a, err := orm.StockStatus(ctx, product.ID)
		require.NoError(t, err)
		b, err := proc.StockStatus(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("PotentialDiscount", func(t *testing.T) {
		a, err := orm.PotentialDiscount(ctx, customer.ID)
		require.NoError(t, err)
		b, err := proc.PotentialDiscount(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestStockStatusUnknownProduct(t *testing.T) {
	orm, proc, _ := openTestStores(t)
	ctx := context.Background()

	const missingID = 999999999

	a, err := orm.StockStatus(ctx, missingID)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", a)

	b, err := proc.StockStatus(ctx, missingID)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", b)
}

func TestPlaceOrderCommitsHeaderLineAndDecrement(t *testing.T) {
	orm, proc, db := openTestStores(t)
	ctx := context.Background()

	strategies := map[string]Store{"orm": orm, "procedure": proc}
	for name, store := range strategies {
		t.Run(name, func(t *testing.T) {
			product, customer := seedCatalog(t, db, 10, 4.50)

			require.NoError(t, store.PlaceOrder(ctx, customer.ID, product.ID, 3))

			assert.Equal(t, 7, currentStock(t, db, product.ID))

			var order model.Order
			require.NoError(t, db.Where("customer_id = ?", customer.ID).First(&order).Error)
			assert.Equal(t, model.OrderStatusPending, order.Status)
			assert.InDelta(t, 13.50, order.TotalAmount, 0.001)

			// Exactly one line, sharing the header's composite key.
			var details []model.OrderDetail
			require.NoError(t, db.Where("order_id = ? AND order_date = ?", order.ID, order.OrderDate).Find(&details).Error)
			require.Len(t, details, 1)
			assert.Equal(t, 3, details[0].Quantity)
			assert.InDelta(t, 4.50, details[0].UnitPrice, 0.001)
			assert.True(t, details[0].OrderDate.Equal(order.OrderDate))
		})
	}
}

func TestPlaceOrderUnknownProductLeavesNothingBehind(t *testing.T) {
	orm, proc, db := openTestStores(t)
	ctx := context.Background()

	const missingID = 999999999

	strategies := map[string]Store{"orm": orm, "procedure": proc}
	for name, store := range strategies {
		t.Run(name, func(t *testing.T) {
			_, customer := seedCatalog(t, db, 5, 1.00)

			err := store.PlaceOrder(ctx, customer.ID, missingID, 1)
			require.ErrorIs(t, err, ErrProductNotFound)

			var count int64
			require.NoError(t, db.Model(&model.Order{}).Where("customer_id = ?", customer.ID).Count(&count).Error)
			assert.Zero(t, count)
		})
	}
}

// Surrogate order ids can repeat across date partitions; only the full
// (order_id, order_date) pair addresses a row. Two orders sharing an id in
// different partitions must each come back with only their own lines.
func TestCustomerOrdersIsolatesRecycledIDsAcrossPartitions(t *testing.T) {
	orm, proc, db := openTestStores(t)
	ctx := context.Background()

	first, customer := seedCatalog(t, db, 10, 3.00)

	second := model.Product{
		Name:          "Conformance Gadget",
		CategoryID:    first.CategoryID,
		Price:         7.00,
		StockQuantity: 10,
	}
	require.NoError(t, db.Create(&second).Error)
	t.Cleanup(func() {
		db.Exec("DELETE FROM order_details WHERE product_id = ?", second.ID)
		db.Delete(&model.Product{}, second.ID)
	})

	const sharedID = 987654321
	earlier := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	later := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.Exec(
		`INSERT INTO orders (id, order_date, customer_id, total_amount, status) VALUES (?, ?, ?, ?, 'Pending')`,
		sharedID, earlier, customer.ID, 3.00).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO orders (id, order_date, customer_id, total_amount, status) VALUES (?, ?, ?, ?, 'Pending')`,
		sharedID, later, customer.ID, 14.00).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO order_details (order_date, order_id, product_id, quantity, unit_price) VALUES (?, ?, ?, 1, 3.00)`,
		earlier, sharedID, first.ID).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO order_details (order_date, order_id, product_id, quantity, unit_price) VALUES (?, ?, ?, 2, 7.00)`,
		later, sharedID, second.ID).Error)

	for name, store := range map[string]Store{"orm": orm, "procedure": proc} {
		t.Run(name, func(t *testing.T) {
			orders, err := store.CustomerOrders(ctx, customer.ID)
			require.NoError(t, err)
			require.Len(t, orders, 2)

			// Newest first, and each order carries exactly its own line.
			assert.EqualValues(t, sharedID, orders[0].OrderID)
			require.Len(t, orders[0].Items, 1)
			assert.EqualValues(t, second.ID, orders[0].Items[0].ProductID)
			assert.Equal(t, 2, orders[0].Items[0].Quantity)

			assert.EqualValues(t, sharedID, orders[1].OrderID)
			require.Len(t, orders[1].Items, 1)
			assert.EqualValues(t, first.ID, orders[1].Items[0].ProductID)
			assert.Equal(t, 1, orders[1].Items[0].Quantity)
		})
	}
}

func TestPotentialDiscountThreshold(t *testing.T) {
	orm, proc, db := openTestStores(t)
	ctx := context.Background()

	_, customer := seedCatalog(t, db, 5, 1.00)

	require.NoError(t, db.Exec(
		`INSERT INTO orders (order_date, customer_id, total_amount, status) VALUES (now(), ?, 999.99, 'Pending')`,
		customer.ID).Error)

	for name, store := range map[string]Store{"orm": orm, "procedure": proc} {
		t.Run(name+" below threshold", func(t *testing.T) {
			amount, err := store.PotentialDiscount(ctx, customer.ID)
			require.NoError(t, err)
			assert.Zero(t, amount)
		})
	}

	// Crossing 1000 earns 5% of the full spend.
	require.NoError(t, db.Exec(
		`INSERT INTO orders (order_date, customer_id, total_amount, status) VALUES (now(), ?, 500.01, 'Pending')`,
		customer.ID).Error)

	for name, store := range map[string]Store{"orm": orm, "procedure": proc} {
		t.Run(name+" at threshold", func(t *testing.T) {
			amount, err := store.PotentialDiscount(ctx, customer.ID)
			require.NoError(t, err)
			assert.InDelta(t, 75.00, amount, 0.001)
		})
	}
}

// A quantity exceeding stock trips the stock_quantity check inside the
// placement transaction. The whole unit rolls back: no header, no line,
// stock untouched.
func TestPlaceOrderStockOverdrawRollsBack(t *testing.T) {
	orm, proc, db := openTestStores(t)
	ctx := context.Background()

	strategies := map[string]Store{"orm": orm, "procedure": proc}
	for name, store := range strategies {
		t.Run(name, func(t *testing.T) {
			product, customer := seedCatalog(t, db, 2, 9.99)

			err := store.PlaceOrder(ctx, customer.ID, product.ID, 5)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrProductNotFound)
			assert.NotErrorIs(t, err, ErrInvalidQuantity)

			assert.Equal(t, 2, currentStock(t, db, product.ID))

			var orders int64
			require.NoError(t, db.Model(&model.Order{}).Where("customer_id = ?", customer.ID).Count(&orders).Error)
			assert.Zero(t, orders)

			var lines int64
			require.NoError(t, db.Model(&model.OrderDetail{}).Where("product_id = ?", product.ID).Count(&lines).Error)
			assert.Zero(t, lines)
		})
	}
}

func TestRegisterPopulatesIdentity(t *testing.T) {
	orm, proc, db := openTestStores(t)
	ctx := context.Background()

	for name, store := range map[string]Store{"orm": orm, "procedure": proc} {
		t.Run(name, func(t *testing.T) {
			email := fmt.Sprintf("identity-%s-%d@example.com", name, time.Now().UnixNano())
			customer := model.Customer{FirstName: "Id", LastName: "Entity", Email: email}
			require.NoError(t, store.Register(ctx, &customer))
			t.Cleanup(func() { db.Exec("DELETE FROM customers WHERE email = ?", email) })

			assert.NotZero(t, customer.ID)
			assert.False(t, customer.RegisteredAt.IsZero())
		})
	}
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	orm, proc, db := openTestStores(t)
	ctx := context.Background()

	strategies := map[string]Store{"orm": orm, "procedure": proc}
	for name, store := range strategies {
		t.Run(name, func(t *testing.T) {
			email := fmt.Sprintf("dup-%s-%d@example.com", name, time.Now().UnixNano())
			first := model.Customer{FirstName: "A", LastName: "B", Email: email}
			require.NoError(t, store.Register(ctx, &first))
			t.Cleanup(func() { db.Exec("DELETE FROM customers WHERE email = ?", email) })

			second := model.Customer{FirstName: "C", LastName: "D", Email: email}
			err := store.Register(ctx, &second)
			require.ErrorIs(t, err, ErrEmailTaken)

			var count int64
			require.NoError(t, db.Model(&model.Customer{}).Where("email = ?", email).Count(&count).Error)
			assert.EqualValues(t, 1, count)
		})
	}
}

func TestLoginUnknownEmailIsNotFound(t *testing.T) {
	orm, proc, _ := openTestStores(t)
	ctx := context.Background()

	for name, store := range map[string]Store{"orm": orm, "procedure": proc} {
		t.Run(name, func(t *testing.T) {
			_, err := store.Login(ctx, "nobody@example.invalid")
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

// The context deadline applies to every storage round-trip; an expired
// context fails the call instead of hanging.
func TestContextCancellation(t *testing.T) {
	orm, proc, _ := openTestStores(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orm.ListProducts(ctx)
	assert.Error(t, err)

	_, err = proc.ListProducts(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled))
}
