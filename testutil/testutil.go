// Package testutil opens throwaway databases and seeds small restaurants for
// package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"restx/configs"
	"restx/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a migrated in-memory sqlite database with lookups seeded.
// One connection keeps every query on the same memory database.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, configs.SetupDatabase(db))
	require.NoError(t, configs.SeedLookups(db))
	return db
}

func Owner(t testing.TB, db *gorm.DB, name string) entity.Owner {
	t.Helper()
	o := entity.Owner{Name: name, Address: name + " street", IsActive: true}
	require.NoError(t, db.Create(&o).Error)
	return o
}

// Category names are unique, so each call gets a fresh suffix.
func Category(t testing.TB, db *gorm.DB, name string) entity.Category {
	t.Helper()
	c := entity.Category{Name: name + " " + uuid.NewString()[:8]}
	require.NoError(t, db.Create(&c).Error)
	return c
}

// Table creates table number n with the given id (0 lets the database pick).
func Table(t testing.TB, db *gorm.DB, ownerID uuid.UUID, id uint, n int) entity.Table {
	t.Helper()
	var st entity.TableStatus
	require.NoError(t, db.Where("name = ?", entity.TableStatusAvailable).First(&st).Error)
	tb := entity.Table{OwnerID: ownerID, TableNumber: n, IsActive: true, TableStatusID: st.ID}
	tb.ID = id
	require.NoError(t, db.Create(&tb).Error)
	tb.TableStatus = st
	return tb
}

// Dish creates an available dish with the given id (0 lets the database pick).
func Dish(t testing.TB, db *gorm.DB, ownerID uuid.UUID, categoryID, id uint, name, price string) entity.Dish {
	t.Helper()
	d := entity.Dish{
		OwnerID:    ownerID,
		CategoryID: categoryID,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		IsActive:   true,
	}
	d.ID = id
	require.NoError(t, db.Create(&d).Error)
	return d
}

func Customer(t testing.TB, db *gorm.DB, ownerID uuid.UUID, name, phone string) entity.Customer {
	t.Helper()
	c := entity.Customer{OwnerID: ownerID, Name: name, Phone: phone, IsActive: true}
	require.NoError(t, db.Create(&c).Error)
	return c
}

// Order writes an order with active lines directly, bypassing the service.
func Order(t testing.TB, db *gorm.DB, o entity.Order, lines ...entity.OrderDetail) entity.Order {
	t.Helper()
	if o.Time.IsZero() {
		o.Time = time.Now()
	}
	if o.OrderStatusID == 0 {
		var st entity.OrderStatus
		require.NoError(t, db.Where("status_name = ?", entity.OrderStatusNew).First(&st).Error)
		o.OrderStatusID = st.ID
	}
	o.IsActive = true
	require.NoError(t, db.Omit("Customer", "Table", "Owner", "OrderStatus", "OrderDetails", "Payments").Create(&o).Error)
	for i := range lines {
		lines[i].OrderID = o.ID
		lines[i].IsActive = true
		require.NoError(t, db.Omit("Order", "Dish").Create(&lines[i]).Error)
	}
	o.OrderDetails = lines
	return o
}
