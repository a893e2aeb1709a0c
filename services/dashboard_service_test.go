package services_test

import (
	"context"
	"testing"
	"time"

	"restx/entity"
	"restx/repository"
	"restx/services"
	"restx/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dashOrder(at time.Time, table int, customer string, lines ...[2]string) entity.Order {
	o := entity.Order{
		UUIDModel:   entity.UUIDModel{ID: uuid.New()},
		Time:        at,
		IsActive:    true,
		Customer:    entity.Customer{Name: customer},
		Table:       entity.Table{TableNumber: table},
		OrderStatus: entity.OrderStatus{StatusName: entity.OrderStatusNew},
	}
	for i, l := range lines {
		o.OrderDetails = append(o.OrderDetails, entity.OrderDetail{
			Quantity: i + 1,
			Price:    decimal.RequireFromString(l[1]),
			IsActive: true,
			Dish:     entity.Dish{Name: l[0]},
		})
	}
	return o
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2026, time.March, 31, 18, 0, 0, 0, time.UTC)

	today := dashOrder(now.Add(-2*time.Hour), 5, "Minh", [2]string{"Pho", "10"}, [2]string{"Tea", "5.5"}) // 10 + 11 = 21
	paid := today
	paid.Payments = []entity.Payment{{Cost: dec("21"), IsActive: true}}

	lastMonth := dashOrder(time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC), 2, "", [2]string{"Pho", "14"})
	lastYear := dashOrder(time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC), 1, "Hoa", [2]string{"Pho", "100"})
	cancelled := dashOrder(now.Add(-time.Hour), 3, "X", [2]string{"Pho", "999"})
	cancelled.IsActive = false

	imports := []entity.IngredientImport{
		{TotalCost: dec("30"), Time: time.Date(2026, time.March, 30, 9, 0, 0, 0, time.UTC)},
		{TotalCost: dec("12.5"), Time: time.Date(2026, time.March, 30, 15, 0, 0, 0, time.UTC)},
	}

	d := services.BuildDashboard(now, []entity.Order{lastYear, paid, lastMonth, cancelled}, imports)

	assert.True(t, dec("21").Equal(d.TodayRevenue), "today %s", d.TodayRevenue)
	assert.Equal(t, 3, d.TotalOrders)
	assert.True(t, dec("21").Equal(d.CurrentMonthRevenue))
	assert.True(t, dec("14").Equal(d.PreviousMonthRevenue))
	assert.True(t, d.MonthlyEarnings.Equal(d.CurrentMonthRevenue))
	assert.True(t, dec("50").Equal(d.GrowthRate), "growth %s", d.GrowthRate)

	// 2026 = 35, 2025 = 100
	assert.True(t, dec("-65").Equal(d.YearlyGrowthRate), "yearly growth %s", d.YearlyGrowthRate)
	assert.Len(t, d.YearlyRevenue, 2)
	assert.True(t, dec("35").Equal(d.YearlyRevenue[2026]))

	require.Len(t, d.MonthlyEarningsTrend, 7)
	assert.True(t, dec("21").Equal(d.MonthlyEarningsTrend[6]))
	assert.True(t, dec("14").Equal(d.MonthlyEarningsTrend[5]))
	assert.True(t, d.MonthlyEarningsTrend[4].IsZero())

	require.Len(t, d.MonthlyChartData, 4)
	assert.Len(t, d.MonthlyChartData["2026-03"], 1)
	assert.Len(t, d.MonthlyChartData["2026-02"], 1)
	assert.Empty(t, d.MonthlyChartData["2025-12"])

	require.Len(t, d.ProfitByDate, 3)
	assert.Equal(t, "2025-06-01", d.ProfitByDate[0].Date)

	require.Len(t, d.RecentOrders, 1)
	assert.Equal(t, "Table 5", d.RecentOrders[0].TableName)
	assert.Len(t, d.RecentOrders[0].Dishes, 2)
	assert.Equal(t, 9, len(d.RecentOrders[0].OrderID))

	require.Len(t, d.RecentActivities, 1)
	assert.True(t, d.RecentActivities[0].IsPaid)

	require.Len(t, d.CostByDate, 1)
	assert.True(t, dec("42.5").Equal(d.CostByDate[0].Amount))
}

func TestBuildDashboardWithoutHistory(t *testing.T) {
	d := services.BuildDashboard(time.Now(), nil, nil)
	assert.True(t, d.GrowthRate.IsZero())
	assert.True(t, d.YearlyGrowthRate.IsZero())
	assert.Empty(t, d.YearlyRevenue)
	assert.Zero(t, d.TotalOrders)
	assert.NotNil(t, d.RecentOrders)
}

func TestUnpaidActivity(t *testing.T) {
	now := time.Now()
	o := dashOrder(now, 1, "", [2]string{"Pho", "10"})
	o.Payments = []entity.Payment{{Cost: dec("5"), IsActive: true}, {Cost: dec("50"), IsActive: false}}

	d := services.BuildDashboard(now, []entity.Order{o}, nil)
	require.Len(t, d.RecentActivities, 1)
	assert.False(t, d.RecentActivities[0].IsPaid)
	assert.Equal(t, "Guest", d.RecentActivities[0].CustomerName)
}

func TestDashboardLoadReadsOwnerData(t *testing.T) {
	f := newOrderFixture(t)
	placeScenarioOrder(t, f)
	seedImport(t, f.db, f.owner.ID)

	svc := services.NewDashboardService(repository.NewOrderRepository(f.db), repository.NewRestaurantRepository(f.db))
	d, err := svc.Load(context.Background(), f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, d.TotalOrders)
	assert.True(t, dec("25.5").Equal(d.TodayRevenue), "today %s", d.TodayRevenue)
	require.Len(t, d.CostByDate, 1)

	other := testutil.Owner(t, f.db, "Other")
	empty, err := svc.Load(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalOrders)
	assert.Empty(t, empty.CostByDate)
}

func seedImport(t *testing.T, db *gorm.DB, ownerID uuid.UUID) {
	t.Helper()
	ing := entity.Ingredient{OwnerID: ownerID, Name: "Beef", Unit: "kg"}
	require.NoError(t, db.Create(&ing).Error)
	imp := entity.IngredientImport{IngredientID: ing.ID, Quantity: dec("2"), TotalCost: dec("40"), Time: time.Now()}
	require.NoError(t, db.Create(&imp).Error)
}
