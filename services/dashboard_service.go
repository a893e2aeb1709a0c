package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"restx/entity"
	"restx/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type DailyAmount struct {
	Date   string          `json:"date"` // YYYY-MM-DD
	Amount decimal.Decimal `json:"amount"`
}

type DashboardDish struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type RecentOrder struct {
	OrderID      string          `json:"orderId"`
	CustomerName string          `json:"customerName"`
	TableName    string          `json:"tableName"`
	Dishes       []DashboardDish `json:"dishes"`
	Status       string          `json:"status"`
	Amount       decimal.Decimal `json:"amount"`
}

type Activity struct {
	Time         time.Time       `json:"time"`
	TableName    string          `json:"tableName"`
	CustomerName string          `json:"customerName"`
	IsPaid       bool            `json:"isPaid"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Dishes       []DashboardDish `json:"dishes"`
}

type Dashboard struct {
	TodayRevenue         decimal.Decimal          `json:"todayRevenue"`
	TotalOrders          int                      `json:"totalOrders"`
	MonthlyEarnings      decimal.Decimal          `json:"monthlyEarnings"`
	GrowthRate           decimal.Decimal          `json:"growthRate"`
	ProfitByDate         []DailyAmount            `json:"profitByDate"`
	MonthlyChartData     map[string][]DailyAmount `json:"monthlyChartData"`
	YearlyRevenue        map[int]decimal.Decimal  `json:"yearlyRevenue"`
	YearlyGrowthRate     decimal.Decimal          `json:"yearlyGrowthRate"`
	MonthlyEarningsTrend []decimal.Decimal        `json:"monthlyEarningsTrend"`
	CurrentMonthRevenue  decimal.Decimal          `json:"currentMonthRevenue"`
	PreviousMonthRevenue decimal.Decimal          `json:"previousMonthRevenue"`
	RecentOrders         []RecentOrder            `json:"recentOrders"`
	RecentActivities     []Activity               `json:"recentActivities"`
	CostByDate           []DailyAmount            `json:"costByDate"`
}

type DashboardService struct {
	Orders      *repository.OrderRepository
	Restaurants *repository.RestaurantRepository
	Now         func() time.Time
}

func NewDashboardService(orders *repository.OrderRepository, rest *repository.RestaurantRepository) *DashboardService {
	return &DashboardService{Orders: orders, Restaurants: rest, Now: time.Now}
}

// Load reads the last three calendar years of orders and ingredient imports
// in parallel and computes the dashboard from them.
func (s *DashboardService) Load(ctx context.Context, ownerID uuid.UUID) (*Dashboard, error) {
	now := s.Now()
	since := time.Date(now.Year()-2, time.January, 1, 0, 0, 0, 0, now.Location())

	var (
		orders  []entity.Order
		imports []entity.IngredientImport
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.Orders.ListForDashboard(gctx, ownerID, since)
		return err
	})
	g.Go(func() error {
		var err error
		imports, err = s.Restaurants.ImportsSince(gctx, ownerID, since)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	return BuildDashboard(now, orders, imports), nil
}

type monthKey struct {
	year  int
	month time.Month
}

// BuildDashboard computes every metric from active orders (with their active
// lines and payments) and ingredient imports. Revenue is Σ quantity×price.
func BuildDashboard(now time.Time, orders []entity.Order, imports []entity.IngredientImport) *Dashboard {
	loc := now.Location()
	today := dayKey(now)
	thisMonth := monthKey{now.Year(), now.Month()}
	lastMonth := monthOffset(now, -1)

	byDay := map[string]decimal.Decimal{}
	byMonth := map[monthKey]decimal.Decimal{}
	byYear := map[int]decimal.Decimal{}
	counted := 0

	d := &Dashboard{
		MonthlyChartData: map[string][]DailyAmount{},
		YearlyRevenue:    map[int]decimal.Decimal{},
		RecentOrders:     []RecentOrder{},
		RecentActivities: []Activity{},
	}

	sorted := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if o.IsActive {
			sorted = append(sorted, o)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.After(sorted[j].Time) })

	for _, o := range sorted {
		t := o.Time.In(loc)
		total := summarize(o).TotalAmount
		if len(o.OrderDetails) > 0 {
			counted++
		}
		byDay[dayKey(t)] = byDay[dayKey(t)].Add(total)
		mk := monthKey{t.Year(), t.Month()}
		byMonth[mk] = byMonth[mk].Add(total)
		byYear[t.Year()] = byYear[t.Year()].Add(total)

		if dayKey(t) != today {
			continue
		}
		dishes := dashboardDishes(o)
		customer := o.Customer.Name
		if customer == "" {
			customer = "Guest"
		}
		table := fmt.Sprintf("Table %d", o.Table.TableNumber)
		d.RecentOrders = append(d.RecentOrders, RecentOrder{
			OrderID:      "#" + strings.ToUpper(o.ID.String()[:8]),
			CustomerName: customer,
			TableName:    table,
			Dishes:       dishes,
			Status:       o.OrderStatus.StatusName,
			Amount:       total,
		})
		paid := decimal.Zero
		for _, p := range o.Payments {
			if p.IsActive {
				paid = paid.Add(p.Cost)
			}
		}
		d.RecentActivities = append(d.RecentActivities, Activity{
			Time:         o.Time,
			TableName:    table,
			CustomerName: customer,
			IsPaid:       IsPaid(total, paid),
			TotalAmount:  total,
			Dishes:       dishes,
		})
	}

	d.TotalOrders = counted
	d.TodayRevenue = byDay[today]
	d.CurrentMonthRevenue = byMonth[thisMonth]
	d.PreviousMonthRevenue = byMonth[lastMonth]
	d.MonthlyEarnings = d.CurrentMonthRevenue
	d.GrowthRate = growth(d.CurrentMonthRevenue, d.PreviousMonthRevenue)
	d.YearlyGrowthRate = growth(byYear[now.Year()], byYear[now.Year()-1])
	d.ProfitByDate = sortedDays(byDay, nil)

	for i := 0; i < 4; i++ {
		mk := monthOffset(now, -i)
		key := fmt.Sprintf("%04d-%02d", mk.year, int(mk.month))
		prefix := key + "-"
		d.MonthlyChartData[key] = sortedDays(byDay, func(day string) bool { return strings.HasPrefix(day, prefix) })
	}
	for i := 0; i < 3; i++ {
		if v := byYear[now.Year()-i]; v.IsPositive() {
			d.YearlyRevenue[now.Year()-i] = v
		}
	}
	for i := 6; i >= 0; i-- {
		d.MonthlyEarningsTrend = append(d.MonthlyEarningsTrend, byMonth[monthOffset(now, -i)])
	}

	costs := map[string]decimal.Decimal{}
	for _, imp := range imports {
		k := dayKey(imp.Time.In(loc))
		costs[k] = costs[k].Add(imp.TotalCost)
	}
	d.CostByDate = sortedDays(costs, nil)
	return d
}

func dashboardDishes(o entity.Order) []DashboardDish {
	out := make([]DashboardDish, 0, len(o.OrderDetails))
	for _, od := range o.OrderDetails {
		if !od.IsActive {
			continue
		}
		name := od.Dish.Name
		if name == "" {
			name = "Unknown"
		}
		out = append(out, DashboardDish{ID: od.DishID, Name: name, Price: od.Price})
	}
	return out
}

// growth is the percentage change from prev to cur, 0 when prev is 0.
func growth(cur, prev decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		return decimal.Zero
	}
	return cur.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(2)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// monthOffset steps whole months from the first of now's month, so the 31st
// never spills into the following month.
func monthOffset(now time.Time, n int) monthKey {
	t := time.Date(now.Year(), now.Month()+time.Month(n), 1, 0, 0, 0, 0, now.Location())
	return monthKey{t.Year(), t.Month()}
}

func sortedDays(m map[string]decimal.Decimal, keep func(string) bool) []DailyAmount {
	out := make([]DailyAmount, 0, len(m))
	for k, v := range m {
		if keep == nil || keep(k) {
			out = append(out, DailyAmount{Date: k, Amount: v})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
