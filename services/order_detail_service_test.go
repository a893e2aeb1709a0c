package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"restx/entity"
	"restx/pkg/logger"
	"restx/repository"
	"restx/services"
	"restx/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeScenarioOrder(t *testing.T, f *orderFixture) (entity.Order, []entity.OrderDetail) {
	t.Helper()
	res := f.svc.CreateOrder(context.Background(), f.customer.ID, f.cart(
		services.CartLine{DishID: f.pho.ID, Quantity: 2},
		services.CartLine{DishID: f.tea.ID, Quantity: 1},
	))
	require.True(t, res.IsSuccess(), res.ErrorMessage)

	var o entity.Order
	require.NoError(t, f.db.First(&o, "id = ?", res.Data).Error)
	var details []entity.OrderDetail
	require.NoError(t, f.db.Where("order_id = ?", o.ID).Order("dish_id").Find(&details).Error)
	require.Len(t, details, 2)
	return o, details
}

func newDetailService(f *orderFixture, now time.Time) *services.OrderDetailService {
	s := services.NewOrderDetailService(repository.NewOrderRepository(f.db), logger.Discard())
	s.Now = func() time.Time { return now }
	return s
}

func TestUpdateStatusSetsFlagAndAudit(t *testing.T) {
	f := newOrderFixture(t)
	_, details := placeScenarioOrder(t, f)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newDetailService(f, now)

	ok := svc.UpdateStatus(context.Background(), f.owner.ID, "staff-1", details[0].ID, false)
	require.True(t, ok)

	var got entity.OrderDetail
	require.NoError(t, f.db.First(&got, "id = ?", details[0].ID).Error)
	assert.False(t, got.IsActive)
	assert.Equal(t, "staff-1", got.ModifiedBy)
	require.NotNil(t, got.ModifiedDate)
	assert.True(t, now.Equal(*got.ModifiedDate))
}

func TestUpdateStatusForAnotherOwnerChangesNothing(t *testing.T) {
	f := newOrderFixture(t)
	_, details := placeScenarioOrder(t, f)
	other := testutil.Owner(t, f.db, "Other")
	svc := newDetailService(f, time.Now())

	ok := svc.UpdateStatus(context.Background(), other.ID, "intruder", details[0].ID, false)
	assert.False(t, ok)

	var got entity.OrderDetail
	require.NoError(t, f.db.First(&got, "id = ?", details[0].ID).Error)
	assert.True(t, got.IsActive)
	assert.Empty(t, got.ModifiedBy)
	assert.Nil(t, got.ModifiedDate)
}

func TestUpdateStatusUnknownLineIsFalse(t *testing.T) {
	f := newOrderFixture(t)
	svc := newDetailService(f, time.Now())
	assert.False(t, svc.UpdateStatus(context.Background(), f.owner.ID, "staff-1", uuid.New(), true))
}

func TestRequestTotalFollowsActiveLines(t *testing.T) {
	f := newOrderFixture(t)
	_, details := placeScenarioOrder(t, f)
	svc := newDetailService(f, time.Now())

	// details are ordered by dish id: pho (2×10) then tea (1×5.5)
	require.True(t, svc.UpdateStatus(context.Background(), f.owner.ID, "staff-1", details[1].ID, false))

	list, err := f.svc.CustomerRequests(context.Background(), f.owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].OrderDetails, 1)
	assert.True(t, decimal.NewFromInt(20).Equal(list[0].TotalAmount), "got %s", list[0].TotalAmount)

	require.True(t, svc.UpdateStatus(context.Background(), f.owner.ID, "staff-1", details[1].ID, true))
	list, err = f.svc.CustomerRequests(context.Background(), f.owner.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("25.5").Equal(list[0].TotalAmount), "got %s", list[0].TotalAmount)
}

func TestConcurrentTogglesOnOneOrderBothPersist(t *testing.T) {
	f := newOrderFixture(t)
	_, details := placeScenarioOrder(t, f)
	svc := newDetailService(f, time.Now())

	var wg sync.WaitGroup
	results := make([]bool, len(details))
	for i, d := range details {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			results[i] = svc.UpdateStatus(context.Background(), f.owner.ID, "staff-1", id, false)
		}(i, d.ID)
	}
	wg.Wait()

	for i, ok := range results {
		assert.True(t, ok, "toggle %d", i)
	}
	var active int64
	require.NoError(t, f.db.Model(&entity.OrderDetail{}).Where("is_active = ?", true).Count(&active).Error)
	assert.Zero(t, active)
}
