package services_test

import (
	"context"
	"errors"
	"testing"

	"restx/entity"
	"restx/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseRemovesOrderFromRequests(t *testing.T) {
	f := newOrderFixture(t)
	o, _ := placeScenarioOrder(t, f)

	require.NoError(t, f.svc.Close(context.Background(), f.owner.ID, o.ID, "staff-1"))

	list, err := f.svc.CustomerRequests(context.Background(), f.owner.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	var got entity.Order
	require.NoError(t, f.db.Preload("OrderStatus").First(&got, "id = ?", o.ID).Error)
	assert.True(t, got.IsActive, "completed orders keep counting toward revenue")
	assert.Equal(t, entity.OrderStatusCompleted, got.OrderStatus.StatusName)
}

func TestCancelDeactivatesOrder(t *testing.T) {
	f := newOrderFixture(t)
	o, _ := placeScenarioOrder(t, f)

	require.NoError(t, f.svc.SetStatus(context.Background(), f.owner.ID, o.ID, "staff-1", entity.OrderStatusCancelled))

	var got entity.Order
	require.NoError(t, f.db.First(&got, "id = ?", o.ID).Error)
	assert.False(t, got.IsActive)
}

func TestStatusTransitionsAreGuarded(t *testing.T) {
	f := newOrderFixture(t)
	o, _ := placeScenarioOrder(t, f)
	ctx := context.Background()

	err := f.svc.SetStatus(ctx, f.owner.ID, o.ID, "staff-1", entity.OrderStatusServed)
	assert.True(t, errors.Is(err, services.ErrConflict), "New cannot jump to Served: %v", err)

	require.NoError(t, f.svc.SetStatus(ctx, f.owner.ID, o.ID, "staff-1", entity.OrderStatusPreparing))
	require.NoError(t, f.svc.SetStatus(ctx, f.owner.ID, o.ID, "staff-1", entity.OrderStatusServed))

	err = f.svc.SetStatus(ctx, f.owner.ID, o.ID, "staff-1", "Eaten")
	assert.True(t, errors.Is(err, services.ErrInvalidInput))
}

func TestCloseOrderOfAnotherOwnerIsNotFound(t *testing.T) {
	f := newOrderFixture(t)
	o, _ := placeScenarioOrder(t, f)
	other := f.customer.OwnerID
	other[0] ^= 0xff

	err := f.svc.Close(context.Background(), other, o.ID, "intruder")
	assert.True(t, errors.Is(err, services.ErrNotFound))
}
