// services/order_transitions.go
package services

import (
	"context"
	"fmt"
	"slices"

	"restx/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// allowedFrom lists, per target status, the statuses an order may move from.
var allowedFrom = map[string][]string{
	entity.OrderStatusPreparing: {entity.OrderStatusNew},
	entity.OrderStatusServed:    {entity.OrderStatusPreparing},
	entity.OrderStatusCompleted: {entity.OrderStatusNew, entity.OrderStatusPreparing, entity.OrderStatusServed},
	entity.OrderStatusCancelled: {entity.OrderStatusNew, entity.OrderStatusPreparing},
}

// SetStatus moves an order of ownerID to target. Cancelling also deactivates
// the order so it no longer counts toward revenue.
func (s *OrderService) SetStatus(ctx context.Context, ownerID, orderID uuid.UUID, actor, target string) error {
	from, ok := allowedFrom[target]
	if !ok {
		return invalid(fmt.Sprintf("unknown order status %q", target))
	}

	o, err := s.Repo.GetForOwner(ctx, ownerID, orderID)
	if err != nil {
		return notFound(err, "order")
	}
	if !o.IsActive || !slices.Contains(from, o.OrderStatus.StatusName) {
		return conflict(fmt.Sprintf("order is %s", o.OrderStatus.StatusName))
	}

	// the guard re-checks the status, so a concurrent move loses cleanly
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, ownerID, orderID, o.OrderStatusID, s.Status.byName(target), actor, s.Now())
		if err != nil {
			return err
		}
		if affected == 0 {
			return conflict("order changed concurrently")
		}
		if target == entity.OrderStatusCancelled {
			return s.Repo.Deactivate(tx, orderID)
		}
		return nil
	})
}

// Close completes the order; it leaves the request list but keeps counting.
func (s *OrderService) Close(ctx context.Context, ownerID, orderID uuid.UUID, actor string) error {
	return s.SetStatus(ctx, ownerID, orderID, actor, entity.OrderStatusCompleted)
}
