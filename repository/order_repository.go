package repository

import (
	"context"
	"time"

	"restx/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Lookups ----------------

func (r *OrderRepository) GetStatusIDByName(ctx context.Context, name string) (uint, error) {
	var s entity.OrderStatus
	if err := r.DB.WithContext(ctx).Select("id").Where("status_name = ?", name).First(&s).Error; err != nil {
		return 0, err
	}
	return s.ID, nil
}

// ---------------- Writes (always inside the caller's tx) ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Omit(clause.Associations).Create(o).Error
}

func (r *OrderRepository) CreateOrderDetail(tx *gorm.DB, d *entity.OrderDetail) error {
	return tx.Omit(clause.Associations).Create(d).Error
}

// UpdateDetailStatus writes only the status and audit columns so concurrent
// toggles on sibling rows never overwrite each other.
func (r *OrderRepository) UpdateDetailStatus(ctx context.Context, d *entity.OrderDetail) error {
	return r.DB.WithContext(ctx).Model(&entity.OrderDetail{}).
		Where("id = ?", d.ID).
		Updates(map[string]any{
			"is_active":     d.IsActive,
			"modified_by":   d.ModifiedBy,
			"modified_date": d.ModifiedDate,
		}).Error
}

func (r *OrderRepository) Deactivate(tx *gorm.DB, orderID uuid.UUID) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).Update("is_active", false).Error
}

// UpdateStatusGuard moves the order from one status to another only when it
// is still in the expected status. Zero rows affected means it was not.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, ownerID, orderID uuid.UUID, from, to uint, by string, at time.Time) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND owner_id = ? AND order_status_id = ?", orderID, ownerID, from).
		Updates(map[string]any{"order_status_id": to, "modified_by": by, "modified_date": at})
	return res.RowsAffected, res.Error
}

// ---------------- Reads ----------------

// preloadSummary loads what an order summary needs: customer, table, status
// and the still-active lines with their dish.
func preloadSummary(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer").
		Preload("Table").
		Preload("OrderStatus").
		Preload("OrderDetails", "is_active = ?", true).
		Preload("OrderDetails.Dish")
}

// ListOpenForOwner returns the owner's active orders whose status is not in
// closedStatusIDs, newest first.
func (r *OrderRepository) ListOpenForOwner(ctx context.Context, ownerID uuid.UUID, closedStatusIDs []uint) ([]entity.Order, error) {
	var out []entity.Order
	q := preloadSummary(r.DB.WithContext(ctx)).
		Where("owner_id = ? AND is_active = ?", ownerID, true)
	if len(closedStatusIDs) > 0 {
		q = q.Where("order_status_id NOT IN ?", closedStatusIDs)
	}
	err := q.Order("time DESC").Find(&out).Error
	return out, err
}

// ListForCustomer is the customer's order history at one owner, newest first.
func (r *OrderRepository) ListForCustomer(ctx context.Context, ownerID, customerID uuid.UUID) ([]entity.Order, error) {
	var out []entity.Order
	err := preloadSummary(r.DB.WithContext(ctx)).
		Where("owner_id = ? AND customer_id = ?", ownerID, customerID).
		Order("time DESC").
		Find(&out).Error
	return out, err
}

func (r *OrderRepository) GetForOwner(ctx context.Context, ownerID, orderID uuid.UUID) (*entity.Order, error) {
	var o entity.Order
	err := preloadSummary(r.DB.WithContext(ctx)).
		Preload("Payments", "is_active = ?", true).
		Where("id = ? AND owner_id = ?", orderID, ownerID).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// FindDetailForOwner resolves a line through its parent order, so a line of
// another tenant is reported as not found.
func (r *OrderRepository) FindDetailForOwner(ctx context.Context, ownerID, detailID uuid.UUID) (*entity.OrderDetail, error) {
	var d entity.OrderDetail
	err := r.DB.WithContext(ctx).
		Joins("JOIN orders ON orders.id = order_details.order_id").
		Where("order_details.id = ? AND orders.owner_id = ?", detailID, ownerID).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListForDashboard returns every active order of the owner placed at or after
// since, with active lines, dishes and active payments.
func (r *OrderRepository) ListForDashboard(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]entity.Order, error) {
	var out []entity.Order
	err := preloadSummary(r.DB.WithContext(ctx)).
		Preload("Payments", "is_active = ?", true).
		Where("owner_id = ? AND is_active = ? AND time >= ?", ownerID, true, since).
		Order("time DESC").
		Find(&out).Error
	return out, err
}
