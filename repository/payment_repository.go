package repository

import (
	"context"

	"restx/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

// ListActiveForOrder returns the payments still counted toward the order.
func (r *PaymentRepository) ListActiveForOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	err := r.DB.WithContext(ctx).Preload("PaymentMethod").
		Where("order_id = ? AND is_active = ?", orderID, true).
		Order("time ASC").
		Find(&out).Error
	return out, err
}

func (r *PaymentRepository) GetMethod(ctx context.Context, id uint) (*entity.PaymentMethod, error) {
	var m entity.PaymentMethod
	if err := r.DB.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PaymentRepository) ListMethods(ctx context.Context) ([]entity.PaymentMethod, error) {
	var out []entity.PaymentMethod
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}
