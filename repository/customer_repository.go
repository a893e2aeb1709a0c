package repository

import (
	"context"

	"restx/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	DB *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) FindByPhone(ctx context.Context, ownerID uuid.UUID, phone string) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.DB.WithContext(ctx).
		Where("owner_id = ? AND phone = ?", ownerID, phone).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.DB.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) List(ctx context.Context, ownerID uuid.UUID) ([]entity.Customer, error) {
	var out []entity.Customer
	err := r.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *CustomerRepository) Create(ctx context.Context, c *entity.Customer) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *CustomerRepository) Save(ctx context.Context, c *entity.Customer) error {
	return r.DB.WithContext(ctx).Omit("Owner", "Orders").Save(c).Error
}

func (r *CustomerRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&entity.Customer{})
	return res.RowsAffected, res.Error
}
