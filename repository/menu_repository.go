package repository

import (
	"context"
	"strings"
	"time"

	"restx/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuRepository covers dishes and categories.
type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// ===== Dishes =====

func (r *MenuRepository) ListDishes(ctx context.Context, ownerID uuid.UUID, onlyActive bool) ([]entity.Dish, error) {
	var out []entity.Dish
	q := r.DB.WithContext(ctx).Preload("Category").Where("owner_id = ?", ownerID)
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name ASC").Find(&out).Error
	return out, err
}

func (r *MenuRepository) GetDish(ctx context.Context, ownerID uuid.UUID, id uint) (*entity.Dish, error) {
	var d entity.Dish
	if err := r.DB.WithContext(ctx).Preload("Category").
		Where("id = ? AND owner_id = ?", id, ownerID).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// DishesByIDs returns the owner's dishes among ids, keyed by id.
func (r *MenuRepository) DishesByIDs(ctx context.Context, ownerID uuid.UUID, ids []uint) (map[uint]entity.Dish, error) {
	out := make(map[uint]entity.Dish, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []entity.Dish
	if err := r.DB.WithContext(ctx).
		Where("owner_id = ? AND id IN ?", ownerID, ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, d := range rows {
		out[d.ID] = d
	}
	return out, nil
}

func (r *MenuRepository) CreateDish(tx *gorm.DB, d *entity.Dish) error {
	return tx.Create(d).Error
}

func (r *MenuRepository) SaveDish(ctx context.Context, d *entity.Dish) error {
	return r.DB.WithContext(ctx).Omit("Category", "Owner").Save(d).Error
}

func (r *MenuRepository) DeleteDish(ctx context.Context, ownerID uuid.UUID, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&entity.Dish{})
	return res.RowsAffected, res.Error
}

func (r *MenuRepository) SetDishActive(ctx context.Context, ownerID uuid.UUID, id uint, active bool, by string, at time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&entity.Dish{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(map[string]any{"is_active": active, "modified_by": by, "modified_date": at})
	return res.RowsAffected, res.Error
}

// ===== Categories =====

func (r *MenuRepository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	var out []entity.Category
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *MenuRepository) GetCategory(ctx context.Context, id uint) (*entity.Category, error) {
	var c entity.Category
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CategoryNameExists compares names case-insensitively.
func (r *MenuRepository) CategoryNameExists(ctx context.Context, name string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Category{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&n).Error
	return n > 0, err
}

func (r *MenuRepository) CreateCategory(ctx context.Context, c *entity.Category) error {
	return r.DB.WithContext(ctx).Create(c).Error
}
