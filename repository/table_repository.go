package repository

import (
	"context"

	"restx/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) List(ctx context.Context, ownerID uuid.UUID) ([]entity.Table, error) {
	var out []entity.Table
	err := r.DB.WithContext(ctx).Preload("TableStatus").
		Where("owner_id = ?", ownerID).
		Order("table_number ASC").
		Find(&out).Error
	return out, err
}

// Get only finds the table when it belongs to ownerID.
func (r *TableRepository) Get(ctx context.Context, ownerID uuid.UUID, id uint) (*entity.Table, error) {
	var t entity.Table
	if err := r.DB.WithContext(ctx).Preload("TableStatus").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) CountByNumber(ctx context.Context, ownerID uuid.UUID, number int, exceptID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Table{}).
		Where("owner_id = ? AND table_number = ? AND id <> ?", ownerID, number, exceptID).
		Count(&n).Error
	return n, err
}

func (r *TableRepository) Create(tx *gorm.DB, t *entity.Table) error {
	return tx.Omit("TableStatus", "Owner").Create(t).Error
}

func (r *TableRepository) Save(tx *gorm.DB, t *entity.Table) error {
	return tx.Omit("TableStatus", "Owner").Save(t).Error
}

func (r *TableRepository) UpdateStatus(ctx context.Context, t *entity.Table) error {
	return r.DB.WithContext(ctx).Model(&entity.Table{}).
		Where("id = ? AND owner_id = ?", t.ID, t.OwnerID).
		Updates(map[string]any{
			"table_status_id": t.TableStatusID,
			"modified_by":     t.ModifiedBy,
			"modified_date":   t.ModifiedDate,
		}).Error
}

func (r *TableRepository) Delete(ctx context.Context, ownerID uuid.UUID, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&entity.Table{})
	return res.RowsAffected, res.Error
}

// ===== Table statuses =====

func (r *TableRepository) ListStatuses(ctx context.Context) ([]entity.TableStatus, error) {
	var out []entity.TableStatus
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *TableRepository) GetStatus(ctx context.Context, id uint) (*entity.TableStatus, error) {
	var s entity.TableStatus
	if err := r.DB.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *TableRepository) GetStatusIDByName(ctx context.Context, name string) (uint, error) {
	var s entity.TableStatus
	if err := r.DB.WithContext(ctx).Select("id").Where("name = ?", name).First(&s).Error; err != nil {
		return 0, err
	}
	return s.ID, nil
}
