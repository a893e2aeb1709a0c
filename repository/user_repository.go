package repository

import (
	"context"

	"restx/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository talks to the accounts and staff tables.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// ===== Accounts =====

func (r *UserRepository) FindAccountByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var a entity.Account
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *UserRepository) GetAccount(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var a entity.Account
	if err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *UserRepository) CountByUsername(ctx context.Context, username string, exceptID uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Account{}).
		Where("username = ? AND id <> ?", username, exceptID).
		Count(&n).Error
	return n, err
}

func (r *UserRepository) CreateAccount(tx *gorm.DB, a *entity.Account) error {
	return tx.Create(a).Error
}

func (r *UserRepository) SaveAccount(tx *gorm.DB, a *entity.Account) error {
	return tx.Omit("Owner", "Staff").Save(a).Error
}

func (r *UserRepository) AccountForStaff(ctx context.Context, staffID uuid.UUID) (*entity.Account, error) {
	var a entity.Account
	if err := r.DB.WithContext(ctx).Where("staff_id = ?", staffID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// ===== Staff =====

func (r *UserRepository) ListStaff(ctx context.Context, ownerID uuid.UUID) ([]entity.Staff, error) {
	var out []entity.Staff
	err := r.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *UserRepository) GetStaff(ctx context.Context, ownerID, id uuid.UUID) (*entity.Staff, error) {
	var s entity.Staff
	if err := r.DB.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *UserRepository) CountStaffByEmail(ctx context.Context, email string, exceptID uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Staff{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&n).Error
	return n, err
}

func (r *UserRepository) CreateStaff(tx *gorm.DB, s *entity.Staff) error {
	return tx.Create(s).Error
}

func (r *UserRepository) SaveStaff(tx *gorm.DB, s *entity.Staff) error {
	return tx.Omit("Owner", "Accounts").Save(s).Error
}

// DeleteStaff soft-deletes the staff row and its login.
func (r *UserRepository) DeleteStaff(tx *gorm.DB, ownerID, id uuid.UUID) (int64, error) {
	res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&entity.Staff{})
	if res.Error != nil || res.RowsAffected == 0 {
		return res.RowsAffected, res.Error
	}
	if err := tx.Where("staff_id = ?", id).Delete(&entity.Account{}).Error; err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}
