package repository

import (
	"context"
	"time"

	"restx/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RestaurantRepository reads and writes the owner row and its inventory.
type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) GetOwner(ctx context.Context, id uuid.UUID) (*entity.Owner, error) {
	var o entity.Owner
	if err := r.DB.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *RestaurantRepository) SaveOwner(tx *gorm.DB, o *entity.Owner) error {
	return tx.Omit("Accounts", "Staff", "Customers", "Tables", "Dishes", "Orders").Save(o).Error
}

// ImportsSince returns ingredient imports of the owner from since onwards.
func (r *RestaurantRepository) ImportsSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]entity.IngredientImport, error) {
	var out []entity.IngredientImport
	err := r.DB.WithContext(ctx).
		Joins("JOIN ingredients ON ingredients.id = ingredient_imports.ingredient_id").
		Where("ingredients.owner_id = ? AND ingredient_imports.time >= ?", ownerID, since).
		Order("ingredient_imports.time ASC").
		Find(&out).Error
	return out, err
}
