package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restx/entity"
	"restx/repository"
	"restx/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DishInput struct {
	Name        string          `json:"name" binding:"required,max=150"`
	Description string          `json:"description" binding:"max=1000"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uint            `json:"categoryId" binding:"required"`
	IsActive    *bool           `json:"isActive"`
	ImageBase64 string          `json:"imageBase64"`
}

type DishService struct {
	DB        *gorm.DB
	Menu      *repository.MenuRepository
	UploadDir string
	Now       func() time.Time
}

func NewDishService(db *gorm.DB, menu *repository.MenuRepository, uploadDir string) *DishService {
	return &DishService{DB: db, Menu: menu, UploadDir: uploadDir, Now: time.Now}
}

func (s *DishService) List(ctx context.Context, ownerID uuid.UUID) ([]entity.Dish, error) {
	return s.Menu.ListDishes(ctx, ownerID, false)
}

func (s *DishService) Get(ctx context.Context, ownerID uuid.UUID, id uint) (*entity.Dish, error) {
	d, err := s.Menu.GetDish(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err, "dish")
	}
	return d, nil
}

func (s *DishService) validate(ctx context.Context, in *DishInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return invalid("name is required")
	}
	if in.Price.IsNegative() || in.Price.IsZero() {
		return invalid("price must be positive")
	}
	if _, err := s.Menu.GetCategory(ctx, in.CategoryID); err != nil {
		return notFound(err, "category")
	}
	return nil
}

func (s *DishService) Create(ctx context.Context, ownerID uuid.UUID, actor string, in DishInput) (*entity.Dish, error) {
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}
	d := &entity.Dish{
		Audit:       entity.Audit{CreatedBy: actor},
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price.Round(2),
		IsActive:    in.IsActive == nil || *in.IsActive,
		CategoryID:  in.CategoryID,
	}
	if in.ImageBase64 != "" {
		url, err := utils.SaveBase64Image(in.ImageBase64, s.UploadDir, "dishes")
		if err != nil {
			return nil, invalid(err.Error())
		}
		d.ImageURL = url
	}
	if err := s.Menu.CreateDish(s.DB.WithContext(ctx).Omit("Category", "Owner"), d); err != nil {
		return nil, err
	}
	return s.Get(ctx, ownerID, d.ID)
}

func (s *DishService) Update(ctx context.Context, ownerID uuid.UUID, actor string, id uint, in DishInput) (*entity.Dish, error) {
	d, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}
	d.Name = in.Name
	d.Description = strings.TrimSpace(in.Description)
	d.Price = in.Price.Round(2)
	d.CategoryID = in.CategoryID
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}
	if in.ImageBase64 != "" {
		url, err := utils.SaveBase64Image(in.ImageBase64, s.UploadDir, "dishes")
		if err != nil {
			return nil, invalid(err.Error())
		}
		d.ImageURL = url
	}
	d.Touch(actor, s.Now())
	if err := s.Menu.SaveDish(ctx, d); err != nil {
		return nil, err
	}
	return s.Get(ctx, ownerID, id)
}

func (s *DishService) Delete(ctx context.Context, ownerID uuid.UUID, id uint) error {
	n, err := s.Menu.DeleteDish(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("dish %d: %w", id, ErrNotFound)
	}
	return nil
}

// SetAvailability is the staff toggle between available and sold out.
func (s *DishService) SetAvailability(ctx context.Context, ownerID uuid.UUID, actor string, id uint, active bool) error {
	n, err := s.Menu.SetDishActive(ctx, ownerID, id, active, actor, s.Now())
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("dish %d: %w", id, ErrNotFound)
	}
	return nil
}
