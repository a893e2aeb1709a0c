package services

import (
	"context"
	"strings"

	"restx/entity"
	"restx/repository"
)

type CategoryService struct {
	Menu *repository.MenuRepository
}

func NewCategoryService(menu *repository.MenuRepository) *CategoryService {
	return &CategoryService{Menu: menu}
}

func (s *CategoryService) List(ctx context.Context) ([]entity.Category, error) {
	return s.Menu.ListCategories(ctx)
}

// Create rejects a name that already exists in any letter case.
func (s *CategoryService) Create(ctx context.Context, actor, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	exists, err := s.Menu.CategoryNameExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, conflict("category already exists")
	}
	c := &entity.Category{Audit: entity.Audit{CreatedBy: actor}, Name: name}
	if err := s.Menu.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
