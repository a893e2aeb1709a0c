package services

import (
	"context"
	"sort"

	"restx/entity"
	"restx/repository"

	"github.com/google/uuid"
)

type HomeView struct {
	OwnerID     uuid.UUID `json:"ownerId"`
	TableID     uint      `json:"tableId"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Information string    `json:"information"`
	ImageURL    string    `json:"imageUrl"`
	TableNumber int       `json:"tableNumber"`
}

type MenuCategory struct {
	CategoryID uint          `json:"categoryId"`
	Name       string        `json:"name"`
	Dishes     []entity.Dish `json:"dishes"`
}

type MenuService struct {
	Dishes      *repository.MenuRepository
	Tables      *repository.TableRepository
	Restaurants *repository.RestaurantRepository
}

func NewMenuService(menu *repository.MenuRepository, tables *repository.TableRepository, rest *repository.RestaurantRepository) *MenuService {
	return &MenuService{Dishes: menu, Tables: tables, Restaurants: rest}
}

// Home is the landing card a customer sees after scanning a table's code.
func (s *MenuService) Home(ctx context.Context, ownerID uuid.UUID, tableID uint) (*HomeView, error) {
	o, err := s.Restaurants.GetOwner(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "restaurant")
	}
	if !o.IsActive {
		return nil, ErrNotFound
	}
	t, err := s.Tables.Get(ctx, ownerID, tableID)
	if err != nil {
		return nil, notFound(err, "table")
	}
	return &HomeView{
		OwnerID:     o.ID,
		TableID:     t.ID,
		Name:        o.Name,
		Address:     o.Address,
		Information: o.Information,
		ImageURL:    o.ImageURL,
		TableNumber: t.TableNumber,
	}, nil
}

// Menu groups the owner's dishes by category, both sorted by name. Customers
// get only available dishes; staff see everything with its flag.
func (s *MenuService) Menu(ctx context.Context, ownerID uuid.UUID, onlyActive bool) ([]MenuCategory, error) {
	dishes, err := s.Dishes.ListDishes(ctx, ownerID, onlyActive)
	if err != nil {
		return nil, err
	}

	byCat := map[uint]*MenuCategory{}
	for _, d := range dishes {
		mc, ok := byCat[d.CategoryID]
		if !ok {
			mc = &MenuCategory{CategoryID: d.CategoryID, Name: d.Category.Name}
			byCat[d.CategoryID] = mc
		}
		mc.Dishes = append(mc.Dishes, d)
	}

	out := make([]MenuCategory, 0, len(byCat))
	for _, mc := range byCat {
		out = append(out, *mc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
