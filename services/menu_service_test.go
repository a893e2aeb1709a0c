package services_test

import (
	"context"
	"errors"
	"testing"

	"restx/entity"
	"restx/repository"
	"restx/services"
	"restx/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMenuService(db *gorm.DB) *services.MenuService {
	return services.NewMenuService(repository.NewMenuRepository(db), repository.NewTableRepository(db), repository.NewRestaurantRepository(db))
}

func TestMenuGroupsAvailableDishes(t *testing.T) {
	f := newOrderFixture(t)
	drinks := testutil.Category(t, f.db, "Drinks")
	testutil.Dish(t, f.db, f.owner.ID, drinks.ID, 0, "Coffee", "2.00")
	require.NoError(t, f.db.Model(&f.tea).Update("is_active", false).Error)
	other := testutil.Owner(t, f.db, "Other")
	testutil.Dish(t, f.db, other.ID, drinks.ID, 0, "Soda", "1.00")
	svc := newMenuService(f.db)

	menu, err := svc.Menu(context.Background(), f.owner.ID, true)
	require.NoError(t, err)
	require.Len(t, menu, 2)
	assert.Equal(t, drinks.ID, menu[0].CategoryID)
	require.Len(t, menu[0].Dishes, 1)
	assert.Equal(t, "Coffee", menu[0].Dishes[0].Name)
	require.Len(t, menu[1].Dishes, 1)
	assert.Equal(t, "Pho Bo", menu[1].Dishes[0].Name)

	staff, err := svc.Menu(context.Background(), f.owner.ID, false)
	require.NoError(t, err)
	require.Len(t, staff, 2)
	assert.Len(t, staff[1].Dishes, 2)
}

func TestHome(t *testing.T) {
	f := newOrderFixture(t)
	svc := newMenuService(f.db)

	home, err := svc.Home(context.Background(), f.owner.ID, f.table.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pho Corner", home.Name)
	assert.Equal(t, 5, home.TableNumber)

	other := testutil.Owner(t, f.db, "Other")
	_, err = svc.Home(context.Background(), other.ID, f.table.ID)
	assert.True(t, errors.Is(err, services.ErrNotFound))
}

func TestSetDishAvailability(t *testing.T) {
	f := newOrderFixture(t)
	svc := services.NewDishService(f.db, repository.NewMenuRepository(f.db), t.TempDir())

	require.NoError(t, svc.SetAvailability(context.Background(), f.owner.ID, "staff-1", f.pho.ID, false))
	var stored entity.Dish
	require.NoError(t, f.db.First(&stored, f.pho.ID).Error)
	assert.False(t, stored.IsActive)
	assert.Equal(t, "staff-1", stored.ModifiedBy)

	other := testutil.Owner(t, f.db, "Other")
	err := svc.SetAvailability(context.Background(), other.ID, "staff-2", f.tea.ID, false)
	assert.True(t, errors.Is(err, services.ErrNotFound))
}

func TestCreateDishValidates(t *testing.T) {
	f := newOrderFixture(t)
	svc := services.NewDishService(f.db, repository.NewMenuRepository(f.db), t.TempDir())
	ctx := context.Background()

	_, err := svc.Create(ctx, f.owner.ID, "owner", services.DishInput{Name: "Free", CategoryID: f.pho.CategoryID})
	assert.True(t, errors.Is(err, services.ErrInvalidInput))
	_, err = svc.Create(ctx, f.owner.ID, "owner", services.DishInput{Name: "Lost", Price: decimal.NewFromInt(3), CategoryID: 9999})
	assert.True(t, errors.Is(err, services.ErrNotFound))

	d, err := svc.Create(ctx, f.owner.ID, "owner", services.DishInput{Name: " Bun Cha ", Price: decimal.RequireFromString("8.499"), CategoryID: f.pho.CategoryID})
	require.NoError(t, err)
	assert.Equal(t, "Bun Cha", d.Name)
	assert.True(t, decimal.RequireFromString("8.5").Equal(d.Price))
	assert.True(t, d.IsActive)
	assert.NotEmpty(t, d.Category.Name)
}
