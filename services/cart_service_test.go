package services_test

import (
	"context"
	"errors"
	"testing"

	"restx/repository"
	"restx/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSurvivesEncoding(t *testing.T) {
	orderID := uuid.New()
	in := services.Cart{
		OwnerID: uuid.New(),
		TableID: 5,
		DishList: []services.CartLine{
			{DishID: 3, DishName: "Pho Bo", Quantity: 2, Price: decimal.RequireFromString("10.00")},
			{DishID: 7, DishName: "Iced Tea", Quantity: 1, Price: decimal.RequireFromString("5.50"), ImageURL: "/uploads/dishes/tea.png"},
		},
		OrderID: &orderID,
		Message: "Your order has been placed.",
	}

	encoded, err := services.EncodeCart(in)
	require.NoError(t, err)
	assert.NotContains(t, encoded, "+")
	assert.NotContains(t, encoded, "/")

	out, err := services.DecodeCart(encoded)
	require.NoError(t, err)
	assert.Equal(t, in.OwnerID, out.OwnerID)
	assert.Equal(t, in.TableID, out.TableID)
	require.NotNil(t, out.OrderID)
	assert.Equal(t, orderID, *out.OrderID)
	require.Len(t, out.DishList, 2)
	assert.Equal(t, "Iced Tea", out.DishList[1].DishName)
	assert.True(t, in.Total().Equal(out.Total()))
}

func TestDecodeCartReadsDishListJSON(t *testing.T) {
	owner := uuid.New()
	raw := `{"ownerId":"` + owner.String() + `","tableId":2,"dishListJson":"[{\"dishId\":1,\"quantity\":3,\"price\":\"2.5\"}]"}`

	c, err := services.DecodeCart(raw)
	require.NoError(t, err)
	require.Len(t, c.DishList, 1)
	assert.Equal(t, 3, c.DishList[0].Quantity)
	assert.True(t, decimal.RequireFromString("7.5").Equal(c.Total()))
}

func TestDecodeCartRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "%%%", "{not json", `{"dishListJson":"nope"}`} {
		_, err := services.DecodeCart(in)
		assert.True(t, errors.Is(err, services.ErrInvalidInput), "input %q: %v", in, err)
	}
}

func TestCartViewRepricesAndDropsUnavailableDishes(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.db.Model(&f.tea).Update("is_active", false).Error)
	svc := services.NewCartService(repository.NewMenuRepository(f.db))

	encoded, err := services.EncodeCart(services.Cart{OwnerID: f.owner.ID, TableID: f.table.ID, DishList: []services.CartLine{
		{DishID: f.pho.ID, Quantity: 2, Price: decimal.NewFromInt(1)},
		{DishID: f.tea.ID, Quantity: 1},
	}})
	require.NoError(t, err)

	c, err := svc.View(context.Background(), f.owner.ID, f.table.ID, encoded)
	require.NoError(t, err)
	require.Len(t, c.DishList, 1)
	assert.Equal(t, "Pho Bo", c.DishList[0].DishName)
	assert.True(t, decimal.NewFromInt(20).Equal(c.Total()))
}

func TestCartViewRejectsCartOfAnotherRestaurant(t *testing.T) {
	f := newOrderFixture(t)
	svc := services.NewCartService(repository.NewMenuRepository(f.db))
	encoded, err := services.EncodeCart(services.Cart{OwnerID: uuid.New(), TableID: f.table.ID})
	require.NoError(t, err)

	_, err = svc.View(context.Background(), f.owner.ID, f.table.ID, encoded)
	assert.True(t, errors.Is(err, services.ErrForbidden))
}
