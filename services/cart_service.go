package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"restx/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one dish in a cart. Price is informational; checkout reprices
// every line from the dish record.
type CartLine struct {
	DishID   uint            `json:"dishId"`
	DishName string          `json:"dishName"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imgUrl,omitempty"`
}

// Cart is never stored. It travels between browser and server as JSON, or as
// base64url-wrapped JSON in a query string after checkout redirects.
type Cart struct {
	OwnerID      uuid.UUID  `json:"ownerId"`
	TableID      uint       `json:"tableId"`
	DishListJSON string     `json:"dishListJson,omitempty"`
	DishList     []CartLine `json:"dishList"`
	OrderID      *uuid.UUID `json:"orderId,omitempty"`
	Message      string     `json:"message,omitempty"`
	Time         *time.Time `json:"time,omitempty"`
}

// Lines returns DishList, falling back to the DishListJSON text form.
func (c *Cart) Lines() ([]CartLine, error) {
	if len(c.DishList) > 0 || strings.TrimSpace(c.DishListJSON) == "" {
		return c.DishList, nil
	}
	var lines []CartLine
	if err := json.Unmarshal([]byte(c.DishListJSON), &lines); err != nil {
		return nil, invalid("dish list is not valid JSON")
	}
	return lines, nil
}

// Total is Σ quantity×price over the lines as they stand.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.DishList {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func EncodeCart(c Cart) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodeCart accepts the base64url form, padded or not, and raw JSON.
func DecodeCart(s string) (*Cart, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, invalid("empty cart")
	}
	raw := []byte(s)
	if !strings.HasPrefix(s, "{") {
		b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
		if err != nil {
			return nil, invalid("cart is not valid base64url")
		}
		raw = b
	}
	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, invalid("cart is not valid JSON")
	}
	lines, err := c.Lines()
	if err != nil {
		return nil, err
	}
	c.DishList = lines
	c.DishListJSON = ""
	return &c, nil
}

type CartService struct {
	Menu *repository.MenuRepository
}

func NewCartService(menu *repository.MenuRepository) *CartService {
	return &CartService{Menu: menu}
}

// View decodes an encoded cart for the given restaurant and refreshes names,
// images and prices from the current dishes. Lines whose dish is gone or
// unavailable are dropped.
func (s *CartService) View(ctx context.Context, ownerID uuid.UUID, tableID uint, encoded string) (*Cart, error) {
	c, err := DecodeCart(encoded)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != ownerID || (c.TableID != 0 && c.TableID != tableID) {
		return nil, fmt.Errorf("cart belongs to another table: %w", ErrForbidden)
	}
	c.TableID = tableID

	ids := make([]uint, 0, len(c.DishList))
	for _, l := range c.DishList {
		ids = append(ids, l.DishID)
	}
	dishes, err := s.Menu.DishesByIDs(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}
	kept := c.DishList[:0]
	for _, l := range c.DishList {
		d, ok := dishes[l.DishID]
		if !ok || !d.IsActive || l.Quantity <= 0 {
			continue
		}
		l.DishName = d.Name
		l.Price = d.Price
		l.ImageURL = d.ImageURL
		kept = append(kept, l)
	}
	c.DishList = kept
	return c, nil
}
