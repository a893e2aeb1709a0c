package services

import (
	"time"

	"restx/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderLineView struct {
	ID       uuid.UUID       `json:"id"`
	DishID   uint            `json:"dishId"`
	DishName string          `json:"dishName"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	IsActive bool            `json:"isActive"`
	SubTotal decimal.Decimal `json:"subTotal"`
}

// OrderSummary is the payload of the staff request list and of the
// ReceiveOrderList broadcast.
type OrderSummary struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	TableID       uint            `json:"tableId"`
	TableNumber   int             `json:"tableNumber"`
	OrderStatus   string          `json:"orderStatus"`
	OrderTime     time.Time       `json:"orderTime"`
	IsActive      bool            `json:"isActive"`
	OrderDetails  []OrderLineView `json:"orderDetails"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// summarize keeps only active lines; TotalAmount is their Σ quantity×price.
func summarize(o entity.Order) OrderSummary {
	out := OrderSummary{
		ID:            o.ID,
		CustomerName:  o.Customer.Name,
		CustomerPhone: o.Customer.Phone,
		TableID:       o.TableID,
		TableNumber:   o.Table.TableNumber,
		OrderStatus:   o.OrderStatus.StatusName,
		OrderTime:     o.Time,
		IsActive:      o.IsActive,
		OrderDetails:  make([]OrderLineView, 0, len(o.OrderDetails)),
		TotalAmount:   decimal.Zero,
	}
	if out.CustomerName == "" {
		out.CustomerName = "Unknown"
	}
	if out.CustomerPhone == "" {
		out.CustomerPhone = "N/A"
	}
	for _, d := range o.OrderDetails {
		if !d.IsActive {
			continue
		}
		sub := d.SubTotal()
		out.OrderDetails = append(out.OrderDetails, OrderLineView{
			ID:       d.ID,
			DishID:   d.DishID,
			DishName: d.Dish.Name,
			Quantity: d.Quantity,
			Price:    d.Price,
			IsActive: d.IsActive,
			SubTotal: sub,
		})
		out.TotalAmount = out.TotalAmount.Add(sub)
	}
	return out
}

func summarizeAll(orders []entity.Order) []OrderSummary {
	out := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, summarize(o))
	}
	return out
}
