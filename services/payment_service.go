package services

import (
	"context"
	"fmt"
	"time"

	"restx/entity"
	"restx/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentInput struct {
	PaymentMethodID uint            `json:"paymentMethodId" binding:"required"`
	Cost            decimal.Decimal `json:"cost"`
}

// PaymentReceipt is the recorded payment with the order's balance after it.
type PaymentReceipt struct {
	Payment     entity.Payment  `json:"payment"`
	Method      string          `json:"method"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	IsPaid      bool            `json:"isPaid"`
}

type PaymentService struct {
	DB       *gorm.DB
	Orders   *repository.OrderRepository
	Payments *repository.PaymentRepository
	Now      func() time.Time
}

func NewPaymentService(db *gorm.DB, orders *repository.OrderRepository, payments *repository.PaymentRepository) *PaymentService {
	return &PaymentService{DB: db, Orders: orders, Payments: payments, Now: time.Now}
}

func (s *PaymentService) Methods(ctx context.Context) ([]entity.PaymentMethod, error) {
	return s.Payments.ListMethods(ctx)
}

// IsPaid reports whether paid covers a positive total.
func IsPaid(total, paid decimal.Decimal) bool {
	return total.IsPositive() && paid.GreaterThanOrEqual(total)
}

// Record stores a payment against an active order of ownerID. Amounts are
// recorded as given; no gateway is involved.
func (s *PaymentService) Record(ctx context.Context, ownerID uuid.UUID, actor string, orderID uuid.UUID, in PaymentInput) (*PaymentReceipt, error) {
	if !in.Cost.IsPositive() {
		return nil, invalid("cost must be positive")
	}
	o, err := s.Orders.GetForOwner(ctx, ownerID, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if !o.IsActive {
		return nil, conflict("order is cancelled")
	}
	method, err := s.Payments.GetMethod(ctx, in.PaymentMethodID)
	if err != nil {
		return nil, notFound(err, "payment method")
	}

	p := entity.Payment{
		Audit:           entity.Audit{CreatedBy: actor},
		Cost:            in.Cost.Round(2),
		Time:            s.Now(),
		IsActive:        true,
		OrderID:         o.ID,
		PaymentMethodID: method.ID,
	}
	if err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Payments.Create(tx.Omit("Order", "PaymentMethod"), &p)
	}); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	paid, err := s.Payments.ListActiveForOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	total := summarize(*o).TotalAmount
	sum := decimal.Zero
	for _, x := range paid {
		sum = sum.Add(x.Cost)
	}
	return &PaymentReceipt{
		Payment:     p,
		Method:      method.MethodName,
		TotalAmount: total,
		TotalPaid:   sum,
		IsPaid:      IsPaid(total, sum),
	}, nil
}
