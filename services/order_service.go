package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restx/entity"
	"restx/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type StatusIDs struct {
	New       uint
	Preparing uint
	Served    uint
	Completed uint
	Cancelled uint
}

func (s StatusIDs) byName(name string) uint {
	switch name {
	case entity.OrderStatusNew:
		return s.New
	case entity.OrderStatusPreparing:
		return s.Preparing
	case entity.OrderStatusServed:
		return s.Served
	case entity.OrderStatusCompleted:
		return s.Completed
	case entity.OrderStatusCancelled:
		return s.Cancelled
	}
	return 0
}

type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	Menu      *repository.MenuRepository
	Tables    *repository.TableRepository
	Customers *repository.CustomerRepository
	Log       logrus.FieldLogger

	Status StatusIDs
	Now    func() time.Time
}

// NewOrderService resolves the order status ids once; lookups must be seeded.
func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	menu *repository.MenuRepository,
	tables *repository.TableRepository,
	customers *repository.CustomerRepository,
	log logrus.FieldLogger,
) *OrderService {
	s := &OrderService{DB: db, Repo: repo, Menu: menu, Tables: tables, Customers: customers, Log: log, Now: time.Now}

	ctx := context.Background()
	for name, dst := range map[string]*uint{
		entity.OrderStatusNew:       &s.Status.New,
		entity.OrderStatusPreparing: &s.Status.Preparing,
		entity.OrderStatusServed:    &s.Status.Served,
		entity.OrderStatusCompleted: &s.Status.Completed,
		entity.OrderStatusCancelled: &s.Status.Cancelled,
	} {
		if id, err := repo.GetStatusIDByName(ctx, name); err == nil {
			*dst = id
		} else {
			log.WithError(err).WithField("status", name).Warn("order status not seeded")
		}
	}
	return s
}

type pricedLine struct {
	DishID   uint
	Quantity int
	Price    decimal.Decimal
}

// ----- Create -----

// CreateOrder places the cart as one order for customerID. The order row and
// all of its lines are written in one transaction: a failed line leaves
// nothing behind.
func (s *OrderService) CreateOrder(ctx context.Context, customerID uuid.UUID, cart Cart) Result[uuid.UUID] {
	if customerID == uuid.Nil {
		return Failure[uuid.UUID](ErrUnauthenticated, "Please log in before placing an order.")
	}

	lines, err := cart.Lines()
	if err != nil {
		return Failure[uuid.UUID](err, "Your cart could not be read.")
	}
	if len(lines) == 0 {
		return Failure[uuid.UUID](invalid("empty cart"), "Your cart is empty.")
	}

	customer, err := s.Customers.Get(ctx, cart.OwnerID, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Failure[uuid.UUID](fmt.Errorf("customer of another restaurant: %w", ErrUnauthenticated), "Please log in before placing an order.")
		}
		return s.fail(err, "load customer")
	}
	if !customer.IsActive {
		return Failure[uuid.UUID](fmt.Errorf("customer disabled: %w", ErrForbidden), "Your account is disabled.")
	}

	table, err := s.Tables.Get(ctx, cart.OwnerID, cart.TableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Failure[uuid.UUID](notFound(err, "table"), "This table does not exist.")
		}
		return s.fail(err, "load table")
	}
	if !table.IsActive {
		return Failure[uuid.UUID](invalid("table inactive"), "This table is not taking orders.")
	}

	priced, err := s.priceLines(ctx, cart.OwnerID, lines)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return Failure[uuid.UUID](err, "Some dishes in your cart are no longer available.")
		}
		return s.fail(err, "price cart")
	}

	actor := customerID.String()
	var orderID uuid.UUID
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			Audit:         entity.Audit{CreatedBy: actor},
			Time:          s.Now(),
			IsActive:      true,
			CustomerID:    customerID,
			TableID:       table.ID,
			OwnerID:       cart.OwnerID,
			OrderStatusID: s.Status.New,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		res := s.createOrderDetails(tx, order.ID, priced, actor)
		if !res.IsSuccess() {
			return res.Err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return s.fail(err, "create order")
	}

	s.Log.WithFields(logrus.Fields{
		"order_id": orderID,
		"owner_id": cart.OwnerID,
		"table_id": table.ID,
		"lines":    len(priced),
	}).Info("order placed")
	return Success(orderID, "Your order has been placed.")
}

// createOrderDetails writes one line per cart entry under orderID.
func (s *OrderService) createOrderDetails(tx *gorm.DB, orderID uuid.UUID, lines []pricedLine, actor string) Result[[]uuid.UUID] {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		d := entity.OrderDetail{
			Audit:    entity.Audit{CreatedBy: actor},
			Quantity: l.Quantity,
			Price:    l.Price,
			IsActive: true,
			OrderID:  orderID,
			DishID:   l.DishID,
		}
		if err := s.Repo.CreateOrderDetail(tx, &d); err != nil {
			return Failure[[]uuid.UUID](fmt.Errorf("order line for dish %d: %w", l.DishID, err), "Could not save order lines.")
		}
		ids = append(ids, d.ID)
	}
	return Success(ids, "Order lines saved.")
}

// priceLines checks every line against the owner's available dishes and
// takes the price from the dish record.
func (s *OrderService) priceLines(ctx context.Context, ownerID uuid.UUID, lines []CartLine) ([]pricedLine, error) {
	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, invalid(fmt.Sprintf("quantity for dish %d must be positive", l.DishID))
		}
		ids = append(ids, l.DishID)
	}
	dishes, err := s.Menu.DishesByIDs(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}
	out := make([]pricedLine, 0, len(lines))
	for _, l := range lines {
		d, ok := dishes[l.DishID]
		if !ok || !d.IsActive {
			return nil, invalid(fmt.Sprintf("dish %d is not available", l.DishID))
		}
		out = append(out, pricedLine{DishID: d.ID, Quantity: l.Quantity, Price: d.Price})
	}
	return out, nil
}

func (s *OrderService) fail(err error, op string) Result[uuid.UUID] {
	s.Log.WithError(err).WithField("op", op).Error("order creation failed")
	return Failure[uuid.UUID](err, "We could not place your order. Please try again.")
}

// ----- Read -----

// CustomerRequests lists the owner's open orders: active and neither
// completed nor cancelled.
func (s *OrderService) CustomerRequests(ctx context.Context, ownerID uuid.UUID) ([]OrderSummary, error) {
	orders, err := s.Repo.ListOpenForOwner(ctx, ownerID, s.closedStatuses())
	if err != nil {
		return nil, err
	}
	return summarizeAll(orders), nil
}

// History lists a customer's active orders at one owner, newest first.
func (s *OrderService) History(ctx context.Context, ownerID, customerID uuid.UUID) ([]OrderSummary, error) {
	if customerID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	orders, err := s.Repo.ListForCustomer(ctx, ownerID, customerID)
	if err != nil {
		return nil, err
	}
	active := orders[:0]
	for _, o := range orders {
		if o.IsActive {
			active = append(active, o)
		}
	}
	return summarizeAll(active), nil
}

func (s *OrderService) Get(ctx context.Context, ownerID, orderID uuid.UUID) (*OrderSummary, error) {
	o, err := s.Repo.GetForOwner(ctx, ownerID, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	out := summarize(*o)
	return &out, nil
}

func (s *OrderService) closedStatuses() []uint {
	out := make([]uint, 0, 2)
	for _, id := range []uint{s.Status.Completed, s.Status.Cancelled} {
		if id != 0 {
			out = append(out, id)
		}
	}
	return out
}
