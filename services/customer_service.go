package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"restx/entity"
	"restx/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PhoneLookup struct {
	Exists bool   `json:"exists"`
	Name   string `json:"name,omitempty"`
}

type CustomerInput struct {
	Name     string `json:"name" binding:"required,max=100"`
	Phone    string `json:"phone" binding:"required,phone"`
	Point    *int   `json:"point" binding:"omitempty,min=0"`
	IsActive *bool  `json:"isActive"`
}

type CustomerService struct {
	Customers   *repository.CustomerRepository
	Restaurants *repository.RestaurantRepository
	Now         func() time.Time
}

func NewCustomerService(customers *repository.CustomerRepository, rest *repository.RestaurantRepository) *CustomerService {
	return &CustomerService{Customers: customers, Restaurants: rest, Now: time.Now}
}

// LoginOrCreate finds the customer by phone within the owner, creating one
// on first visit and refreshing the name when it changed.
func (s *CustomerService) LoginOrCreate(ctx context.Context, ownerID uuid.UUID, phone, name string) (*entity.Customer, error) {
	phone = strings.TrimSpace(phone)
	name = strings.TrimSpace(name)
	if phone == "" {
		return nil, invalid("phone is required")
	}

	owner, err := s.Restaurants.GetOwner(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "restaurant")
	}
	if !owner.IsActive {
		return nil, fmt.Errorf("restaurant disabled: %w", ErrNotFound)
	}

	c, err := s.Customers.FindByPhone(ctx, ownerID, phone)
	switch {
	case err == nil:
		if !c.IsActive {
			return nil, fmt.Errorf("customer disabled: %w", ErrForbidden)
		}
		if name != "" && name != c.Name {
			c.Name = name
			c.Touch(c.ID.String(), s.Now())
			if err := s.Customers.Save(ctx, c); err != nil {
				return nil, err
			}
		}
		return c, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if name == "" {
			return nil, invalid("name is required for a new customer")
		}
		c = &entity.Customer{OwnerID: ownerID, Name: name, Phone: phone, IsActive: true}
		if err := s.Customers.Create(ctx, c); err != nil {
			// a concurrent first visit won the unique (owner, phone) index
			if existing, ferr := s.Customers.FindByPhone(ctx, ownerID, phone); ferr == nil {
				if !existing.IsActive {
					return nil, fmt.Errorf("customer disabled: %w", ErrForbidden)
				}
				return existing, nil
			}
			return nil, err
		}
		return c, nil
	default:
		return nil, err
	}
}

func (s *CustomerService) FindByPhone(ctx context.Context, ownerID uuid.UUID, phone string) (PhoneLookup, error) {
	c, err := s.Customers.FindByPhone(ctx, ownerID, strings.TrimSpace(phone))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return PhoneLookup{}, nil
	}
	if err != nil {
		return PhoneLookup{}, err
	}
	return PhoneLookup{Exists: true, Name: c.Name}, nil
}

// ----- Owner CRUD -----

func (s *CustomerService) List(ctx context.Context, ownerID uuid.UUID) ([]entity.Customer, error) {
	return s.Customers.List(ctx, ownerID)
}

func (s *CustomerService) Get(ctx context.Context, ownerID, id uuid.UUID) (*entity.Customer, error) {
	c, err := s.Customers.Get(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err, "customer")
	}
	return c, nil
}

func (s *CustomerService) ensurePhoneFree(ctx context.Context, ownerID uuid.UUID, phone string, self uuid.UUID) error {
	c, err := s.Customers.FindByPhone(ctx, ownerID, phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if c.ID != self {
		return conflict("phone already registered")
	}
	return nil
}

func (s *CustomerService) Create(ctx context.Context, ownerID uuid.UUID, actor string, in CustomerInput) (*entity.Customer, error) {
	in.Phone = strings.TrimSpace(in.Phone)
	if err := s.ensurePhoneFree(ctx, ownerID, in.Phone, uuid.Nil); err != nil {
		return nil, err
	}
	c := &entity.Customer{
		Audit:    entity.Audit{CreatedBy: actor},
		OwnerID:  ownerID,
		Name:     strings.TrimSpace(in.Name),
		Phone:    in.Phone,
		IsActive: in.IsActive == nil || *in.IsActive,
	}
	if in.Point != nil {
		c.Point = *in.Point
	}
	if err := s.Customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) Update(ctx context.Context, ownerID uuid.UUID, actor string, id uuid.UUID, in CustomerInput) (*entity.Customer, error) {
	c, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	in.Phone = strings.TrimSpace(in.Phone)
	if err := s.ensurePhoneFree(ctx, ownerID, in.Phone, id); err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Phone = in.Phone
	if in.Point != nil {
		c.Point = *in.Point
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.Touch(actor, s.Now())
	if err := s.Customers.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	n, err := s.Customers.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	return nil
}
