package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"restx/entity"
	"restx/repository"
	"restx/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthenticated)

// AuthService issues tokens for owners, staff and customers.
type AuthService struct {
	users     *repository.UserRepository
	rest      *repository.RestaurantRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(users *repository.UserRepository, rest *repository.RestaurantRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, rest: rest, jwtSecret: secret, jwtTTL: ttl}
}

func (s *AuthService) TTL() time.Duration { return s.jwtTTL }

// Login checks a staff or owner username/password and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *utils.Claims, error) {
	username = strings.TrimSpace(username)
	acc, err := s.users.FindAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(password)); err != nil {
		return "", nil, errInvalidCredentials
	}
	if acc.OwnerID == nil {
		return "", nil, fmt.Errorf("account without restaurant: %w", ErrForbidden)
	}

	owner, err := s.rest.GetOwner(ctx, *acc.OwnerID)
	if err != nil {
		return "", nil, notFound(err, "restaurant")
	}
	if !owner.IsActive {
		return "", nil, fmt.Errorf("restaurant disabled: %w", ErrForbidden)
	}

	claims := utils.Claims{AccountID: acc.ID, Role: acc.Role, OwnerID: owner.ID, Name: owner.Name}
	if acc.Role == entity.RoleStaff {
		if acc.StaffID == nil {
			return "", nil, fmt.Errorf("staff account without staff: %w", ErrForbidden)
		}
		st, err := s.users.GetStaff(ctx, owner.ID, *acc.StaffID)
		if err != nil {
			return "", nil, notFound(err, "staff")
		}
		if !st.IsActive {
			return "", nil, fmt.Errorf("staff disabled: %w", ErrForbidden)
		}
		claims.StaffID = st.ID
		claims.Name = st.Name
		claims.Phone = st.Phone
	}

	token, err := utils.GenerateToken(claims, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}
	return token, &claims, nil
}

// CustomerToken issues a token for a customer of one restaurant.
func (s *AuthService) CustomerToken(c *entity.Customer) (string, *utils.Claims, error) {
	claims := utils.Claims{
		Role:       entity.RoleCustomer,
		OwnerID:    c.OwnerID,
		CustomerID: c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
	}
	token, err := utils.GenerateToken(claims, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}
	return token, &claims, nil
}

func hashPassword(pw string) (string, error) {
	if len(pw) < 6 {
		return "", invalid("password must be at least 6 characters")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.New("hash password failed")
	}
	return string(h), nil
}

// nilIfZero keeps uuid.Nil out of optional foreign keys.
func nilIfZero(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
