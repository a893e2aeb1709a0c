package services

import (
	"context"
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

type OwnerProfileInput struct {
	Name            string `json:"name" binding:"required,max=100"`
	Address         string `json:"address" binding:"required,max=255"`
	Information     string `json:"information" binding:"max=500"`
	ImageBase64     string `json:"imageBase64"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" binding:"omitempty,min=6"`
}

type OwnerService struct {
	DB          *gorm.DB
	Restaurants *repository.RestaurantRepository
	Users       *repository.UserRepository
	UploadDir   string
	Now         func() time.Time
}

func NewOwnerService(db *gorm.DB, rest *repository.RestaurantRepository, users *repository.UserRepository, uploadDir string) *OwnerService {
	return &OwnerService{DB: db, Restaurants: rest, Users: users, UploadDir: uploadDir, Now: time.Now}
}

func (s *OwnerService) Profile(ctx context.Context, ownerID uuid.UUID) (*entity.Owner, error) {
	o, err := s.Restaurants.GetOwner(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "restaurant")
	}
	return o, nil
}

// UpdateProfile saves the restaurant card and, when NewPassword is set,
// changes the owner's password after checking the current one.
func (s *OwnerService) UpdateProfile(ctx context.Context, ownerID, accountID uuid.UUID, actor string, in OwnerProfileInput) (*entity.Owner, error) {
	o, err := s.Profile(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var acc *entity.Account
	if in.NewPassword != "" {
		if acc, err = s.Users.GetAccount(ctx, accountID); err != nil {
			return nil, notFound(err, "account")
		}
		if acc.OwnerID == nil || *acc.OwnerID != ownerID {
			return nil, ErrForbidden
		}
		if bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(in.CurrentPassword)) != nil {
			return nil, invalid("current password is incorrect")
		}
		if acc.Password, err = hashPassword(in.NewPassword); err != nil {
			return nil, err
		}
	}

	now := s.Now()
	o.Name = strings.TrimSpace(in.Name)
	o.Address = strings.TrimSpace(in.Address)
	o.Information = strings.TrimSpace(in.Information)
	if in.ImageBase64 != "" {
		if o.ImageURL, err = utils.SaveBase64Image(in.ImageBase64, s.UploadDir, "owners"); err != nil {
			return nil, invalid(err.Error())
		}
	}
	o.Touch(actor, now)

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Restaurants.SaveOwner(tx, o); err != nil {
			return err
		}
		if acc != nil {
			acc.Touch(actor, now)
			if err := s.Users.SaveAccount(tx, acc); err != nil {
				return fmt.Errorf("save password: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}
