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
	"gorm.io/gorm"
)

// StaffView is a staff member with the username they log in with.
type StaffView struct {
	entity.Staff
	Username string `json:"username"`
}

type StaffInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"omitempty,phone"`
	Username    string `json:"username" binding:"omitempty,min=3,max=50"`
	Password    string `json:"password" binding:"omitempty,min=6"`
	ImageBase64 string `json:"imageBase64"`
	IsActive    *bool  `json:"isActive"`
}

type StaffService struct {
	DB        *gorm.DB
	Users     *repository.UserRepository
	UploadDir string
	Now       func() time.Time
}

func NewStaffService(db *gorm.DB, users *repository.UserRepository, uploadDir string) *StaffService {
	return &StaffService{DB: db, Users: users, UploadDir: uploadDir, Now: time.Now}
}

func (s *StaffService) view(ctx context.Context, st *entity.Staff) (*StaffView, error) {
	v := &StaffView{Staff: *st}
	acc, err := s.Users.AccountForStaff(ctx, st.ID)
	if err == nil {
		v.Username = acc.Username
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return v, nil
}

func (s *StaffService) List(ctx context.Context, ownerID uuid.UUID) ([]StaffView, error) {
	staff, err := s.Users.ListStaff(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]StaffView, 0, len(staff))
	for i := range staff {
		v, err := s.view(ctx, &staff[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// Get doubles as the staff profile: a staff member only reaches their own id.
func (s *StaffService) Get(ctx context.Context, ownerID, id uuid.UUID) (*StaffView, error) {
	st, err := s.Users.GetStaff(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err, "staff")
	}
	return s.view(ctx, st)
}

func (s *StaffService) checkUnique(ctx context.Context, email, username string, staffID, accountID uuid.UUID) error {
	n, err := s.Users.CountStaffByEmail(ctx, email, staffID)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflict("email already in use")
	}
	if username == "" {
		return nil
	}
	if n, err = s.Users.CountByUsername(ctx, username, accountID); err != nil {
		return err
	}
	if n > 0 {
		return conflict("username already in use")
	}
	return nil
}

// Create adds a staff member and their login account together.
func (s *StaffService) Create(ctx context.Context, ownerID uuid.UUID, actor string, in StaffInput) (*StaffView, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, invalid("username and password are required")
	}
	if err := s.checkUnique(ctx, in.Email, in.Username, uuid.Nil, uuid.Nil); err != nil {
		return nil, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	st := &entity.Staff{
		Audit:    entity.Audit{CreatedBy: actor},
		OwnerID:  ownerID,
		Name:     strings.TrimSpace(in.Name),
		Email:    in.Email,
		Phone:    strings.TrimSpace(in.Phone),
		IsActive: in.IsActive == nil || *in.IsActive,
	}
	if in.ImageBase64 != "" {
		if st.ImageURL, err = utils.SaveBase64Image(in.ImageBase64, s.UploadDir, "staff"); err != nil {
			return nil, invalid(err.Error())
		}
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Users.CreateStaff(tx, st); err != nil {
			return err
		}
		acc := &entity.Account{
			Audit:    entity.Audit{CreatedBy: actor},
			Username: in.Username,
			Password: hash,
			Role:     entity.RoleStaff,
			OwnerID:  nilIfZero(ownerID),
			StaffID:  nilIfZero(st.ID),
		}
		return s.Users.CreateAccount(tx, acc)
	})
	if err != nil {
		return nil, err
	}
	return &StaffView{Staff: *st, Username: in.Username}, nil
}

func (s *StaffService) Update(ctx context.Context, ownerID uuid.UUID, actor string, id uuid.UUID, in StaffInput) (*StaffView, error) {
	st, err := s.Users.GetStaff(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err, "staff")
	}
	acc, err := s.Users.AccountForStaff(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	accountID := uuid.Nil
	if acc != nil {
		accountID = acc.ID
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	if err := s.checkUnique(ctx, in.Email, in.Username, id, accountID); err != nil {
		return nil, err
	}

	now := s.Now()
	st.Name = strings.TrimSpace(in.Name)
	st.Email = in.Email
	st.Phone = strings.TrimSpace(in.Phone)
	if in.IsActive != nil {
		st.IsActive = *in.IsActive
	}
	if in.ImageBase64 != "" {
		if st.ImageURL, err = utils.SaveBase64Image(in.ImageBase64, s.UploadDir, "staff"); err != nil {
			return nil, invalid(err.Error())
		}
	}
	st.Touch(actor, now)

	var hash string
	if in.Password != "" {
		if hash, err = hashPassword(in.Password); err != nil {
			return nil, err
		}
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Users.SaveStaff(tx, st); err != nil {
			return err
		}
		switch {
		case acc != nil:
			if in.Username != "" {
				acc.Username = in.Username
			}
			if hash != "" {
				acc.Password = hash
			}
			acc.Touch(actor, now)
			return s.Users.SaveAccount(tx, acc)
		case in.Username != "" && hash != "":
			return s.Users.CreateAccount(tx, &entity.Account{
				Audit:    entity.Audit{CreatedBy: actor},
				Username: in.Username,
				Password: hash,
				Role:     entity.RoleStaff,
				OwnerID:  nilIfZero(ownerID),
				StaffID:  nilIfZero(st.ID),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, ownerID, id)
}

func (s *StaffService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	var n int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		n, err = s.Users.DeleteStaff(tx, ownerID, id)
		return err
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("staff %s: %w", id, ErrNotFound)
	}
	return nil
}
