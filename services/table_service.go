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
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

type TableStatusRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// TableStatusView is the payload of ReceiveTableStatusUpdate and of the
// staff table board.
type TableStatusView struct {
	ID          uint           `json:"id"`
	TableNumber int            `json:"tableNumber"`
	TableStatus TableStatusRef `json:"tableStatus"`
}

func tableStatusView(t entity.Table) TableStatusView {
	return TableStatusView{
		ID:          t.ID,
		TableNumber: t.TableNumber,
		TableStatus: TableStatusRef{ID: t.TableStatus.ID, Name: t.TableStatus.Name},
	}
}

type TableInput struct {
	TableNumber   int   `json:"tableNumber" binding:"required,min=1"`
	TableStatusID uint  `json:"tableStatusId"`
	IsActive      *bool `json:"isActive"`
}

type TableService struct {
	DB      *gorm.DB
	Tables  *repository.TableRepository
	BaseURL string
	Now     func() time.Time
}

func NewTableService(db *gorm.DB, tables *repository.TableRepository, publicBaseURL string) *TableService {
	return &TableService{DB: db, Tables: tables, BaseURL: strings.TrimRight(publicBaseURL, "/"), Now: time.Now}
}

// MenuURL is what a table's QR code points at.
func (s *TableService) MenuURL(ownerID uuid.UUID, tableID uint) string {
	return fmt.Sprintf("%s/home/%s/%d", s.BaseURL, ownerID, tableID)
}

func (s *TableService) Board(ctx context.Context, ownerID uuid.UUID) ([]TableStatusView, error) {
	tables, err := s.Tables.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]TableStatusView, 0, len(tables))
	for _, t := range tables {
		if t.IsActive {
			out = append(out, tableStatusView(t))
		}
	}
	return out, nil
}

func (s *TableService) Statuses(ctx context.Context) ([]entity.TableStatus, error) {
	return s.Tables.ListStatuses(ctx)
}

// UpdateTableStatus changes the status of a table of ownerID. A table of
// another tenant is reported as not found.
func (s *TableService) UpdateTableStatus(ctx context.Context, ownerID uuid.UUID, actor string, tableID, statusID uint) (*TableStatusView, error) {
	t, err := s.Tables.Get(ctx, ownerID, tableID)
	if err != nil {
		return nil, notFound(err, "table")
	}
	st, err := s.Tables.GetStatus(ctx, statusID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid(fmt.Sprintf("unknown table status %d", statusID))
		}
		return nil, err
	}

	t.TableStatusID = st.ID
	t.TableStatus = *st
	t.Touch(actor, s.Now())
	if err := s.Tables.UpdateStatus(ctx, t); err != nil {
		return nil, err
	}
	v := tableStatusView(*t)
	return &v, nil
}

// ----- Owner CRUD -----

func (s *TableService) List(ctx context.Context, ownerID uuid.UUID) ([]entity.Table, error) {
	return s.Tables.List(ctx, ownerID)
}

func (s *TableService) Get(ctx context.Context, ownerID uuid.UUID, id uint) (*entity.Table, error) {
	t, err := s.Tables.Get(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err, "table")
	}
	return t, nil
}

func (s *TableService) resolveStatus(ctx context.Context, id uint) (uint, error) {
	if id == 0 {
		return s.Tables.GetStatusIDByName(ctx, entity.TableStatusAvailable)
	}
	st, err := s.Tables.GetStatus(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, invalid(fmt.Sprintf("unknown table status %d", id))
		}
		return 0, err
	}
	return st.ID, nil
}

// Create adds a table and points its QR code at the table's home page.
func (s *TableService) Create(ctx context.Context, ownerID uuid.UUID, actor string, in TableInput) (*entity.Table, error) {
	n, err := s.Tables.CountByNumber(ctx, ownerID, in.TableNumber, 0)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, conflict(fmt.Sprintf("table %d already exists", in.TableNumber))
	}
	statusID, err := s.resolveStatus(ctx, in.TableStatusID)
	if err != nil {
		return nil, err
	}

	t := &entity.Table{
		Audit:         entity.Audit{CreatedBy: actor},
		OwnerID:       ownerID,
		TableNumber:   in.TableNumber,
		IsActive:      in.IsActive == nil || *in.IsActive,
		TableStatusID: statusID,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Tables.Create(tx, t); err != nil {
			return err
		}
		t.QRCode = s.MenuURL(ownerID, t.ID)
		return s.Tables.Save(tx, t)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, ownerID, t.ID)
}

func (s *TableService) Update(ctx context.Context, ownerID uuid.UUID, actor string, id uint, in TableInput) (*entity.Table, error) {
	t, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	n, err := s.Tables.CountByNumber(ctx, ownerID, in.TableNumber, id)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, conflict(fmt.Sprintf("table %d already exists", in.TableNumber))
	}
	if in.TableStatusID != 0 {
		if t.TableStatusID, err = s.resolveStatus(ctx, in.TableStatusID); err != nil {
			return nil, err
		}
	}
	t.TableNumber = in.TableNumber
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
	t.QRCode = s.MenuURL(ownerID, t.ID)
	t.Touch(actor, s.Now())
	if err := s.Tables.Save(s.DB.WithContext(ctx), t); err != nil {
		return nil, err
	}
	return s.Get(ctx, ownerID, id)
}

func (s *TableService) Delete(ctx context.Context, ownerID uuid.UUID, id uint) error {
	n, err := s.Tables.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("table %d: %w", id, ErrNotFound)
	}
	return nil
}

// QRCode renders the table's menu URL as a PNG of size×size pixels.
func (s *TableService) QRCode(ctx context.Context, ownerID uuid.UUID, id uint, size int) ([]byte, error) {
	t, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if size < 64 || size > 1024 {
		size = 256
	}
	target := t.QRCode
	if target == "" {
		target = s.MenuURL(ownerID, t.ID)
	}
	return qrcode.Encode(target, qrcode.Medium, size)
}
