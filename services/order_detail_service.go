package services

import (
	"context"
	"time"

	"restx/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type OrderDetailService struct {
	Repo *repository.OrderRepository
	Log  logrus.FieldLogger
	Now  func() time.Time
}

func NewOrderDetailService(repo *repository.OrderRepository, log logrus.FieldLogger) *OrderDetailService {
	return &OrderDetailService{Repo: repo, Log: log, Now: time.Now}
}

// UpdateStatus sets the active flag of one order line of ownerID. It reports
// false for a line that does not exist, belongs to another tenant, or could
// not be saved; errors are logged, never returned.
func (s *OrderDetailService) UpdateStatus(ctx context.Context, ownerID uuid.UUID, actor string, detailID uuid.UUID, active bool) bool {
	log := s.Log.WithFields(logrus.Fields{"detail_id": detailID, "owner_id": ownerID})

	d, err := s.Repo.FindDetailForOwner(ctx, ownerID, detailID)
	if err != nil {
		log.WithError(err).Warn("order line lookup failed")
		return false
	}

	d.IsActive = active
	d.Touch(actor, s.Now())
	if err := s.Repo.UpdateDetailStatus(ctx, d); err != nil {
		log.WithError(err).Error("order line update failed")
		return false
	}
	return true
}
