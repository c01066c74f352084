package trend

import (
	"context"
	"errors"
	"time"

	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/pkg/apperr"
	"github.com/serenitysphere/core/internal/pkg/pagination"
	"github.com/serenitysphere/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Emit writes a notification unless one of the same kind was created for the
// owner within cooldown of now. Callers hold the owner lock and pass their
// transaction.
func Emit(
	ctx context.Context,
	tx *gorm.DB,
	ownerID string,
	kind models.NotificationKind,
	severity models.Severity,
	message string,
	cooldown time.Duration,
	now time.Time,
) (*models.NotificationModel, error) {
	if cooldown > 0 {
		var recent int64
		if err := tx.WithContext(ctx).Model(&models.NotificationModel{}).
			Where("owner_id = ? AND kind = ? AND created_at >= ?", ownerID, kind, now.Add(-cooldown)).
			Count(&recent).Error; err != nil {
			return nil, err
		}
		if recent > 0 {
			return nil, nil
		}
	}
	n := &models.NotificationModel{
		OwnerID:  ownerID,
		Kind:     kind,
		Message:  message,
		Severity: severity,
	}
	n.CreatedAt = now
	n.UpdatedAt = now
	if err := tx.WithContext(ctx).Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

// Notifications lists the owner's notifications that are not dismissed,
// newest first.
func (s *Service) Notifications(ctx context.Context, ownerID string, unreadOnly bool, q pagination.Query) ([]models.NotificationModel, response.Pagination, error) {
	db := s.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("owner_id = ? AND is_dismissed = ?", ownerID, false)
	if unreadOnly {
		db = db.Where("is_read = ?", false)
	}
	var items []models.NotificationModel
	pag, err := pagination.Paginate(db.Order("created_at DESC"), q, &items)
	if err != nil {
		return nil, response.Pagination{}, apperr.Store(err, "list notifications")
	}
	return items, pag, nil
}

func (s *Service) MarkRead(ctx context.Context, ownerID, id string) (*models.NotificationModel, error) {
	return s.flag(ctx, ownerID, id, "is_read")
}

func (s *Service) Dismiss(ctx context.Context, ownerID, id string) (*models.NotificationModel, error) {
	return s.flag(ctx, ownerID, id, "is_dismissed")
}

func (s *Service) flag(ctx context.Context, ownerID, id, column string) (*models.NotificationModel, error) {
	n, err := Notification(ctx, s.db, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(n).Update(column, true).Error; err != nil {
		return nil, apperr.Store(err, "update notification")
	}
	switch column {
	case "is_read":
		n.IsRead = true
	case "is_dismissed":
		n.IsDismissed = true
	}
	return n, nil
}

// Notification loads one of the owner's notifications.
func Notification(ctx context.Context, db *gorm.DB, ownerID, id string) (*models.NotificationModel, error) {
	var n models.NotificationModel
	if err := db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("notification %s not found", id)
		}
		return nil, apperr.Store(err, "load notification")
	}
	return &n, nil
}
