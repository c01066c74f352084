package owner

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/serenitysphere/core/internal/database"
	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/pkg/apperr"
	"github.com/serenitysphere/core/internal/pkg/jwt"
	"gorm.io/gorm"
)

const tokenTTL = 30 * 24 * time.Hour

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create registers an owner and issues an access token for it.
func (s *Service) Create(ctx context.Context, dto *CreateOwnerDTO) (*models.OwnerModel, string, error) {
	username := strings.TrimSpace(dto.Username)
	if username == "" {
		return nil, "", apperr.Validation("username is required")
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.OwnerModel{}).
		Where("username = ?", username).Count(&existing).Error; err != nil {
		return nil, "", apperr.Store(err, "lookup owner")
	}
	if existing > 0 {
		return nil, "", apperr.Validation("username %q is taken", username)
	}

	o := &models.OwnerModel{Username: username, Email: strings.TrimSpace(dto.Email)}
	if err := s.db.WithContext(ctx).Create(o).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, "", apperr.Validation("username %q is taken", username)
		}
		return nil, "", apperr.Store(err, "create owner")
	}

	token, err := jwt.Sign(o.ID, tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return o, token, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.OwnerModel, error) {
	var o models.OwnerModel
	if err := s.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("owner %s not found", id)
		}
		return nil, apperr.Store(err, "load owner")
	}
	return &o, nil
}

// Ensure returns a NotFound error unless the owner exists.
func Ensure(ctx context.Context, db *gorm.DB, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.Validation("owner is required")
	}
	var n int64
	if err := db.WithContext(ctx).Model(&models.OwnerModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return apperr.Store(err, "lookup owner")
	}
	if n == 0 {
		return apperr.NotFound("owner %s not found", id)
	}
	return nil
}
