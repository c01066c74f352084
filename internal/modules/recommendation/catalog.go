package recommendation

import (
	"context"

	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/pkg/apperr"
	"go.uber.org/zap"
)

type seedEntry struct {
	Category    string
	Type        string
	Title       string
	Description string
	Link        string
}

// SeedCatalog fills an empty catalog with the built-in entries. A catalog
// that already has rows is left alone.
func (s *Service) SeedCatalog(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.RecommendationModel{}).Count(&n).Error; err != nil {
		return 0, apperr.Store(err, "count catalog")
	}
	if n > 0 {
		return 0, nil
	}

	rows := make([]models.RecommendationModel, len(defaultCatalog))
	for i, e := range defaultCatalog {
		rows[i] = models.RecommendationModel{
			Title:       e.Title,
			Description: e.Description,
			Type:        e.Type,
			Category:    e.Category,
			Link:        e.Link,
			IsActive:    true,
		}
	}
	if err := s.db.WithContext(ctx).CreateInBatches(rows, 100).Error; err != nil {
		return 0, apperr.Store(err, "seed catalog")
	}
	s.logger.Info("recommendation catalog seeded", zap.Int("entries", len(rows)))
	return len(rows), nil
}
