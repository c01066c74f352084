package recommendation

import (
	"context"
	"errors"
	"strings"

	"github.com/serenitysphere/core/internal/database"
	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/modules/owner"
	"github.com/serenitysphere/core/internal/modules/trend"
	"github.com/serenitysphere/core/internal/modules/vocabulary"
	"github.com/serenitysphere/core/internal/pkg/apperr"
	"github.com/serenitysphere/core/internal/pkg/ownerlock"
	"github.com/serenitysphere/core/internal/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 3
	MaxLimit     = 10
)

type Service struct {
	db         *gorm.DB
	vocab      *vocabulary.Vocabulary
	locks      ownerlock.Locker
	sampler    Sampler
	limit      int
	maxRetries int
	logger     *zap.Logger
}

type ServiceOption func(*Service)

func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l.Named("RecommendationService")
		}
	}
}

func WithSampler(sm Sampler) ServiceOption {
	return func(s *Service) {
		if sm != nil {
			s.sampler = sm
		}
	}
}

// WithDefaultLimit sets how many entries a request without a limit gets.
func WithDefaultLimit(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.limit = min(n, MaxLimit)
		}
	}
}

func WithMaxRetries(n int) ServiceOption {
	return func(s *Service) { s.maxRetries = n }
}

func NewService(db *gorm.DB, vocab *vocabulary.Vocabulary, locks ownerlock.Locker, opts ...ServiceOption) *Service {
	s := &Service{
		db:         db,
		vocab:      vocab,
		locks:      locks,
		sampler:    NewSampler(0),
		limit:      DefaultLimit,
		maxRetries: 3,
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Select draws up to limit active entries for the cause's category, fills any
// shortfall from the general category and records one exposure per entry.
// The returned exposures carry their catalog entry.
func (s *Service) Select(ctx context.Context, ownerID, cause string, limit int) ([]models.RecommendationExposureModel, error) {
	if err := owner.Ensure(ctx, s.db, ownerID); err != nil {
		return nil, err
	}
	var out []models.RecommendationExposureModel
	err := s.locked(ctx, ownerID, func(tx *gorm.DB) error {
		var err error
		out, err = s.selectTx(ctx, tx, ownerID, cause, limit, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type CauseResult struct {
	Cause     *models.MoodCauseModel
	Exposures []models.RecommendationExposureModel
}

// RecordCause stores the owner's answer to a notification and returns
// recommendations linked to it.
func (s *Service) RecordCause(ctx context.Context, ownerID string, dto *CauseDTO) (*CauseResult, error) {
	cause := strings.ToLower(strings.TrimSpace(dto.Cause))
	if cause == "" {
		return nil, apperr.Validation("cause is required")
	}
	if err := owner.Ensure(ctx, s.db, ownerID); err != nil {
		return nil, err
	}
	if dto.NotificationID != nil {
		if _, err := trend.Notification(ctx, s.db, ownerID, *dto.NotificationID); err != nil {
			return nil, err
		}
	}

	res := &CauseResult{}
	err := s.locked(ctx, ownerID, func(tx *gorm.DB) error {
		mc := &models.MoodCauseModel{
			OwnerID:        ownerID,
			NotificationID: dto.NotificationID,
			Cause:          cause,
			Notes:          strings.TrimSpace(dto.Notes),
		}
		if err := tx.Create(mc).Error; err != nil {
			return err
		}
		exposures, err := s.selectTx(ctx, tx, ownerID, cause, 0, &mc.ID)
		if err != nil {
			return err
		}
		res.Cause, res.Exposures = mc, exposures
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("mood cause recorded",
		zap.String("owner", ownerID),
		zap.String("cause", cause),
		zap.Int("recommendations", len(res.Exposures)),
	)
	return res, nil
}

// RecordFeedback stores whether an exposure helped.
func (s *Service) RecordFeedback(ctx context.Context, ownerID, exposureID string, dto *FeedbackDTO) (*models.RecommendationExposureModel, error) {
	if dto.IsHelpful == nil {
		return nil, apperr.Validation("is_helpful is required")
	}
	var e models.RecommendationExposureModel
	if err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", exposureID, ownerID).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("exposure %s not found", exposureID)
		}
		return nil, apperr.Store(err, "load exposure")
	}
	feedback := strings.TrimSpace(dto.Feedback)
	if err := s.db.WithContext(ctx).Model(&e).Updates(map[string]any{
		"is_helpful": *dto.IsHelpful,
		"feedback":   feedback,
	}).Error; err != nil {
		return nil, apperr.Store(err, "save feedback")
	}
	e.IsHelpful = dto.IsHelpful
	e.Feedback = feedback
	return &e, nil
}

func (s *Service) locked(ctx context.Context, ownerID string, fn func(tx *gorm.DB) error) error {
	unlock, err := s.locks.Lock(ctx, ownerID)
	if err != nil {
		return apperr.Store(err, "acquire owner lock")
	}
	defer unlock()
	return database.Transaction(ctx, s.db, s.maxRetries, fn)
}

func (s *Service) selectTx(ctx context.Context, tx *gorm.DB, ownerID, cause string, limit int, causeID *string) (out []models.RecommendationExposureModel, err error) {
	category := s.vocab.CategoryForCause(cause)
	ctx, span := tracing.Start(ctx, "recommendation.select",
		attribute.String("owner.id", ownerID),
		attribute.String("category", category),
	)
	defer func() { tracing.End(span, err) }()

	if limit <= 0 {
		limit = s.limit
	}
	limit = min(limit, MaxLimit)

	picked, err := s.draw(ctx, tx, category, limit, nil)
	if err != nil {
		return nil, err
	}
	if len(picked) < limit && category != vocabulary.GeneralCategory {
		exclude := make([]string, len(picked))
		for i := range picked {
			exclude[i] = picked[i].ID
		}
		more, err := s.draw(ctx, tx, vocabulary.GeneralCategory, limit-len(picked), exclude)
		if err != nil {
			return nil, err
		}
		picked = append(picked, more...)
	}
	if len(picked) == 0 {
		return []models.RecommendationExposureModel{}, nil
	}

	out = make([]models.RecommendationExposureModel, len(picked))
	for i := range picked {
		out[i] = models.RecommendationExposureModel{
			OwnerID:          ownerID,
			RecommendationID: picked[i].ID,
			CauseID:          causeID,
		}
	}
	if err := tx.WithContext(ctx).Omit("Recommendation").Create(&out).Error; err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Recommendation = &picked[i]
	}
	return out, nil
}

// draw samples up to k active entries of a category, skipping exclude.
func (s *Service) draw(ctx context.Context, tx *gorm.DB, category string, k int, exclude []string) ([]models.RecommendationModel, error) {
	q := tx.WithContext(ctx).Where("category = ? AND is_active = ?", category, true)
	if len(exclude) > 0 {
		q = q.Where("id NOT IN ?", exclude)
	}
	var pool []models.RecommendationModel
	if err := q.Order("id").Find(&pool).Error; err != nil {
		return nil, err
	}
	idx := s.sampler.Sample(len(pool), min(k, len(pool)))
	out := make([]models.RecommendationModel, len(idx))
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out, nil
}
