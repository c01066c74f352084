package mood

import (
	"context"
	"strings"
	"time"

	"github.com/serenitysphere/core/internal/database"
	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/modules/owner"
	"github.com/serenitysphere/core/internal/modules/vocabulary"
	"github.com/serenitysphere/core/internal/pkg/apperr"
	"github.com/serenitysphere/core/internal/pkg/ownerlock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AnalysisTrigger is notified after an owner's mood history changed.
// Implementations must not fail the write that preceded them.
type AnalysisTrigger interface {
	Trigger(ctx context.Context, ownerID string)
}

type noopTrigger struct{}

func (noopTrigger) Trigger(context.Context, string) {}

type Service struct {
	db         *gorm.DB
	vocab      *vocabulary.Vocabulary
	locks      ownerlock.Locker
	trigger    AnalysisTrigger
	maxRetries int
	now        func() time.Time
	logger     *zap.Logger
}

type ServiceOption func(*Service)

func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l.Named("MoodService")
		}
	}
}

func WithTrigger(t AnalysisTrigger) ServiceOption {
	return func(s *Service) {
		if t != nil {
			s.trigger = t
		}
	}
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
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
		trigger:    noopTrigger{},
		maxRetries: 3,
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Log stores a manual mood record. Manual records never carry a journal link
// and may share (owner, date, mood) with a derived one.
func (s *Service) Log(ctx context.Context, ownerID string, dto *LogMoodDTO) (*models.MoodRecordModel, error) {
	mood := strings.ToLower(strings.TrimSpace(dto.Mood))
	if !s.vocab.IsMood(mood) {
		return nil, apperr.Validation("unknown mood %q", dto.Mood)
	}
	if dto.Intensity < minIntensity || dto.Intensity > maxIntensity {
		return nil, apperr.Validation("intensity must be between %d and %d", minIntensity, maxIntensity)
	}
	date := models.LogicalDate(s.now())
	if dto.Date != "" {
		d, err := time.ParseInLocation(models.DateLayout, dto.Date, time.Local)
		if err != nil {
			return nil, apperr.Validation("invalid date %q", dto.Date)
		}
		date = models.LogicalDate(d)
	}
	if err := owner.Ensure(ctx, s.db, ownerID); err != nil {
		return nil, err
	}

	unlock, err := s.locks.Lock(ctx, ownerID)
	if err != nil {
		return nil, apperr.Store(err, "acquire owner lock")
	}
	rec := &models.MoodRecordModel{
		OwnerID:   ownerID,
		Date:      date,
		Mood:      mood,
		Intensity: dto.Intensity,
		Notes:     strings.TrimSpace(dto.Notes),
		Source:    models.MoodSourceManual,
	}
	err = database.Transaction(ctx, s.db, s.maxRetries, func(tx *gorm.DB) error {
		rec.ID = ""
		return tx.Create(rec).Error
	})
	unlock()
	if err != nil {
		return nil, err
	}

	s.logger.Debug("manual mood logged", zap.String("owner", ownerID), zap.String("mood", mood))
	s.trigger.Trigger(context.WithoutCancel(ctx), ownerID)
	return rec, nil
}

// History lists an owner's mood records between two logical dates, both
// inclusive. Empty bounds are open.
func (s *Service) History(ctx context.Context, ownerID string, q *HistoryQuery) ([]models.MoodRecordModel, error) {
	if err := owner.Ensure(ctx, s.db, ownerID); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if q.From != "" {
		if _, err := time.Parse(models.DateLayout, q.From); err != nil {
			return nil, apperr.Validation("invalid from date %q", q.From)
		}
		db = db.Where("date >= ?", q.From)
	}
	if q.To != "" {
		if _, err := time.Parse(models.DateLayout, q.To); err != nil {
			return nil, apperr.Validation("invalid to date %q", q.To)
		}
		db = db.Where("date <= ?", q.To)
	}
	if q.From != "" && q.To != "" && q.From > q.To {
		return nil, apperr.Validation("from must not be after to")
	}
	var recs []models.MoodRecordModel
	if err := db.Order("date DESC, created_at DESC").Find(&recs).Error; err != nil {
		return nil, apperr.Store(err, "list mood records")
	}
	return recs, nil
}

// Category exposes the vocabulary grouping of a mood.
func (s *Service) Category(mood string) vocabulary.Category {
	return s.vocab.CategoryOf(mood)
}
