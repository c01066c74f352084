package trend

import (
	"context"
	"time"

	"github.com/serenitysphere/core/internal/config"
	"github.com/serenitysphere/core/internal/database"
	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/modules/owner"
	"github.com/serenitysphere/core/internal/modules/vocabulary"
	"github.com/serenitysphere/core/internal/pkg/apperr"
	"github.com/serenitysphere/core/internal/pkg/ownerlock"
	"github.com/serenitysphere/core/internal/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Service inspects mood history and writes notifications. It never touches
// mood records or journal entries.
type Service struct {
	db         *gorm.DB
	vocab      *vocabulary.Vocabulary
	locks      ownerlock.Locker
	cfg        config.TrendConfig
	maxRetries int
	now        func() time.Time
	logger     *zap.Logger
}

type ServiceOption func(*Service)

func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l.Named("TrendService")
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

func NewService(db *gorm.DB, vocab *vocabulary.Vocabulary, locks ownerlock.Locker, cfg config.TrendConfig, opts ...ServiceOption) *Service {
	s := &Service{
		db:         db,
		vocab:      vocab,
		locks:      locks,
		cfg:        cfg,
		maxRetries: 3,
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Analyze runs shift and extended-sadness detection for the owner and returns
// the notifications it created. Kinds still inside their cooldown are skipped.
func (s *Service) Analyze(ctx context.Context, ownerID string) (created []models.NotificationModel, err error) {
	ctx, span := tracing.Start(ctx, "trend.analyze", attribute.String("owner.id", ownerID))
	defer func() { tracing.End(span, err) }()

	if err := owner.Ensure(ctx, s.db, ownerID); err != nil {
		return nil, err
	}

	unlock, err := s.locks.Lock(ctx, ownerID)
	if err != nil {
		return nil, apperr.Store(err, "acquire owner lock")
	}
	defer unlock()

	now := s.now()
	err = database.Transaction(ctx, s.db, s.maxRetries, func(tx *gorm.DB) error {
		created = created[:0]
		findings, err := s.detect(ctx, tx, ownerID, now)
		if err != nil {
			return err
		}
		for _, f := range findings {
			n, err := Emit(ctx, tx, ownerID, f.kind, f.severity, f.message, cooldownFor(s.cfg, f.kind), now)
			if err != nil {
				return err
			}
			if n != nil {
				created = append(created, *n)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range created {
		s.logger.Info("notification emitted",
			zap.String("owner", ownerID),
			zap.String("kind", string(created[i].Kind)),
			zap.String("severity", string(created[i].Severity)),
		)
	}
	return created, nil
}

func (s *Service) detect(ctx context.Context, tx *gorm.DB, ownerID string, now time.Time) ([]finding, error) {
	var latest []models.MoodRecordModel
	if err := tx.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("date DESC, created_at DESC").
		Limit(max(s.cfg.ShiftWindow, 2)).
		Find(&latest).Error; err != nil {
		return nil, err
	}

	var window []models.MoodRecordModel
	if err := tx.WithContext(ctx).
		Where("owner_id = ? AND date >= ? AND date <= ?", ownerID, windowStart(now, s.cfg.SadWindowDays), models.LogicalDate(now)).
		Find(&window).Error; err != nil {
		return nil, err
	}

	var findings []finding
	if f, ok := detectShift(s.vocab, s.cfg, latest); ok {
		findings = append(findings, f)
	}
	if f, ok := detectSadness(s.vocab, s.cfg, window); ok {
		findings = append(findings, f)
	}
	return findings, nil
}

// windowStart is the first logical date of a trailing window of days that
// ends today.
func windowStart(now time.Time, days int) string {
	return models.LogicalDate(now.AddDate(0, 0, -(max(days, 1) - 1)))
}

// ActiveOwners lists owners with a mood record in the trailing window.
func (s *Service) ActiveOwners(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&models.MoodRecordModel{}).
		Where("date >= ?", windowStart(s.now(), s.cfg.SadWindowDays)).
		Distinct().
		Pluck("owner_id", &ids).Error; err != nil {
		return nil, apperr.Store(err, "list active owners")
	}
	return ids, nil
}

// AnalyzeAll runs Analyze for every active owner with bounded concurrency.
// A failing owner is logged and does not stop the others.
func (s *Service) AnalyzeAll(ctx context.Context, concurrency int) (int, error) {
	owners, err := s.ActiveOwners(ctx)
	if err != nil {
		return 0, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	emitted := make([]int, len(owners))
	for i, id := range owners {
		g.Go(func() error {
			ns, err := s.Analyze(gctx, id)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.Warn("scheduled analysis failed", zap.String("owner", id), zap.Error(err))
				return nil
			}
			emitted[i] = len(ns)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	total := 0
	for _, n := range emitted {
		total += n
	}
	return total, nil
}
