// Package reminder nudges owners who have not written today's journal entry.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/serenitysphere/core/internal/database"
	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/modules/journal"
	"github.com/serenitysphere/core/internal/modules/trend"
	"github.com/serenitysphere/core/internal/pkg/apperr"
	"github.com/serenitysphere/core/internal/pkg/ownerlock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// maxStreak bounds how far back a streak is counted.
const maxStreak = 366

type Service struct {
	db         *gorm.DB
	locks      ownerlock.Locker
	cooldown   time.Duration
	maxRetries int
	now        func() time.Time
	logger     *zap.Logger
}

type ServiceOption func(*Service)

func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l.Named("ReminderService")
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

// NewService builds the sweep. cooldown is the inactivity notification cooldown.
func NewService(db *gorm.DB, locks ownerlock.Locker, cooldown time.Duration, opts ...ServiceOption) *Service {
	s := &Service{
		db:         db,
		locks:      locks,
		cooldown:   cooldown,
		maxRetries: 3,
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Sweep reminds every owner without an entry for today. It returns how many
// reminders went out; failures for one owner are logged and skipped.
func (s *Service) Sweep(ctx context.Context, concurrency int) (int, error) {
	now := s.now()
	today := models.LogicalDate(now)
	owners, err := journal.OwnersWithoutEntry(ctx, s.db, today)
	if err != nil {
		return 0, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	sent := make([]bool, len(owners))
	for i, id := range owners {
		g.Go(func() error {
			ok, err := s.Remind(gctx, id, now)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.Warn("reminder failed", zap.String("owner", id), zap.Error(err))
				return nil
			}
			sent[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	total := 0
	for _, ok := range sent {
		if ok {
			total++
		}
	}
	return total, nil
}

// Remind writes an inactivity notification and a reminder row for now's
// logical date. It reports false when the owner was already reminded that day
// or the notification is still cooling down.
func (s *Service) Remind(ctx context.Context, ownerID string, now time.Time) (bool, error) {
	today := models.LogicalDate(now)
	streak, err := s.Streak(ctx, ownerID, now)
	if err != nil {
		return false, err
	}

	unlock, err := s.locks.Lock(ctx, ownerID)
	if err != nil {
		return false, apperr.Store(err, "acquire owner lock")
	}
	defer unlock()

	kind, message := models.ReminderRegular, "Take a few minutes to reflect on your day and write today's journal entry."
	if streak > 0 {
		kind = models.ReminderStreak
		message = fmt.Sprintf("You're on a %d-day journaling streak! Don't let it break, write today's entry.", streak)
	}

	sent := false
	err = database.Transaction(ctx, s.db, s.maxRetries, func(tx *gorm.DB) error {
		sent = false
		var n int64
		if err := tx.Model(&models.JournalReminderModel{}).
			Where("owner_id = ? AND date = ?", ownerID, today).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		note, err := trend.Emit(ctx, tx, ownerID, models.NotificationInactivity, models.SeverityLow, message, s.cooldown, now)
		if err != nil || note == nil {
			return err
		}
		if err := tx.Create(&models.JournalReminderModel{
			OwnerID: ownerID,
			Date:    today,
			Kind:    kind,
			Streak:  streak,
		}).Error; err != nil {
			return err
		}
		sent = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if sent {
		s.logger.Info("journal reminder sent",
			zap.String("owner", ownerID),
			zap.String("kind", kind),
			zap.Int("streak", streak),
		)
	}
	return sent, nil
}

// Streak counts consecutive days with an entry ending the day before now.
func (s *Service) Streak(ctx context.Context, ownerID string, now time.Time) (int, error) {
	var dates []string
	if err := s.db.WithContext(ctx).Model(&models.JournalEntryModel{}).
		Where("owner_id = ? AND date < ?", ownerID, models.LogicalDate(now)).
		Distinct().
		Order("date DESC").
		Limit(maxStreak).
		Pluck("date", &dates).Error; err != nil {
		return 0, apperr.Store(err, "load entry dates")
	}
	streak := 0
	for _, d := range dates {
		if d != models.LogicalDate(now.AddDate(0, 0, -(streak+1))) {
			break
		}
		streak++
	}
	return streak, nil
}
