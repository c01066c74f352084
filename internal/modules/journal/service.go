package journal

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/serenitysphere/core/internal/database"
	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/modules/emotion"
	"github.com/serenitysphere/core/internal/modules/mood"
	"github.com/serenitysphere/core/internal/modules/owner"
	"github.com/serenitysphere/core/internal/modules/vocabulary"
	"github.com/serenitysphere/core/internal/pkg/apperr"
	"github.com/serenitysphere/core/internal/pkg/ownerlock"
	"github.com/serenitysphere/core/internal/pkg/pagination"
	"github.com/serenitysphere/core/internal/pkg/response"
	"github.com/serenitysphere/core/internal/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const MaxContentLength = 20000

// Result is a persisted entry together with its linked mood record, if any.
type Result struct {
	Entry   *models.JournalEntryModel
	Mood    *models.MoodRecordModel
	Created bool
}

type Service struct {
	db         *gorm.DB
	classifier emotion.Classifier
	vocab      *vocabulary.Vocabulary
	moods      *mood.Store
	locks      ownerlock.Locker
	trigger    mood.AnalysisTrigger
	maxRetries int
	now        func() time.Time
	logger     *zap.Logger
}

type ServiceOption func(*Service)

func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l.Named("JournalService")
		}
	}
}

func WithTrigger(t mood.AnalysisTrigger) ServiceOption {
	return func(s *Service) { s.trigger = t }
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

func NewService(
	db *gorm.DB,
	classifier emotion.Classifier,
	vocab *vocabulary.Vocabulary,
	moods *mood.Store,
	locks ownerlock.Locker,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		db:         db,
		classifier: classifier,
		vocab:      vocab,
		moods:      moods,
		locks:      locks,
		maxRetries: 3,
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Submit writes the owner's entry for the logical date of the timestamp,
// replacing the day's content if an entry already exists, and reconciles its
// derived mood record. Classification happens before the owner lock is taken;
// everything after it commits or rolls back as one unit.
func (s *Service) Submit(ctx context.Context, ownerID string, dto *SubmitDTO) (res *Result, err error) {
	ctx, span := tracing.Start(ctx, "journal.submit", attribute.String("owner.id", ownerID))
	defer func() { tracing.End(span, err) }()

	text := strings.TrimSpace(dto.Content)
	if text == "" {
		return nil, apperr.Validation("content is required")
	}
	if utf8.RuneCountInString(text) > MaxContentLength {
		return nil, apperr.Validation("content exceeds %d characters", MaxContentLength)
	}
	at := s.now()
	if dto.Timestamp != nil && !dto.Timestamp.IsZero() {
		at = dto.Timestamp.In(time.Local)
	}
	date := models.LogicalDate(at)

	if err := owner.Ensure(ctx, s.db, ownerID); err != nil {
		return nil, err
	}

	scores, err := s.classifier.Classify(ctx, text)
	if err != nil {
		if !apperr.Is(err, apperr.KindClassification) {
			err = apperr.Classification(err, "emotion classifier failed")
		}
		return nil, err
	}
	if scores == nil {
		scores = []models.EmotionScore{}
	}
	var draft *mood.Draft
	if d, ok := mood.Derive(s.vocab, scores); ok {
		draft = &d
	}

	unlock, err := s.locks.Lock(ctx, ownerID)
	if err != nil {
		return nil, apperr.Store(err, "acquire owner lock")
	}
	err = database.Transaction(ctx, s.db, s.maxRetries, func(tx *gorm.DB) error {
		r, err := s.upsert(ctx, tx, ownerID, date, at, text, scores, draft)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	unlock()
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			s.logger.Error("journal submit rolled back on invariant violation",
				zap.String("owner", ownerID), zap.String("date", date), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Debug("journal entry saved",
		zap.String("owner", ownerID),
		zap.String("date", date),
		zap.Bool("created", res.Created),
		zap.Int("emotions", len(scores)),
	)
	if s.trigger != nil {
		s.trigger.Trigger(context.WithoutCancel(ctx), ownerID)
	}
	return res, nil
}

func (s *Service) upsert(
	ctx context.Context,
	tx *gorm.DB,
	ownerID, date string,
	at time.Time,
	text string,
	scores []models.EmotionScore,
	draft *mood.Draft,
) (*Result, error) {
	entry, err := findByDate(ctx, tx, ownerID, date)
	if err != nil {
		return nil, err
	}

	created := entry == nil
	if created {
		entry = &models.JournalEntryModel{
			OwnerID:  ownerID,
			Date:     date,
			EntryAt:  at,
			Content:  text,
			Emotions: datatypes.NewJSONSlice(scores),
		}
		if err := tx.WithContext(ctx).Create(entry).Error; err != nil {
			return nil, err
		}
	} else {
		// CreatedAt and EntryAt stay as first written.
		entry.Content = text
		entry.Emotions = datatypes.NewJSONSlice(scores)
		entry.UpdatedAt = s.now()
		if err := tx.WithContext(ctx).Model(entry).Updates(map[string]any{
			"content":    entry.Content,
			"emotions":   entry.Emotions,
			"updated_at": entry.UpdatedAt,
		}).Error; err != nil {
			return nil, err
		}
	}

	rec, err := s.moods.Reconcile(ctx, tx, entry, draft)
	if err != nil {
		return nil, err
	}
	return &Result{Entry: entry, Mood: rec, Created: created}, nil
}

// findByDate returns nil when the owner has no entry for date. More than one
// row for the key is an invariant violation.
func findByDate(ctx context.Context, db *gorm.DB, ownerID, date string) (*models.JournalEntryModel, error) {
	var rows []models.JournalEntryModel
	if err := db.WithContext(ctx).
		Where("owner_id = ? AND date = ?", ownerID, date).
		Limit(2).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return &rows[0], nil
	}
	return nil, apperr.Conflict("owner %s has more than one journal entry on %s", ownerID, date)
}

// Get loads one of the owner's entries with its linked mood.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*Result, error) {
	var e models.JournalEntryModel
	if err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("journal entry %s not found", id)
		}
		return nil, apperr.Store(err, "load journal entry")
	}
	return s.withMood(ctx, &e)
}

// GetByDate loads the owner's entry for a logical date.
func (s *Service) GetByDate(ctx context.Context, ownerID, date string) (*Result, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, apperr.Validation("invalid date %q, expected YYYY-MM-DD", date)
	}
	e, err := findByDate(ctx, s.db, ownerID, date)
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			s.logger.Error("duplicate journal entries", zap.String("owner", ownerID), zap.String("date", date))
			return nil, err
		}
		return nil, apperr.Store(err, "load journal entry")
	}
	if e == nil {
		return nil, apperr.NotFound("no journal entry on %s", date)
	}
	return s.withMood(ctx, e)
}

func (s *Service) withMood(ctx context.Context, e *models.JournalEntryModel) (*Result, error) {
	rec, err := s.moods.Linked(ctx, s.db, e.ID)
	if err != nil {
		return nil, err
	}
	return &Result{Entry: e, Mood: rec}, nil
}

// List pages through the owner's entries, newest logical date first.
func (s *Service) List(ctx context.Context, ownerID string, q pagination.Query) ([]Result, response.Pagination, error) {
	if err := owner.Ensure(ctx, s.db, ownerID); err != nil {
		return nil, response.Pagination{}, err
	}
	var entries []models.JournalEntryModel
	db := s.db.WithContext(ctx).Model(&models.JournalEntryModel{}).
		Where("owner_id = ?", ownerID).
		Order("date DESC")
	pag, err := pagination.Paginate(db, q, &entries)
	if err != nil {
		return nil, response.Pagination{}, apperr.Store(err, "list journal entries")
	}

	ids := make([]string, len(entries))
	for i := range entries {
		ids[i] = entries[i].ID
	}
	linked, err := s.moods.LinkedMany(ctx, s.db, ids)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	out := make([]Result, len(entries))
	for i := range entries {
		out[i] = Result{Entry: &entries[i], Mood: linked[entries[i].ID]}
	}
	return out, pag, nil
}

// OwnersWithoutEntry returns owners that have no entry on date.
func OwnersWithoutEntry(ctx context.Context, db *gorm.DB, date string) ([]string, error) {
	var ids []string
	err := db.WithContext(ctx).Model(&models.OwnerModel{}).
		Where("id NOT IN (?)", db.Model(&models.JournalEntryModel{}).Select("owner_id").Where("date = ?", date)).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, apperr.Store(err, "list owners without entry")
	}
	return ids, nil
}
