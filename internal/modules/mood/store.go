package mood

import (
	"context"

	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/pkg/apperr"
	"github.com/serenitysphere/core/internal/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store keeps the one-derived-record-per-entry link. Its methods take the
// caller's transaction and never open one themselves.
type Store struct {
	logger *zap.Logger
}

type StoreOption func(*Store)

func WithStoreLogger(l *zap.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l.Named("MoodStore")
		}
	}
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Reconcile replaces whatever record is linked to entry with one built from
// draft. A nil draft leaves the entry with no linked record. The link count is
// re-checked before returning and a mismatch is a ConflictError.
func (s *Store) Reconcile(ctx context.Context, tx *gorm.DB, entry *models.JournalEntryModel, draft *Draft) (rec *models.MoodRecordModel, err error) {
	ctx, span := tracing.Start(ctx, "mood.reconcile", attribute.String("entry.id", entry.ID))
	defer func() { tracing.End(span, err) }()
	tx = tx.WithContext(ctx)

	if err := tx.Unscoped().
		Where("journal_entry_id = ?", entry.ID).
		Delete(&models.MoodRecordModel{}).Error; err != nil {
		return nil, apperr.Store(err, "clear linked mood record")
	}

	want := int64(0)
	if draft != nil {
		entryID := entry.ID
		rec = &models.MoodRecordModel{
			OwnerID:        entry.OwnerID,
			Date:           entry.Date,
			Mood:           draft.Mood,
			Intensity:      draft.Intensity,
			JournalEntryID: &entryID,
			Notes:          draft.Note,
			Source:         models.MoodSourceDerived,
		}
		if err := tx.Create(rec).Error; err != nil {
			return nil, apperr.Store(err, "insert mood record")
		}
		want = 1
	}

	var got int64
	if err := tx.Model(&models.MoodRecordModel{}).
		Where("journal_entry_id = ?", entry.ID).
		Count(&got).Error; err != nil {
		return nil, apperr.Store(err, "verify mood record link")
	}
	if got != want {
		s.logger.Error("mood record link invariant violated",
			zap.String("entry", entry.ID),
			zap.Int64("linked", got),
			zap.Int64("expected", want),
		)
		return nil, apperr.Conflict("journal entry %s has %d linked mood records, expected %d", entry.ID, got, want)
	}
	return rec, nil
}

// Linked returns the record linked to entryID, or nil if there is none.
func (s *Store) Linked(ctx context.Context, db *gorm.DB, entryID string) (*models.MoodRecordModel, error) {
	var recs []models.MoodRecordModel
	if err := db.WithContext(ctx).
		Where("journal_entry_id = ?", entryID).
		Limit(2).
		Find(&recs).Error; err != nil {
		return nil, apperr.Store(err, "load linked mood record")
	}
	switch len(recs) {
	case 0:
		return nil, nil
	case 1:
		return &recs[0], nil
	}
	s.logger.Error("mood record link invariant violated", zap.String("entry", entryID), zap.Int("linked", len(recs)))
	return nil, apperr.Conflict("journal entry %s has more than one linked mood record", entryID)
}

// LinkedMany loads the linked records for a set of entries keyed by entry id.
func (s *Store) LinkedMany(ctx context.Context, db *gorm.DB, entryIDs []string) (map[string]*models.MoodRecordModel, error) {
	out := make(map[string]*models.MoodRecordModel, len(entryIDs))
	if len(entryIDs) == 0 {
		return out, nil
	}
	var recs []models.MoodRecordModel
	if err := db.WithContext(ctx).Where("journal_entry_id IN ?", entryIDs).Find(&recs).Error; err != nil {
		return nil, apperr.Store(err, "load linked mood records")
	}
	for i := range recs {
		id := *recs[i].JournalEntryID
		if _, dup := out[id]; dup {
			return nil, apperr.Conflict("journal entry %s has more than one linked mood record", id)
		}
		out[id] = &recs[i]
	}
	return out, nil
}
