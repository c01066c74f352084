package journal

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/serenitysphere/core/internal/database/dbtest"
	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/modules/emotion"
	"github.com/serenitysphere/core/internal/modules/mood"
	"github.com/serenitysphere/core/internal/modules/vocabulary"
	"github.com/serenitysphere/core/internal/pkg/apperr"
	"github.com/serenitysphere/core/internal/pkg/ownerlock"
	"github.com/serenitysphere/core/internal/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var cannedScores = map[string][]models.EmotionScore{
	"A":       {{Label: "joy", Confidence: 0.82}, {Label: "excitement", Confidence: 0.4}},
	"B":       {{Label: "sadness", Confidence: 0.7}, {Label: "grief", Confidence: 0.2}},
	"nothing": {},
}

func cannedClassifier() emotion.Classifier {
	return emotion.ClassifierFunc(func(_ context.Context, text string) ([]models.EmotionScore, error) {
		if text == "fail" {
			return nil, errors.New("model offline")
		}
		return cannedScores[text], nil
	})
}

type countingTrigger struct {
	mu sync.Mutex
	n  int
}

func (c *countingTrigger) Trigger(context.Context, string) {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

type fixture struct {
	db      *gorm.DB
	svc     *Service
	owner   string
	now     time.Time
	trigger *countingTrigger
}

func newFixture(t *testing.T, classifier emotion.Classifier) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	o := &models.OwnerModel{Username: "journaler"}
	require.NoError(t, db.Create(o).Error)

	f := &fixture{
		db:      db,
		owner:   o.ID,
		now:     time.Date(2026, 4, 10, 8, 30, 0, 0, time.Local),
		trigger: &countingTrigger{},
	}
	f.svc = NewService(db, classifier, vocabulary.Default(), mood.NewStore(), ownerlock.NewLocal(),
		WithTrigger(f.trigger),
		WithClock(func() time.Time { return f.now }),
		WithMaxRetries(0),
	)
	return f
}

func (f *fixture) linked(t *testing.T, entryID string) []models.MoodRecordModel {
	t.Helper()
	var recs []models.MoodRecordModel
	require.NoError(t, f.db.Unscoped().Where("journal_entry_id = ?", entryID).Find(&recs).Error)
	return recs
}

func (f *fixture) entries(t *testing.T, date string) []models.JournalEntryModel {
	t.Helper()
	var rows []models.JournalEntryModel
	require.NoError(t, f.db.Where("owner_id = ? AND date = ?", f.owner, date).Find(&rows).Error)
	return rows
}

func TestSubmitDerivesMood(t *testing.T) {
	f := newFixture(t, cannedClassifier())

	res, err := f.svc.Submit(context.Background(), f.owner, &SubmitDTO{Content: "  A  "})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "A", res.Entry.Content)
	assert.Equal(t, "2026-04-10", res.Entry.Date)
	require.NotNil(t, res.Mood)
	assert.Equal(t, "happy", res.Mood.Mood)
	assert.Equal(t, 8, res.Mood.Intensity)
	assert.Equal(t, "derived from joy (0.82)", res.Mood.Notes)
	assert.Equal(t, res.Entry.ID, *res.Mood.JournalEntryID)
	assert.Equal(t, 1, f.trigger.n)

	recs := f.linked(t, res.Entry.ID)
	require.Len(t, recs, 1)
	assert.Equal(t, "happy", recs[0].Mood)
}

func TestSubmitWithoutEmotions(t *testing.T) {
	f := newFixture(t, cannedClassifier())

	res, err := f.svc.Submit(context.Background(), f.owner, &SubmitDTO{Content: "nothing"})
	require.NoError(t, err)
	assert.Nil(t, res.Mood)

	rows := f.entries(t, "2026-04-10")
	require.Len(t, rows, 1)
	assert.NotNil(t, rows[0].Emotions)
	assert.Empty(t, rows[0].Emotions)
	assert.Empty(t, f.linked(t, res.Entry.ID))
}

func TestSameDayResubmitReplaces(t *testing.T) {
	f := newFixture(t, cannedClassifier())
	ctx := context.Background()

	first, err := f.svc.Submit(ctx, f.owner, &SubmitDTO{Content: "A"})
	require.NoError(t, err)

	f.now = f.now.Add(6 * time.Hour)
	second, err := f.svc.Submit(ctx, f.owner, &SubmitDTO{Content: "B"})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Entry.ID, second.Entry.ID)

	rows := f.entries(t, "2026-04-10")
	require.Len(t, rows, 1)
	assert.Equal(t, "B", rows[0].Content)
	assert.Equal(t, "sadness", rows[0].Emotions[0].Label)
	assert.WithinDuration(t, first.Entry.EntryAt, rows[0].EntryAt, time.Second)
	assert.WithinDuration(t, first.Entry.CreatedAt, rows[0].CreatedAt, time.Second)

	recs := f.linked(t, rows[0].ID)
	require.Len(t, recs, 1)
	assert.Equal(t, "sad", recs[0].Mood)

	var happy int64
	require.NoError(t, f.db.Unscoped().Model(&models.MoodRecordModel{}).
		Where("owner_id = ? AND mood = ?", f.owner, "happy").Count(&happy).Error)
	assert.Zero(t, happy)

	third, err := f.svc.Submit(ctx, f.owner, &SubmitDTO{Content: "nothing"})
	require.NoError(t, err)
	assert.Nil(t, third.Mood)
	assert.Empty(t, f.linked(t, rows[0].ID))
	assert.Len(t, f.entries(t, "2026-04-10"), 1)
	assert.Equal(t, 3, f.trigger.n)
}

func TestSubmitUsesTimestampDate(t *testing.T) {
	f := newFixture(t, cannedClassifier())
	ctx := context.Background()

	yesterday := f.now.Add(-24 * time.Hour)
	a, err := f.svc.Submit(ctx, f.owner, &SubmitDTO{Content: "A", Timestamp: &yesterday})
	require.NoError(t, err)
	b, err := f.svc.Submit(ctx, f.owner, &SubmitDTO{Content: "B"})
	require.NoError(t, err)

	assert.Equal(t, "2026-04-09", a.Entry.Date)
	assert.Equal(t, "2026-04-10", b.Entry.Date)
	assert.NotEqual(t, a.Entry.ID, b.Entry.ID)
}

func TestSubmitDatesInServerZone(t *testing.T) {
	prev := time.Local
	time.Local = time.UTC
	t.Cleanup(func() { time.Local = prev })

	f := newFixture(t, cannedClassifier())
	ctx := context.Background()

	utc := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	ahead := utc.In(time.FixedZone("UTC+13", 13*60*60))
	require.Equal(t, "2026-04-11", ahead.Format(models.DateLayout))

	a, err := f.svc.Submit(ctx, f.owner, &SubmitDTO{Content: "A", Timestamp: &utc})
	require.NoError(t, err)
	b, err := f.svc.Submit(ctx, f.owner, &SubmitDTO{Content: "B", Timestamp: &ahead})
	require.NoError(t, err)

	assert.Equal(t, "2026-04-10", a.Entry.Date)
	assert.Equal(t, "2026-04-10", b.Entry.Date)
	assert.Equal(t, a.Entry.ID, b.Entry.ID)
	assert.False(t, b.Created)
	assert.Len(t, f.entries(t, "2026-04-10"), 1)
	assert.Empty(t, f.entries(t, "2026-04-11"))
}

func TestSubmitValidation(t *testing.T) {
	f := newFixture(t, cannedClassifier())
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, f.owner, &SubmitDTO{Content: " \n\t "})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = f.svc.Submit(ctx, f.owner, &SubmitDTO{Content: strings.Repeat("é", MaxContentLength+1)})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = f.svc.Submit(ctx, f.owner, &SubmitDTO{Content: strings.Repeat("é", MaxContentLength)})
	assert.NoError(t, err, "the limit counts characters, not bytes")

	_, err = f.svc.Submit(ctx, "6f1c7c8e-0000-4000-8000-000000000000", &SubmitDTO{Content: "A"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestClassifierFailurePersistsNothing(t *testing.T) {
	f := newFixture(t, cannedClassifier())
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, f.owner, &SubmitDTO{Content: "fail"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindClassification))
	assert.True(t, apperr.IsRetryable(err))
	assert.Empty(t, f.entries(t, "2026-04-10"))
	assert.Zero(t, f.trigger.n)

	_, err = f.svc.Submit(ctx, f.owner, &SubmitDTO{Content: "A"})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, f.owner, &SubmitDTO{Content: "fail"})
	require.Error(t, err)

	rows := f.entries(t, "2026-04-10")
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].Content)
	recs := f.linked(t, rows[0].ID)
	require.Len(t, recs, 1)
	assert.Equal(t, "happy", recs[0].Mood)
}

func TestClassifierTimeoutPersistsNothing(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	slow := emotion.NewFiltered(emotion.ClassifierFunc(func(context.Context, string) ([]models.EmotionScore, error) {
		<-block
		return nil, nil
	}), vocabulary.Default(), emotion.WithTimeout(20*time.Millisecond))
	f := newFixture(t, slow)

	_, err := f.svc.Submit(context.Background(), f.owner, &SubmitDTO{Content: "A"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindClassification))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, f.entries(t, "2026-04-10"))
}

func TestConcurrentSameDaySubmissions(t *testing.T) {
	f := newFixture(t, cannedClassifier())
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := "A"
			if i%2 == 1 {
				text = "B"
			}
			_, err := f.svc.Submit(ctx, f.owner, &SubmitDTO{Content: text})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	rows := f.entries(t, "2026-04-10")
	require.Len(t, rows, 1)
	recs := f.linked(t, rows[0].ID)
	require.Len(t, recs, 1)
	want := map[string]string{"A": "happy", "B": "sad"}[rows[0].Content]
	assert.Equal(t, want, recs[0].Mood)

	var derived int64
	require.NoError(t, f.db.Unscoped().Model(&models.MoodRecordModel{}).
		Where("owner_id = ?", f.owner).Count(&derived).Error)
	assert.EqualValues(t, 1, derived)
}

func TestDuplicateEntriesAreConflicts(t *testing.T) {
	f := newFixture(t, cannedClassifier())
	ctx := context.Background()
	for range 2 {
		require.NoError(t, f.db.Create(&models.JournalEntryModel{
			OwnerID: f.owner, Date: "2026-04-10", EntryAt: f.now, Content: "dup",
		}).Error)
	}

	_, err := f.svc.Submit(ctx, f.owner, &SubmitDTO{Content: "A"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	_, err = f.svc.GetByDate(ctx, f.owner, "2026-04-10")
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	var n int64
	require.NoError(t, f.db.Model(&models.MoodRecordModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestQueries(t *testing.T) {
	f := newFixture(t, cannedClassifier())
	ctx := context.Background()

	for i, text := range []string{"A", "B", "nothing"} {
		ts := f.now.AddDate(0, 0, -i)
		_, err := f.svc.Submit(ctx, f.owner, &SubmitDTO{Content: text, Timestamp: &ts})
		require.NoError(t, err)
	}

	items, pag, err := f.svc.List(ctx, f.owner, pagination.Query{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, pag.Total)
	assert.True(t, pag.HasNextPage)
	require.Len(t, items, 2)
	assert.Equal(t, "2026-04-10", items[0].Entry.Date)
	require.NotNil(t, items[0].Mood)
	assert.Equal(t, "happy", items[0].Mood.Mood)
	assert.Equal(t, "sad", items[1].Mood.Mood)

	byDate, err := f.svc.GetByDate(ctx, f.owner, "2026-04-08")
	require.NoError(t, err)
	assert.Equal(t, "nothing", byDate.Entry.Content)
	assert.Nil(t, byDate.Mood)

	one, err := f.svc.Get(ctx, f.owner, items[1].Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", one.Entry.Content)

	_, err = f.svc.Get(ctx, "someone-else", items[1].Entry.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = f.svc.GetByDate(ctx, f.owner, "2026-01-01")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = f.svc.GetByDate(ctx, f.owner, "yesterday")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestOwnersWithoutEntry(t *testing.T) {
	f := newFixture(t, cannedClassifier())
	ctx := context.Background()
	idle := &models.OwnerModel{Username: "idle"}
	require.NoError(t, f.db.Create(idle).Error)

	_, err := f.svc.Submit(ctx, f.owner, &SubmitDTO{Content: "A"})
	require.NoError(t, err)

	ids, err := OwnersWithoutEntry(ctx, f.db, "2026-04-10")
	require.NoError(t, err)
	assert.Equal(t, []string{idle.ID}, ids)
}
