package recommendation

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/serenitysphere/core/internal/database/dbtest"
	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/modules/trend"
	"github.com/serenitysphere/core/internal/modules/vocabulary"
	"github.com/serenitysphere/core/internal/pkg/apperr"
	"github.com/serenitysphere/core/internal/pkg/ownerlock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	svc   *Service
	owner string
}

func newFixture(t *testing.T, opts ...ServiceOption) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	o := &models.OwnerModel{Username: "picker"}
	require.NoError(t, db.Create(o).Error)
	opts = append([]ServiceOption{WithSampler(NewSampler(42)), WithMaxRetries(0)}, opts...)
	svc := NewService(db, vocabulary.Default(), ownerlock.NewLocal(), opts...)
	n, err := svc.SeedCatalog(context.Background())
	require.NoError(t, err)
	require.Positive(t, n)
	return &fixture{db: db, svc: svc, owner: o.ID}
}

func (f *fixture) categoryIDs(t *testing.T, category string) []string {
	t.Helper()
	var ids []string
	require.NoError(t, f.db.Model(&models.RecommendationModel{}).
		Where("category = ? AND is_active = ?", category, true).Pluck("id", &ids).Error)
	return ids
}

func recIDs(exposures []models.RecommendationExposureModel) []string {
	out := make([]string, len(exposures))
	for i := range exposures {
		out[i] = exposures[i].RecommendationID
	}
	return out
}

// firstK always picks the lowest indices.
type firstK struct{}

func (firstK) Sample(n, k int) []int {
	out := make([]int, min(n, k))
	for i := range out {
		out[i] = i
	}
	return out
}

func TestSelectFromTargetCategory(t *testing.T) {
	f := newFixture(t)
	grief := f.categoryIDs(t, "grief")
	require.Len(t, grief, 3)

	got, err := f.svc.Select(context.Background(), f.owner, "loss", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.ElementsMatch(t, grief, recIDs(got))
	for _, e := range got {
		require.NotNil(t, e.Recommendation)
		assert.Equal(t, "grief", e.Recommendation.Category)
		assert.Equal(t, f.owner, e.OwnerID)
		assert.Nil(t, e.CauseID)
	}
}

func TestSelectFillsFromGeneral(t *testing.T) {
	f := newFixture(t)
	creative := f.categoryIDs(t, "creative")
	general := f.categoryIDs(t, vocabulary.GeneralCategory)
	require.Len(t, creative, 2)

	got, err := f.svc.Select(context.Background(), f.owner, "creative", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	ids := recIDs(got)
	fromGeneral := 0
	for _, id := range ids {
		if slices.Contains(general, id) {
			fromGeneral++
		}
	}
	assert.Subset(t, ids, creative)
	assert.Len(t, slices.Compact(slices.Sorted(slices.Values(ids))), 3)
	assert.Equal(t, 1, fromGeneral)
}

func TestSelectUnknownCauseUsesGeneral(t *testing.T) {
	f := newFixture(t)
	general := f.categoryIDs(t, vocabulary.GeneralCategory)

	for range 5 {
		got, err := f.svc.Select(context.Background(), f.owner, "aliens", 0)
		require.NoError(t, err)
		require.Len(t, got, DefaultLimit)
		assert.Subset(t, general, recIDs(got))
	}
}

func TestSelectSkipsInactive(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(&models.RecommendationModel{}).
		Where("category = ?", "grief").Update("is_active", false).Error)

	got, err := f.svc.Select(context.Background(), f.owner, "grief", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, e := range got {
		assert.Equal(t, vocabulary.GeneralCategory, e.Recommendation.Category)
	}
}

func TestSelectShortCatalog(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(&models.RecommendationModel{}).
		Where("category <> ?", "joy").Update("is_active", false).Error)

	got, err := f.svc.Select(context.Background(), f.owner, "self_care", 5)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestSelectRecordsExposures(t *testing.T) {
	f := newFixture(t, WithSampler(firstK{}))
	ctx := context.Background()

	first, err := f.svc.Select(ctx, f.owner, "stress", 2)
	require.NoError(t, err)
	second, err := f.svc.Select(ctx, f.owner, "stress", 2)
	require.NoError(t, err)
	assert.Equal(t, recIDs(first), recIDs(second))

	var n int64
	require.NoError(t, f.db.Model(&models.RecommendationExposureModel{}).Where("owner_id = ?", f.owner).Count(&n).Error)
	assert.EqualValues(t, 4, n)
}

func TestSelectConcurrent(t *testing.T) {
	f := newFixture(t)
	var wg sync.WaitGroup
	for range 6 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := f.svc.Select(context.Background(), f.owner, "work", 3)
			assert.NoError(t, err)
			assert.Len(t, got, 3)
		}()
	}
	wg.Wait()

	var n int64
	require.NoError(t, f.db.Model(&models.RecommendationExposureModel{}).Count(&n).Error)
	assert.EqualValues(t, 18, n)
}

func TestSelectUnknownOwner(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Select(context.Background(), "nobody", "loss", 3)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestRecordCause(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	n, err := trend.Emit(ctx, f.db, f.owner, models.NotificationExtendedSadness, models.SeverityMedium, "m", 0, time.Now())
	require.NoError(t, err)

	res, err := f.svc.RecordCause(ctx, f.owner, &CauseDTO{NotificationID: &n.ID, Cause: " Loneliness ", Notes: "moved cities"})
	require.NoError(t, err)
	assert.Equal(t, "loneliness", res.Cause.Cause)
	assert.Equal(t, &n.ID, res.Cause.NotificationID)
	require.Len(t, res.Exposures, DefaultLimit)
	for _, e := range res.Exposures {
		require.NotNil(t, e.CauseID)
		assert.Equal(t, res.Cause.ID, *e.CauseID)
		assert.Equal(t, "loneliness", e.Recommendation.Category)
	}

	var linked int64
	require.NoError(t, f.db.Model(&models.RecommendationExposureModel{}).Where("cause_id = ?", res.Cause.ID).Count(&linked).Error)
	assert.EqualValues(t, DefaultLimit, linked)
}

func TestRecordCauseValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.RecordCause(ctx, f.owner, &CauseDTO{Cause: "   "})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	missing := "0b8b7c47-2f43-4d3e-9a55-000000000000"
	_, err = f.svc.RecordCause(ctx, f.owner, &CauseDTO{NotificationID: &missing, Cause: "work"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	var causes int64
	require.NoError(t, f.db.Model(&models.MoodCauseModel{}).Count(&causes).Error)
	assert.Zero(t, causes)
}

func TestRecordFeedback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	got, err := f.svc.Select(ctx, f.owner, "anxiety", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)

	helpful := false
	e, err := f.svc.RecordFeedback(ctx, f.owner, got[0].ID, &FeedbackDTO{IsHelpful: &helpful, Feedback: " too long "})
	require.NoError(t, err)
	require.NotNil(t, e.IsHelpful)
	assert.False(t, *e.IsHelpful)

	var stored models.RecommendationExposureModel
	require.NoError(t, f.db.First(&stored, "id = ?", got[0].ID).Error)
	require.NotNil(t, stored.IsHelpful)
	assert.False(t, *stored.IsHelpful)
	assert.Equal(t, "too long", stored.Feedback)

	_, err = f.svc.RecordFeedback(ctx, "someone-else", got[0].ID, &FeedbackDTO{IsHelpful: &helpful})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestSeedCatalogIdempotent(t *testing.T) {
	f := newFixture(t)
	n, err := f.svc.SeedCatalog(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	var total int64
	require.NoError(t, f.db.Model(&models.RecommendationModel{}).Count(&total).Error)
	assert.EqualValues(t, len(defaultCatalog), total)
}

func TestCatalogCoversCauseCategories(t *testing.T) {
	have := map[string]int{}
	for _, e := range defaultCatalog {
		have[e.Category]++
	}
	assert.GreaterOrEqual(t, have[vocabulary.GeneralCategory], 5)
	v := vocabulary.Default()
	for _, cause := range []string{"loss", "loneliness", "stress", "work", "health", "relationship", "financial",
		"anger", "anxiety", "setback", "motivation", "uncertainty", "achievement", "gratitude", "creative",
		"self_care", "change"} {
		assert.Positive(t, have[v.CategoryForCause(cause)], cause)
	}
}

func TestRandSampler(t *testing.T) {
	s := NewSampler(7)
	for range 50 {
		got := s.Sample(6, 3)
		require.Len(t, got, 3)
		seen := map[int]bool{}
		for _, i := range got {
			assert.True(t, i >= 0 && i < 6)
			assert.False(t, seen[i])
			seen[i] = true
		}
	}
	assert.Len(t, s.Sample(2, 5), 2)
	assert.Empty(t, s.Sample(0, 3))
}
