package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/serenitysphere/core/internal/database/dbtest"
	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/pkg/ownerlock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db  *gorm.DB
	svc *Service
	now time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{db: dbtest.Open(t), now: time.Date(2026, 3, 9, 20, 0, 0, 0, time.Local)}
	f.svc = NewService(f.db, ownerlock.NewLocal(), 24*time.Hour,
		WithClock(func() time.Time { return f.now }), WithMaxRetries(0))
	return f
}

func (f *fixture) owner(t *testing.T, name string) string {
	t.Helper()
	o := &models.OwnerModel{Username: name}
	require.NoError(t, f.db.Create(o).Error)
	return o.ID
}

func (f *fixture) entry(t *testing.T, ownerID string, daysAgo int) {
	t.Helper()
	at := f.now.AddDate(0, 0, -daysAgo)
	require.NoError(t, f.db.Create(&models.JournalEntryModel{
		OwnerID: ownerID, Date: models.LogicalDate(at), EntryAt: at, Content: "x",
	}).Error)
}

func TestStreak(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.owner(t, "a")
	for _, d := range []int{1, 2, 3, 5} {
		f.entry(t, a, d)
	}
	b := f.owner(t, "b")
	f.entry(t, b, 2)

	n, err := f.svc.Streak(ctx, a, f.now)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = f.svc.Streak(ctx, b, f.now)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSweep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	streaker := f.owner(t, "streaker")
	f.entry(t, streaker, 1)
	f.entry(t, streaker, 2)
	idle := f.owner(t, "idle")
	done := f.owner(t, "done")
	f.entry(t, done, 0)

	sent, err := f.svc.Sweep(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	var reminders []models.JournalReminderModel
	require.NoError(t, f.db.Order("kind").Find(&reminders).Error)
	require.Len(t, reminders, 2)
	byOwner := map[string]models.JournalReminderModel{}
	for _, r := range reminders {
		byOwner[r.OwnerID] = r
	}
	assert.Equal(t, models.ReminderStreak, byOwner[streaker].Kind)
	assert.Equal(t, 2, byOwner[streaker].Streak)
	assert.Equal(t, models.ReminderRegular, byOwner[idle].Kind)
	assert.NotContains(t, byOwner, done)

	var notes []models.NotificationModel
	require.NoError(t, f.db.Where("kind = ?", models.NotificationInactivity).Find(&notes).Error)
	require.Len(t, notes, 2)
	for _, n := range notes {
		assert.Equal(t, models.SeverityLow, n.Severity)
		if n.OwnerID == streaker {
			assert.Contains(t, n.Message, "2-day")
		}
	}

	f.now = f.now.Add(time.Hour)
	sent, err = f.svc.Sweep(ctx, 2)
	require.NoError(t, err)
	assert.Zero(t, sent, "already reminded today")
}

func TestRemindRespectsCooldown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.owner(t, "late")

	ok, err := f.svc.Remind(ctx, id, f.now)
	require.NoError(t, err)
	assert.True(t, ok)

	// Next morning is a new day but still inside the 24h cooldown.
	ok, err = f.svc.Remind(ctx, id, f.now.Add(12*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.svc.Remind(ctx, id, f.now.Add(25*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)
}
