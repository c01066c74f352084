package trend

import (
	"testing"

	"github.com/serenitysphere/core/internal/config"
	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/modules/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(mood string, intensity int) models.MoodRecordModel {
	return models.MoodRecordModel{Mood: mood, Intensity: intensity}
}

func TestScore(t *testing.T) {
	v := vocabulary.Default()
	r := rec("happy", 8)
	assert.InDelta(t, 0.8, Score(v, &r), 1e-9)
	r = rec("sad", 5)
	assert.InDelta(t, -0.4, Score(v, &r), 1e-9)
	r = rec("neutral", 10)
	assert.Zero(t, Score(v, &r))
}

func TestDetectShift(t *testing.T) {
	v := vocabulary.Default()
	cfg := config.Default().Trend

	cases := []struct {
		name     string
		recs     []models.MoodRecordModel
		kind     models.NotificationKind
		severity models.Severity
		found    bool
	}{
		{"improving", []models.MoodRecordModel{rec("happy", 8), rec("happy", 8), rec("sad", 6), rec("sad", 6)},
			models.NotificationPositiveReinforcement, models.SeverityLow, true},
		{"moderate drop", []models.MoodRecordModel{rec("neutral", 5), rec("neutral", 5), rec("calm", 6), rec("calm", 6)},
			models.NotificationMoodShift, models.SeverityMedium, true},
		{"sharp drop", []models.MoodRecordModel{rec("sad", 8), rec("happy", 8)},
			models.NotificationMoodShift, models.SeverityHigh, true},
		{"stable", []models.MoodRecordModel{rec("calm", 5), rec("calm", 6), rec("calm", 5), rec("calm", 4)},
			"", "", false},
		{"single record", []models.MoodRecordModel{rec("sad", 10)}, "", "", false},
		{"odd count puts extra record in older half", []models.MoodRecordModel{rec("happy", 10), rec("happy", 10), rec("happy", 10)},
			"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, ok := detectShift(v, cfg, tc.recs)
			require.Equal(t, tc.found, ok)
			if ok {
				assert.Equal(t, tc.kind, f.kind)
				assert.Equal(t, tc.severity, f.severity)
				assert.NotEmpty(t, f.message)
			}
		})
	}
}

func TestDetectSadness(t *testing.T) {
	v := vocabulary.Default()
	cfg := config.Default().Trend

	f, ok := detectSadness(v, cfg, []models.MoodRecordModel{
		rec("happy", 8), rec("sad", 6), rec("grieving", 7), rec("disappointed", 5),
	})
	require.True(t, ok)
	assert.Equal(t, models.NotificationExtendedSadness, f.kind)
	assert.Equal(t, models.SeverityMedium, f.severity)

	_, ok = detectSadness(v, cfg, []models.MoodRecordModel{rec("sad", 6), rec("sad", 6)})
	assert.False(t, ok, "count below minimum")

	_, ok = detectSadness(v, cfg, []models.MoodRecordModel{
		rec("sad", 6), rec("sad", 6), rec("sad", 6), rec("happy", 6), rec("calm", 6), rec("calm", 6),
	})
	assert.False(t, ok, "ratio below minimum")

	_, ok = detectSadness(v, cfg, []models.MoodRecordModel{rec("angry", 9), rec("anxious", 9), rec("angry", 9)})
	assert.False(t, ok, "negative but not sad")

	_, ok = detectSadness(v, cfg, nil)
	assert.False(t, ok)
}

func TestCooldownFor(t *testing.T) {
	cfg := config.Default().Trend
	assert.Equal(t, cfg.ShiftCooldown, cooldownFor(cfg, models.NotificationMoodShift))
	assert.Equal(t, cfg.ReinforcementCooldown, cooldownFor(cfg, models.NotificationPositiveReinforcement))
	assert.Equal(t, cfg.SadnessCooldown, cooldownFor(cfg, models.NotificationExtendedSadness))
	assert.Equal(t, cfg.InactivityCooldown, cooldownFor(cfg, models.NotificationInactivity))
}
