package trend

import (
	"fmt"
	"math"
	"time"

	"github.com/serenitysphere/core/internal/config"
	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/modules/vocabulary"
)

// finding is a notification the detectors want to emit, before dedup.
type finding struct {
	kind     models.NotificationKind
	severity models.Severity
	message  string
}

// Score is a record's signed contribution: the mood weight scaled by intensity.
func Score(v *vocabulary.Vocabulary, r *models.MoodRecordModel) float64 {
	return v.Weight(r.Mood) * float64(r.Intensity) / 10
}

func mean(v *vocabulary.Vocabulary, recs []models.MoodRecordModel) float64 {
	if len(recs) == 0 {
		return 0
	}
	sum := 0.0
	for i := range recs {
		sum += Score(v, &recs[i])
	}
	return sum / float64(len(recs))
}

// detectShift compares the newer half of the latest records with the older
// half. newestFirst must be ordered newest first and already cut to the
// window. An odd record goes to the older half.
func detectShift(v *vocabulary.Vocabulary, cfg config.TrendConfig, newestFirst []models.MoodRecordModel) (finding, bool) {
	if len(newestFirst) < 2 {
		return finding{}, false
	}
	half := len(newestFirst) / 2
	delta := mean(v, newestFirst[:half]) - mean(v, newestFirst[half:])

	switch {
	case delta >= cfg.PosThreshold:
		return finding{
			kind:     models.NotificationPositiveReinforcement,
			severity: models.SeverityLow,
			message:  "Your mood has shown consistent improvement!",
		}, true
	case delta <= -cfg.NegThreshold:
		sev := models.SeverityMedium
		if math.Abs(delta) > cfg.HighThreshold {
			sev = models.SeverityHigh
		}
		return finding{
			kind:     models.NotificationMoodShift,
			severity: sev,
			message:  "We noticed a significant mood shift",
		}, true
	}
	return finding{}, false
}

// detectSadness flags a window dominated by sad moods. Both the absolute
// count and the share of the window must reach their thresholds.
func detectSadness(v *vocabulary.Vocabulary, cfg config.TrendConfig, window []models.MoodRecordModel) (finding, bool) {
	if len(window) == 0 {
		return finding{}, false
	}
	sad := 0
	for i := range window {
		if v.IsSad(window[i].Mood) {
			sad++
		}
	}
	ratio := float64(sad) / float64(len(window))
	if sad < cfg.SadMinCount || ratio < cfg.SadMinRatio {
		return finding{}, false
	}
	return finding{
		kind:     models.NotificationExtendedSadness,
		severity: models.SeverityMedium,
		message: fmt.Sprintf("You've logged a sad mood %d times in the last %d days. Would you like to talk about what's been going on?",
			sad, cfg.SadWindowDays),
	}, true
}

func cooldownFor(cfg config.TrendConfig, kind models.NotificationKind) time.Duration {
	switch kind {
	case models.NotificationMoodShift:
		return cfg.ShiftCooldown
	case models.NotificationPositiveReinforcement:
		return cfg.ReinforcementCooldown
	case models.NotificationExtendedSadness:
		return cfg.SadnessCooldown
	case models.NotificationInactivity:
		return cfg.InactivityCooldown
	}
	return 0
}
