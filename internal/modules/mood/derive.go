package mood

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/modules/vocabulary"
)

const (
	minIntensity = 1
	maxIntensity = 10
)

// Draft is a mood derived from one entry's emotion scores, not yet stored.
type Draft struct {
	Mood       string
	Intensity  int
	Note       string
	Label      string
	Confidence float64
}

// Derive picks the dominant emotion and maps it to a mood. It returns false
// for an empty score list. Equal confidences keep their input order, so the
// result depends only on the list contents and order.
func Derive(v *vocabulary.Vocabulary, scores []models.EmotionScore) (Draft, bool) {
	if len(scores) == 0 {
		return Draft{}, false
	}
	top := Rank(scores)[0]
	return Draft{
		Mood:       v.MoodFor(top.Label),
		Intensity:  Intensity(top.Confidence),
		Note:       fmt.Sprintf("derived from %s (%.2f)", displayLabel(top.Label), top.Confidence),
		Label:      top.Label,
		Confidence: top.Confidence,
	}, true
}

// Rank returns a copy of scores with confidences clamped to [0,1], ordered
// by confidence descending. The sort is stable.
func Rank(scores []models.EmotionScore) []models.EmotionScore {
	ranked := make([]models.EmotionScore, len(scores))
	for i, s := range scores {
		ranked[i] = models.EmotionScore{Label: s.Label, Confidence: clampConfidence(s.Confidence)}
	}
	slices.SortStableFunc(ranked, func(a, b models.EmotionScore) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	return ranked
}

// Intensity converts a confidence to the 1..10 intensity scale.
func Intensity(confidence float64) int {
	i := int(math.Round(clampConfidence(confidence) * 10))
	return max(minIntensity, min(maxIntensity, i))
}

// clampConfidence maps NaN to 0 and clamps into [0,1].
func clampConfidence(c float64) float64 {
	if math.IsNaN(c) || c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

func displayLabel(label string) string {
	if l := strings.TrimSpace(label); l != "" {
		return l
	}
	return "unknown"
}
