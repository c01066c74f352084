package mood

import (
	"fmt"
	"strings"

	"github.com/serenitysphere/core/internal/models"
)

// NoEmotions is what FormatScores renders for an empty list.
const NoEmotions = "no emotions detected"

// FormatScores renders scores as "joy 82%, excitement 40%", strongest first.
// It is total: out-of-range or NaN confidences are clamped and blank labels
// render as "unknown".
func FormatScores(scores []models.EmotionScore) string {
	if len(scores) == 0 {
		return NoEmotions
	}
	parts := make([]string, 0, len(scores))
	for _, s := range Rank(scores) {
		parts = append(parts, fmt.Sprintf("%s %d%%", displayLabel(s.Label), int(s.Confidence*100+0.5)))
	}
	return strings.Join(parts, ", ")
}
