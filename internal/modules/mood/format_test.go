package mood

import (
	"math"
	"testing"

	"github.com/serenitysphere/core/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFormatScores(t *testing.T) {
	assert.Equal(t, NoEmotions, FormatScores(nil))
	assert.Equal(t, "joy 82%, excitement 40%", FormatScores(scores("excitement", 0.4, "joy", 0.82)))
	assert.Equal(t, "unknown 100%, fear 0%",
		FormatScores([]models.EmotionScore{{Label: "fear", Confidence: math.NaN()}, {Label: "  ", Confidence: 3}}))
	assert.Equal(t, "anger 0%", FormatScores(scores("anger", -1.0)))
}
