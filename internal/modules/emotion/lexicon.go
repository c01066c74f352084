package emotion

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"unicode"

	"github.com/serenitysphere/core/internal/models"
)

// lexiconCues maps word stems and short phrases to labels.
var lexiconCues = map[string]string{
	"happ": "joy", "joy": "joy", "glad": "joy", "delight": "joy", "great": "joy",
	"excit": "excitement", "thrill": "excitement", "can't wait": "excitement",
	"love": "love", "ador": "love",
	"thank": "gratitude", "grateful": "gratitude", "appreciat": "gratitude",
	"proud": "pride", "accomplish": "pride",
	"hope": "optimism", "optimis": "optimism", "looking forward": "optimism",
	"reliev": "relief", "relief": "relief",
	"calm": "approval", "fine": "approval",
	"funny": "amusement", "laugh": "amusement",
	"curious": "curiosity", "wondering": "curiosity",
	"confus": "confusion", "unsure": "confusion",
	"surpris": "surprise", "shock": "surprise",
	"sad": "sadness", "sadness": "sadness", "unhapp": "sadness", "cry": "sadness", "crying": "sadness", "cried": "sadness", "hopeless": "sadness", "lonely": "sadness", "feeling down": "sadness",
	"griev": "grief", "grief": "grief", "loss": "grief",
	"disappoint": "disappointment", "let down": "disappointment",
	"sorry": "remorse", "regret": "remorse", "guilt": "remorse",
	"angry": "anger", "furious": "anger", "rage": "anger", "mad": "anger",
	"annoy": "annoyance", "irritat": "annoyance", "frustrat": "annoyance",
	"disgust": "disgust", "gross": "disgust",
	"afraid": "fear", "scared": "fear", "fear": "fear", "terrif": "fear",
	"anxi": "nervousness", "nervous": "nervousness", "worr": "nervousness", "stress": "nervousness",
	"embarrass": "embarrassment", "ashamed": "embarrassment",
	"caring": "caring", "support": "caring",
	"wish": "desire", "longing": "desire",
	"realiz": "realization",
	"disagree": "disapproval", "wrong": "disapproval",
	"admir": "admiration", "amazing": "admiration",
}

type cue struct {
	text  string
	label string
}

// Lexicon is an offline keyword scorer used when no model is reachable.
// A label's confidence is its share of all cue hits. Cues of four letters or
// more match as prefixes, shorter ones only as whole words.
type Lexicon struct {
	phrases []cue
	words   []cue
}

func NewLexicon() *Lexicon {
	l := &Lexicon{}
	for text, label := range lexiconCues {
		if strings.Contains(text, " ") {
			l.phrases = append(l.phrases, cue{text, label})
		} else {
			l.words = append(l.words, cue{text, label})
		}
	}
	byLength := func(a, b cue) int {
		if c := cmp.Compare(len(b.text), len(a.text)); c != 0 {
			return c
		}
		return strings.Compare(a.text, b.text)
	}
	slices.SortFunc(l.phrases, byLength)
	slices.SortFunc(l.words, byLength)
	return l
}

func (c cue) matches(token string) bool {
	if len(c.text) < 4 {
		return token == c.text
	}
	return strings.HasPrefix(token, c.text)
}

func (l *Lexicon) Classify(ctx context.Context, text string) ([]models.EmotionScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lower := strings.ToLower(text)
	tokens := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	hits := map[string]int{}
	var order []string
	total := 0
	bump := func(label string) {
		if hits[label] == 0 {
			order = append(order, label)
		}
		hits[label]++
		total++
	}
	for _, p := range l.phrases {
		if strings.Contains(lower, p.text) {
			bump(p.label)
		}
	}
	for _, tok := range tokens {
		for _, w := range l.words {
			if w.matches(tok) {
				bump(w.label)
				break
			}
		}
	}
	if total == 0 {
		return []models.EmotionScore{{Label: "neutral", Confidence: 0.5}}, nil
	}

	out := make([]models.EmotionScore, 0, len(order))
	for _, label := range order {
		out = append(out, models.EmotionScore{Label: label, Confidence: float64(hits[label]) / float64(total)})
	}
	return out, nil
}
