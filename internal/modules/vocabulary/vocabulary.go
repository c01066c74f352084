// Package vocabulary holds the fixed emotion and mood tables: classifier
// labels, label to mood mapping, mood weights and categories, and the cause
// to recommendation category lookup.
package vocabulary

import (
	"maps"
	"slices"
	"strings"
)

const (
	DefaultMood     = "neutral"
	GeneralCategory = "general_wellbeing"
)

type Category string

const (
	Positive Category = "positive"
	Negative Category = "negative"
	Neutral  Category = "neutral"
)

// Vocabulary is an immutable set of lookup tables. Use Default for the
// built-in tables or Extend to derive a modified copy.
type Vocabulary struct {
	labels          []string
	labelMood       map[string]string
	moods           []string
	weights         map[string]float64
	categories      map[string]Category
	sad             map[string]struct{}
	causeCategories map[string]string
}

var std = &Vocabulary{
	labels:          slices.Sorted(maps.Keys(labelMood)),
	labelMood:       labelMood,
	moods:           moods,
	weights:         moodWeights,
	categories:      moodCategories,
	sad:             sadMoods,
	causeCategories: causeCategories,
}

// Default returns the built-in vocabulary.
func Default() *Vocabulary { return std }

// Extension overrides or adds entries on top of an existing vocabulary.
type Extension struct {
	LabelMood       map[string]string
	CauseCategories map[string]string
}

// Extend returns a copy of v with ext merged in. v is left untouched.
func (v *Vocabulary) Extend(ext Extension) *Vocabulary {
	out := &Vocabulary{
		labelMood:       maps.Clone(v.labelMood),
		moods:           v.moods,
		weights:         v.weights,
		categories:      v.categories,
		sad:             v.sad,
		causeCategories: maps.Clone(v.causeCategories),
	}
	for label, mood := range ext.LabelMood {
		out.labelMood[normalizeKey(label)] = mood
	}
	for cause, category := range ext.CauseCategories {
		out.causeCategories[normalizeKey(cause)] = category
	}
	out.labels = slices.Sorted(maps.Keys(out.labelMood))
	return out
}

// Labels returns the classifier label vocabulary, sorted.
func (v *Vocabulary) Labels() []string { return slices.Clone(v.labels) }

func (v *Vocabulary) IsLabel(label string) bool {
	_, ok := v.labelMood[normalizeKey(label)]
	return ok
}

// Moods returns the mood vocabulary in display order.
func (v *Vocabulary) Moods() []string { return slices.Clone(v.moods) }

func (v *Vocabulary) IsMood(mood string) bool {
	_, ok := v.weights[mood]
	return ok
}

// MoodFor maps a classifier label to a mood. Unknown labels map to DefaultMood.
func (v *Vocabulary) MoodFor(label string) string {
	if mood, ok := v.labelMood[normalizeKey(label)]; ok {
		return mood
	}
	return DefaultMood
}

// Weight returns the signed score weight of a mood; unknown moods weigh 0.
func (v *Vocabulary) Weight(mood string) float64 {
	return v.weights[mood]
}

func (v *Vocabulary) CategoryOf(mood string) Category {
	if c, ok := v.categories[mood]; ok {
		return c
	}
	return Neutral
}

// IsSad reports whether mood counts toward sustained sadness.
func (v *Vocabulary) IsSad(mood string) bool {
	_, ok := v.sad[mood]
	return ok
}

// CategoryForCause maps a free-text cause tag to a recommendation category,
// falling back to GeneralCategory.
func (v *Vocabulary) CategoryForCause(cause string) string {
	if c, ok := v.causeCategories[normalizeKey(cause)]; ok {
		return c
	}
	return GeneralCategory
}

func normalizeKey(raw string) string {
	k := strings.ToLower(strings.TrimSpace(raw))
	k = strings.ReplaceAll(k, "-", "_")
	k = strings.ReplaceAll(k, " ", "_")
	return k
}
