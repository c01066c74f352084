package vocabulary

// labelMood covers the 28 GoEmotions labels.
var labelMood = map[string]string{
	"admiration":     "happy",
	"amusement":      "amused",
	"anger":          "angry",
	"annoyance":      "annoyed",
	"approval":       "calm",
	"caring":         "caring",
	"confusion":      "confused",
	"curiosity":      "curious",
	"desire":         "excited",
	"disappointment": "disappointed",
	"disapproval":    "disapproving",
	"disgust":        "disgusted",
	"embarrassment":  "embarrassed",
	"excitement":     "excited",
	"fear":           "anxious",
	"gratitude":      "grateful",
	"grief":          "grieving",
	"joy":            "happy",
	"love":           "loving",
	"nervousness":    "nervous",
	"optimism":       "optimistic",
	"pride":          "proud",
	"realization":    "curious",
	"relief":         "relieved",
	"remorse":        "remorseful",
	"sadness":        "sad",
	"surprise":       "surprised",
	"neutral":        "neutral",
}

var moods = []string{
	"happy", "sad", "anxious", "calm", "angry", "excited", "neutral",
	"amused", "loving", "optimistic", "caring", "proud", "grateful",
	"relieved", "surprised", "curious", "confused", "nervous", "remorseful",
	"embarrassed", "disappointed", "grieving", "disgusted", "annoyed", "disapproving",
}

var moodWeights = map[string]float64{
	"happy":      1.0,
	"excited":    0.9,
	"loving":     0.9,
	"optimistic": 0.85,
	"proud":      0.8,
	"grateful":   0.8,
	"relieved":   0.75,
	"amused":     0.7,
	"calm":       0.6,
	"caring":     0.6,
	"surprised":  0.5,
	"curious":    0.5,

	"neutral":  0.0,
	"confused": -0.1,

	"anxious":      -0.8,
	"nervous":      -0.7,
	"embarrassed":  -0.6,
	"disappointed": -0.7,
	"annoyed":      -0.6,
	"disapproving": -0.65,
	"sad":          -0.8,
	"angry":        -0.9,
	"grieving":     -0.95,
	"disgusted":    -0.85,
	"remorseful":   -0.75,
}

var moodCategories = map[string]Category{
	"happy": Positive, "calm": Positive, "excited": Positive, "amused": Positive,
	"loving": Positive, "optimistic": Positive, "caring": Positive, "proud": Positive,
	"grateful": Positive, "relieved": Positive,

	"sad": Negative, "anxious": Negative, "angry": Negative, "nervous": Negative,
	"remorseful": Negative, "embarrassed": Negative, "disappointed": Negative,
	"grieving": Negative, "disgusted": Negative, "annoyed": Negative, "disapproving": Negative,

	"neutral": Neutral, "surprised": Neutral, "curious": Neutral, "confused": Neutral,
}

var sadMoods = map[string]struct{}{
	"sad":          {},
	"grieving":     {},
	"disappointed": {},
	"remorseful":   {},
}

// causeCategories maps cause tags offered to owners onto catalog categories.
var causeCategories = map[string]string{
	// negative
	"loss":         "grief",
	"grief":        "grief",
	"chronic":      "grief",
	"loneliness":   "loneliness",
	"isolation":    "loneliness",
	"stress":       "stress",
	"academic":     "stress",
	"sleep":        "stress",
	"work":         "work",
	"job":          "work",
	"burnout":      "work",
	"health":       "health",
	"relationship": "relationship",
	"conflict":     "relationship",
	"boundary":     "relationship",
	"financial":    "financial",
	"injustice":    "anger",
	"anger":        "anger",
	"anxiety":      "anxiety",
	"fear":         "anxiety",
	"setback":      "disappointment",
	"motivation":   "optimism",
	"seasonal":     "optimism",
	"uncertainty":  "confusion",

	// positive
	"achievement":     "achievement",
	"connection":      "relationship",
	"gratitude":       "gratitude",
	"creative":        "creative",
	"self_care":       "joy",
	"new_opportunity": "transition",
	"change":          "transition",
	"other_positive":  "joy",

	"other":          GeneralCategory,
	"other_negative": GeneralCategory,
}
