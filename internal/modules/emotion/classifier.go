// Package emotion holds the clients that score journal text against the
// emotion vocabulary. Every backend satisfies Classifier; the journal and
// detect endpoints only ever see the Filtered, time-bounded wrapper.
package emotion

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/serenitysphere/core/internal/config"
	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/modules/vocabulary"
	"github.com/serenitysphere/core/internal/pkg/apperr"
	"go.uber.org/zap"
)

// Classifier scores text. Results are unordered and unfiltered.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]models.EmotionScore, error)
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(ctx context.Context, text string) ([]models.EmotionScore, error)

func (f ClassifierFunc) Classify(ctx context.Context, text string) ([]models.EmotionScore, error) {
	return f(ctx, text)
}

// Filtered bounds a backend by a timeout, drops labels outside the
// vocabulary and keeps only scores at or above the threshold. Backend
// failures come back as classification errors.
type Filtered struct {
	backend   Classifier
	vocab     *vocabulary.Vocabulary
	threshold float64
	timeout   time.Duration
	logger    *zap.Logger
}

type FilterOption func(*Filtered)

func WithLogger(l *zap.Logger) FilterOption {
	return func(f *Filtered) {
		if l != nil {
			f.logger = l.Named("EmotionClassifier")
		}
	}
}

func WithThreshold(t float64) FilterOption {
	return func(f *Filtered) { f.threshold = t }
}

func WithTimeout(d time.Duration) FilterOption {
	return func(f *Filtered) { f.timeout = d }
}

func NewFiltered(backend Classifier, vocab *vocabulary.Vocabulary, opts ...FilterOption) *Filtered {
	f := &Filtered{
		backend:   backend,
		vocab:     vocab,
		threshold: 0.1,
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *Filtered) Classify(ctx context.Context, text string) ([]models.EmotionScore, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	type result struct {
		scores []models.EmotionScore
		err    error
	}
	done := make(chan result, 1)
	go func() {
		s, err := f.backend.Classify(ctx, text)
		done <- result{s, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}
	if res.err != nil {
		f.logger.Warn("classifier failed", zap.Error(res.err))
		if errors.Is(res.err, context.DeadlineExceeded) {
			return nil, apperr.Classification(res.err, "emotion classifier timed out")
		}
		return nil, apperr.Classification(res.err, "emotion classifier unavailable")
	}

	out := make([]models.EmotionScore, 0, len(res.scores))
	for _, s := range res.scores {
		label := strings.ToLower(strings.TrimSpace(s.Label))
		if !f.vocab.IsLabel(label) {
			continue
		}
		if math.IsNaN(s.Confidence) || s.Confidence < f.threshold {
			continue
		}
		out = append(out, models.EmotionScore{Label: label, Confidence: min(s.Confidence, 1)})
	}
	return out, nil
}

// New builds the configured backend wrapped in Filtered.
func New(cfg config.ClassifierConfig, vocab *vocabulary.Vocabulary, logger *zap.Logger) (*Filtered, error) {
	var backend Classifier
	switch cfg.Provider {
	case "http":
		backend = NewHTTP(cfg.Endpoint, cfg.APIKey, cfg.Timeout)
	case "openai", "anthropic", "openai-compatible":
		llm, err := NewLLM(cfg.Provider, cfg.Endpoint, cfg.APIKey, cfg.Model, vocab)
		if err != nil {
			return nil, err
		}
		backend = llm
	case "lexicon":
		backend = NewLexicon()
	default:
		return nil, fmt.Errorf("unknown classifier provider %q", cfg.Provider)
	}
	return NewFiltered(backend, vocab,
		WithThreshold(cfg.Threshold),
		WithTimeout(cfg.Timeout),
		WithLogger(logger),
	), nil
}
