package emotion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/serenitysphere/core/internal/models"
)

// HTTP calls a model inference service. The service accepts {"text": ...}
// on POST /classify and answers with a list of {label, score}; the nested
// list shape of hosted text-classification endpoints is accepted too.
type HTTP struct {
	client *resty.Client
}

func NewHTTP(endpoint, apiKey string, timeout time.Duration) *HTTP {
	c := resty.New().
		SetBaseURL(strings.TrimRight(endpoint, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	if k := strings.TrimSpace(apiKey); k != "" {
		c.SetAuthToken(k)
	}
	return &HTTP{client: c}
}

type classifyRequest struct {
	Text string `json:"text"`
}

type labelScore struct {
	Label      string   `json:"label"`
	Score      *float64 `json:"score"`
	Confidence *float64 `json:"confidence"`
}

func (h *HTTP) Classify(ctx context.Context, text string) ([]models.EmotionScore, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(&classifyRequest{Text: text}).
		Post("/classify")
	if err != nil {
		return nil, fmt.Errorf("classifier request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("classifier status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return decodeLabelScores(resp.Body())
}

func decodeLabelScores(body []byte) ([]models.EmotionScore, error) {
	var flat []labelScore
	if err := json.Unmarshal(body, &flat); err != nil {
		var nested [][]labelScore
		if err2 := json.Unmarshal(body, &nested); err2 != nil {
			var wrapped struct {
				Emotions []labelScore `json:"emotions"`
			}
			if err3 := json.Unmarshal(body, &wrapped); err3 != nil {
				return nil, fmt.Errorf("decode classifier response: %w", err)
			}
			flat = wrapped.Emotions
		} else if len(nested) > 0 {
			flat = nested[0]
		}
	}

	out := make([]models.EmotionScore, 0, len(flat))
	for _, ls := range flat {
		var c *float64
		switch {
		case ls.Score != nil:
			c = ls.Score
		case ls.Confidence != nil:
			c = ls.Confidence
		default:
			return nil, errors.New("classifier response item has no score")
		}
		out = append(out, models.EmotionScore{Label: ls.Label, Confidence: *c})
	}
	return out, nil
}
