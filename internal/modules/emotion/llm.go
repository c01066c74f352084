package emotion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	neturl "net/url"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/modules/vocabulary"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"
)

const llmMaxOutputTokens = 400

// LLM asks a chat model to score text against the vocabulary labels.
type LLM struct {
	model  jetapi.LanguageModel
	system string
}

func NewLLM(provider, endpoint, apiKey, modelID string, vocab *vocabulary.Vocabulary) (*LLM, error) {
	model, err := buildLanguageModel(provider, endpoint, apiKey, modelID)
	if err != nil {
		return nil, err
	}
	return &LLM{model: model, system: buildSystemPrompt(vocab.Labels())}, nil
}

func buildSystemPrompt(labels []string) string {
	return "You label the emotions expressed in a personal journal entry.\n" +
		"Allowed labels: " + strings.Join(labels, ", ") + ".\n" +
		"Score every label that is present with a confidence between 0 and 1.\n" +
		`Reply with JSON only: {"emotions":[{"label":"joy","confidence":0.82}]}`
}

func (l *LLM) Classify(ctx context.Context, text string) ([]models.EmotionScore, error) {
	resp, err := jetai.GenerateText(
		ctx,
		[]jetapi.Message{
			&jetapi.SystemMessage{Content: l.system},
			&jetapi.UserMessage{Content: jetapi.ContentFromText(text)},
		},
		jetai.WithModel(l.model),
		jetai.WithMaxOutputTokens(llmMaxOutputTokens),
	)
	if err != nil {
		return nil, err
	}
	raw, err := extractText(resp)
	if err != nil {
		return nil, err
	}

	var out struct {
		Emotions []labelScore `json:"emotions"`
	}
	if err := unmarshalModelJSON(raw, &out); err != nil {
		return nil, err
	}
	scores := make([]models.EmotionScore, 0, len(out.Emotions))
	for _, e := range out.Emotions {
		c := e.Confidence
		if c == nil {
			c = e.Score
		}
		if c == nil {
			continue
		}
		scores = append(scores, models.EmotionScore{Label: e.Label, Confidence: *c})
	}
	return scores, nil
}

func extractText(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", errors.New("empty response from model")
	}
	var full strings.Builder
	for _, block := range resp.Content {
		if tb, ok := block.(*jetapi.TextBlock); ok {
			full.WriteString(tb.Text)
		}
	}
	if strings.TrimSpace(full.String()) == "" {
		return "", errors.New("empty response from model")
	}
	return full.String(), nil
}

// unmarshalModelJSON tolerates code fences and prose around the JSON object.
func unmarshalModelJSON(raw string, out any) error {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), out); err == nil {
			return nil
		}
	}
	return fmt.Errorf("invalid JSON response from model")
}

func buildLanguageModel(provider, endpoint, apiKey, modelID string) (jetapi.LanguageModel, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("classifier api key is empty")
	}
	modelID = strings.TrimSpace(modelID)
	endpoint = strings.TrimSpace(endpoint)

	if provider == "anthropic" {
		if modelID == "" {
			modelID = "claude-haiku-4-5-20251001"
		}
		opts := []anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(apiKey),
			anthropicoption.WithMaxRetries(0),
		}
		if endpoint != "" {
			opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
		}
		client := anthropicclient.NewClient(opts...)
		return jetanthropic.NewLanguageModel(modelID, jetanthropic.WithClient(client)), nil
	}

	if modelID == "" {
		modelID = "gpt-4o-mini"
	}
	if provider == "openai-compatible" && endpoint == "" {
		return nil, errors.New("openai-compatible classifier needs an endpoint")
	}
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(0),
	}
	if base := normalizeOpenAIBaseURL(endpoint); base != "" {
		opts = append(opts, openaioption.WithBaseURL(base))
	}
	client := openaiclient.NewClient(opts...)
	return jetopenai.NewLanguageModel(modelID, jetopenai.WithClient(client)), nil
}

func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}
	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		path += "/v1"
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}
