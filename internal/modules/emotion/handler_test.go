package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/serenitysphere/core/internal/models"
	"github.com/serenitysphere/core/internal/modules/mood"
	"github.com/serenitysphere/core/internal/modules/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDetectRouter(c Classifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v := vocabulary.Default()
	h := NewHandler(c, func(s []models.EmotionScore) (mood.Draft, bool) { return mood.Derive(v, s) })
	h.RegisterRoutes(r.Group("/api/v1"), func(c *gin.Context) { c.Next() })
	return r
}

func postDetect(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/emotions/detect", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestDetectEndpoint(t *testing.T) {
	r := newDetectRouter(NewFiltered(fixed(
		models.EmotionScore{Label: "excitement", Confidence: 0.4},
		models.EmotionScore{Label: "joy", Confidence: 0.82},
	), vocabulary.Default()))

	w := postDetect(r, `{"text":"great news"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body detectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "joy 82%, excitement 40%", body.Formatted)
	assert.Equal(t, "happy", body.Mood)
	assert.Equal(t, 8, body.Intensity)
	assert.Equal(t, "joy", body.Emotions[0].Label)
}

func TestDetectValidationAndUnavailable(t *testing.T) {
	r := newDetectRouter(NewFiltered(ClassifierFunc(func(context.Context, string) ([]models.EmotionScore, error) {
		return nil, errors.New("down")
	}), vocabulary.Default()))

	assert.Equal(t, http.StatusBadRequest, postDetect(r, `{"text":"   "}`).Code)
	assert.Equal(t, http.StatusBadRequest, postDetect(r, `{}`).Code)

	w := postDetect(r, `{"text":"hello"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "5", w.Header().Get("Retry-After"))
}
