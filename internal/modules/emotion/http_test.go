package emotion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/serenitysphere/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/classify", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var req classifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a good day", req.Text)
		_, _ = w.Write([]byte(`[{"label":"joy","score":0.82},{"label":"excitement","score":0.4}]`))
	}))
	defer srv.Close()

	got, err := NewHTTP(srv.URL, "secret", time.Second).Classify(context.Background(), "a good day")
	require.NoError(t, err)
	assert.Equal(t, []models.EmotionScore{{Label: "joy", Confidence: 0.82}, {Label: "excitement", Confidence: 0.4}}, got)
}

func TestHTTPClassifyErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL, "", time.Second).Classify(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestDecodeLabelScoresShapes(t *testing.T) {
	nested, err := decodeLabelScores([]byte(`[[{"label":"sadness","score":0.7}]]`))
	require.NoError(t, err)
	assert.Equal(t, []models.EmotionScore{{Label: "sadness", Confidence: 0.7}}, nested)

	wrapped, err := decodeLabelScores([]byte(`{"emotions":[{"label":"fear","confidence":0.3}]}`))
	require.NoError(t, err)
	assert.Equal(t, []models.EmotionScore{{Label: "fear", Confidence: 0.3}}, wrapped)

	empty, err := decodeLabelScores([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = decodeLabelScores([]byte(`[{"label":"joy"}]`))
	assert.Error(t, err)
	_, err = decodeLabelScores([]byte(`not json`))
	assert.Error(t, err)
}
