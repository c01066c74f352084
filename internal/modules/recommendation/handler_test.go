package recommendation

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/serenitysphere/core/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(f *fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	fakeAuth := func(c *gin.Context) {
		c.Set(middleware.ContextKeyOwnerID, f.owner)
		c.Next()
	}
	NewHandler(f.svc).RegisterRoutes(r.Group("/api/v1"), fakeAuth)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerCauseAndFeedback(t *testing.T) {
	f := newFixture(t)
	r := newRouter(f)

	w := do(r, http.MethodPost, "/api/v1/moods/causes", `{"cause":"burnout","notes":"deadlines"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var cause causeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cause))
	assert.Equal(t, "burnout", cause.Cause)
	require.Len(t, cause.Recommendations, 3)
	for _, it := range cause.Recommendations {
		assert.Equal(t, "work", it.Category)
		assert.NotEmpty(t, it.ExposureID)
	}

	w = do(r, http.MethodPost, "/api/v1/recommendations/exposures/"+cause.Recommendations[0].ExposureID+"/feedback",
		`{"is_helpful":true,"feedback":"nice"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var fb exposureResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fb))
	require.NotNil(t, fb.IsHelpful)
	assert.True(t, *fb.IsHelpful)
	require.NotNil(t, fb.CauseID)
	assert.Equal(t, cause.ID, *fb.CauseID)

	w = do(r, http.MethodPost, "/api/v1/recommendations/exposures/"+cause.Recommendations[0].ExposureID+"/feedback", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerList(t *testing.T) {
	f := newFixture(t)
	r := newRouter(f)

	w := do(r, http.MethodGet, "/api/v1/recommendations?cause=financial&limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []itemResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	for _, it := range body.Data {
		assert.Equal(t, "financial", it.Category)
	}

	w = do(r, http.MethodGet, "/api/v1/recommendations?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
