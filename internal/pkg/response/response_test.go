package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/serenitysphere/core/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
	}{
		{apperr.Validation("text is empty"), http.StatusBadRequest},
		{apperr.NotFound("owner not found"), http.StatusNotFound},
		{apperr.Classification(errors.New("timeout"), "classifier unavailable"), http.StatusServiceUnavailable},
		{apperr.Store(errors.New("io"), "persistence failure"), http.StatusInternalServerError},
		{apperr.Conflict("two linked mood records"), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		Error(c, tc.err)

		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.EqualValues(t, 0, body["ok"])
		assert.EqualValues(t, tc.status, body["code"])
	}
}

func TestConflictMessageIsNotLeaked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Error(c, apperr.Conflict("entry abc has 2 mood records"))
	assert.NotContains(t, w.Body.String(), "abc")
}

func TestOKWrapsSlices(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	OK(c, []string{"a"})
	assert.JSONEq(t, `{"data":["a"]}`, w.Body.String())
}
