package responses

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailWithDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	FailWithDetail(c, http.StatusInternalServerError, errors.New("blocked"), "The AI request was blocked",
		map[string]any{"reason": "SAFETY", "status": "ignored"})

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "SAFETY", body["reason"])
	assert.Equal(t, "blocked", body["error"])
}

func TestFailWithoutDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	FailWithDetail(c, http.StatusNotFound, nil, "Project not found", nil)

	var body APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "Project not found", body.Message)
	assert.Empty(t, body.Error)
}
