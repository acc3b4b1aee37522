package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyberguard-ai/pkg/logger"
)

func TestHealthCheckGroqConfigured(t *testing.T) {
	h := NewHealthHandler(&stubAnalyzer{available: true}, nil, logger.NewDefault())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Check(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Timestamp)

	groq, ok := resp.Services["groq"]
	require.True(t, ok)
	assert.True(t, groq.Available)
	assert.Equal(t, "Groq API is configured and ready", groq.Message)
}

func TestHealthCheckGroqMissing(t *testing.T) {
	h := NewHealthHandler(&stubAnalyzer{available: false}, nil, logger.NewDefault())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Check(rec, req)

	// Health stays 200 even without a key; only analysis endpoints 503.
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	groq := resp.Services["groq"]
	assert.False(t, groq.Available)
	assert.Equal(t, "Groq API key is not configured", groq.Message)
}

func TestReadyDegradedWithoutKey(t *testing.T) {
	h := NewHealthHandler(&stubAnalyzer{available: false}, nil, logger.NewDefault())

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "degraded", resp.Status)
}
