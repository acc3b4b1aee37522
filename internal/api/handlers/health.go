package handlers

import (
	"net/http"
	"time"

	"cyberguard-ai/internal/infrastructure/cache"
	"cyberguard-ai/pkg/logger"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	analyzer  AnalyzerService
	cache     *cache.RedisCache
	logger    *logger.Logger
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(analyzer AnalyzerService, c *cache.RedisCache, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		analyzer:  analyzer,
		cache:     c,
		logger:    log.WithComponent("health"),
		startTime: time.Now(),
	}
}

// ServiceStatus reports the availability of a backing service
type ServiceStatus struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string                   `json:"status"`
	Timestamp string                   `json:"timestamp"`
	Services  map[string]ServiceStatus `json:"services"`
}

// Check handles GET /health and GET /api/health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	groqAvailable := h.analyzer.Available()
	groqMessage := "Groq API is configured and ready"
	if !groqAvailable {
		groqMessage = "Groq API key is not configured"
	}

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services: map[string]ServiceStatus{
			"groq": {Available: groqAvailable, Message: groqMessage},
		},
	}

	respondJSON(w, http.StatusOK, response)
}

// Ready handles GET /ready and additionally checks Redis when configured
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	services := map[string]ServiceStatus{}

	groqAvailable := h.analyzer.Available()
	groqMessage := "Groq API is configured and ready"
	if !groqAvailable {
		groqMessage = "Groq API key is not configured"
		status = http.StatusServiceUnavailable
	}
	services["groq"] = ServiceStatus{Available: groqAvailable, Message: groqMessage}

	if h.cache != nil {
		if err := h.cache.Client().Ping(r.Context()).Err(); err != nil {
			services["redis"] = ServiceStatus{Available: false, Message: err.Error()}
			status = http.StatusServiceUnavailable
		} else {
			services["redis"] = ServiceStatus{Available: true, Message: "connected"}
		}
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	respondJSON(w, status, HealthResponse{
		Status:    overall,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  services,
	})
}
