package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cyberguard-ai/internal/domain/models"
	"cyberguard-ai/internal/domain/services/ai"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondResult writes a normalized analysis result with HTTP 200.
func respondResult(w http.ResponseWriter, result models.AnalysisResult) {
	respondJSON(w, http.StatusOK, result)
}

// respondError writes an error in the same four-field shape as a result
// card. Errors always carry confidence 0.
func respondError(w http.ResponseWriter, httpStatus int, status models.Status, title, message string) {
	respondJSON(w, httpStatus, models.AnalysisResult{
		Status:     status,
		Title:      title,
		Message:    message,
		Confidence: 0,
	})
}

// respondAPIKeyMissing is the uniform 503 for an unconfigured Groq key.
func respondAPIKeyMissing(w http.ResponseWriter) {
	respondError(w, http.StatusServiceUnavailable, models.StatusWarning,
		"API Key Missing",
		"Groq API key is not configured. Please set GROQ_API_KEY in the environment.")
}

// respondAnalysisError maps an analyzer failure to an HTTP error card.
func respondAnalysisError(w http.ResponseWriter, err error, fallbackMessage string) {
	if errors.Is(err, ai.ErrAPIKeyMissing) {
		respondAPIKeyMissing(w)
		return
	}
	message := fallbackMessage
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	respondError(w, http.StatusInternalServerError, models.StatusDanger, "Analysis Error", message)
}
