package handlers

import (
	"encoding/json"
	"net/http"

	"cyberguard-ai/internal/domain/models"
	"cyberguard-ai/pkg/logger"
)

// CheckHandler handles phone and location check endpoints
type CheckHandler struct {
	analyzer AnalyzerService
	logger   *logger.Logger
}

// NewCheckHandler creates a new CheckHandler
func NewCheckHandler(analyzer AnalyzerService, log *logger.Logger) *CheckHandler {
	return &CheckHandler{
		analyzer: analyzer,
		logger:   log.WithComponent("check"),
	}
}

type checkPhoneRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

type checkLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Phone handles POST /api/check-phone
func (h *CheckHandler) Phone(w http.ResponseWriter, r *http.Request) {
	var req checkPhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, models.StatusWarning, "Invalid Request", "Request body must be valid JSON")
		return
	}

	cleaned, verr := validatePhone(req.PhoneNumber)
	if verr != nil {
		respondError(w, http.StatusBadRequest, models.StatusWarning, verr.Title, verr.Message)
		return
	}

	if !h.analyzer.Available() {
		respondAPIKeyMissing(w)
		return
	}

	result, err := h.analyzer.CheckPhone(r.Context(), req.PhoneNumber, cleaned)
	if err != nil {
		h.logger.Error().Err(err).Msg("phone check failed")
		respondAnalysisError(w, err, "Failed to analyze phone number with Groq API. Please try again later.")
		return
	}

	respondResult(w, result)
}

// Location handles POST /api/check-location
func (h *CheckHandler) Location(w http.ResponseWriter, r *http.Request) {
	var req checkLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, models.StatusWarning, "Invalid Request", "Request body must be valid JSON")
		return
	}

	if req.Latitude == nil || req.Longitude == nil {
		respondError(w, http.StatusBadRequest, models.StatusWarning, "Invalid Coordinates", "Latitude and longitude must be valid numbers")
		return
	}

	if verr := validateCoordinates(*req.Latitude, *req.Longitude); verr != nil {
		respondError(w, http.StatusBadRequest, models.StatusWarning, verr.Title, verr.Message)
		return
	}

	if !h.analyzer.Available() {
		respondAPIKeyMissing(w)
		return
	}

	result, err := h.analyzer.CheckLocation(r.Context(), *req.Latitude, *req.Longitude)
	if err != nil {
		h.logger.Error().Err(err).Msg("location check failed")
		respondAnalysisError(w, err, "Failed to analyze location with Groq API. Please try again later.")
		return
	}

	respondResult(w, result)
}
