package handlers

import (
	"encoding/json"
	"net/http"

	"cyberguard-ai/internal/domain/models"
	"cyberguard-ai/internal/domain/services/ai"
	"cyberguard-ai/pkg/logger"
)

// ScanHandler handles media scan endpoints
type ScanHandler struct {
	analyzer AnalyzerService
	logger   *logger.Logger
}

// NewScanHandler creates a new ScanHandler
func NewScanHandler(analyzer AnalyzerService, log *logger.Logger) *ScanHandler {
	return &ScanHandler{
		analyzer: analyzer,
		logger:   log.WithComponent("scan"),
	}
}

type scanImageRequest struct {
	Image string `json:"image"`
}

type scanVideoRequest struct {
	Frames []string `json:"frames"`
}

// Image handles POST /api/scan-image
func (h *ScanHandler) Image(w http.ResponseWriter, r *http.Request) {
	var req scanImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, models.StatusWarning, "Invalid Request", "Request body must be valid JSON")
		return
	}

	if verr := validateImage(req.Image); verr != nil {
		respondError(w, http.StatusBadRequest, models.StatusWarning, verr.Title, verr.Message)
		return
	}

	if !h.analyzer.Available() {
		respondAPIKeyMissing(w)
		return
	}

	result, err := h.analyzer.AnalyzeImage(r.Context(), req.Image)
	if err != nil {
		h.logger.Error().Err(err).Msg("image scan failed")
		respondAnalysisError(w, err, "Failed to analyze image with Groq API. Please try again later.")
		return
	}

	respondResult(w, result)
}

// Audio handles POST /api/scan-audio (multipart upload, field "audio")
func (h *ScanHandler) Audio(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("audio")
	if err != nil {
		respondError(w, http.StatusBadRequest, models.StatusWarning, "Missing Audio", "No audio file provided")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if verr := validateAudio(header.Filename, mimeType, header.Size); verr != nil {
		respondError(w, http.StatusBadRequest, models.StatusWarning, verr.Title, verr.Message)
		return
	}

	if !h.analyzer.Available() {
		respondAPIKeyMissing(w)
		return
	}

	meta := ai.AudioMetadata{
		FileName:  header.Filename,
		SizeBytes: header.Size,
		MimeType:  mimeType,
	}
	result, err := h.analyzer.AnalyzeAudio(r.Context(), meta)
	if err != nil {
		h.logger.Error().Err(err).Str("file", header.Filename).Msg("audio scan failed")
		respondAnalysisError(w, err, "Failed to analyze audio with Groq API. Please try again later.")
		return
	}

	respondResult(w, result)
}

// Video handles POST /api/scan-video
func (h *ScanHandler) Video(w http.ResponseWriter, r *http.Request) {
	var req scanVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, models.StatusWarning, "Invalid Request", "Request body must be valid JSON")
		return
	}

	if verr := validateFrames(req.Frames); verr != nil {
		respondError(w, http.StatusBadRequest, models.StatusWarning, verr.Title, verr.Message)
		return
	}

	if !h.analyzer.Available() {
		respondAPIKeyMissing(w)
		return
	}

	result, err := h.analyzer.AnalyzeVideoFrames(r.Context(), req.Frames)
	if err != nil {
		h.logger.Error().Err(err).Int("frames", len(req.Frames)).Msg("video scan failed")
		respondAnalysisError(w, err, "Failed to analyze video with Groq API. Please try again later.")
		return
	}

	respondResult(w, result)
}
