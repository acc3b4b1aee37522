package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyberguard-ai/internal/domain/models"
	"cyberguard-ai/internal/domain/services/ai"
	"cyberguard-ai/pkg/logger"
)

// stubAnalyzer is a scriptable AnalyzerService for handler tests.
type stubAnalyzer struct {
	available bool
	result    models.AnalysisResult
	err       error

	lastAudio   ai.AudioMetadata
	lastFrames  []string
	lastRaw     string
	lastCleaned string
}

func (s *stubAnalyzer) Available() bool { return s.available }

func (s *stubAnalyzer) AnalyzeImage(context.Context, string) (models.AnalysisResult, error) {
	return s.result, s.err
}

func (s *stubAnalyzer) AnalyzeAudio(_ context.Context, meta ai.AudioMetadata) (models.AnalysisResult, error) {
	s.lastAudio = meta
	return s.result, s.err
}

func (s *stubAnalyzer) AnalyzeVideoFrames(_ context.Context, frames []string) (models.AnalysisResult, error) {
	s.lastFrames = frames
	return s.result, s.err
}

func (s *stubAnalyzer) CheckPhone(_ context.Context, raw, cleaned string) (models.AnalysisResult, error) {
	s.lastRaw = raw
	s.lastCleaned = cleaned
	return s.result, s.err
}

func (s *stubAnalyzer) CheckLocation(context.Context, float64, float64) (models.AnalysisResult, error) {
	return s.result, s.err
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) models.AnalysisResult {
	t.Helper()
	var result models.AnalysisResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	return result
}

func safeResult() models.AnalysisResult {
	return models.AnalysisResult{
		Status:     models.StatusSafe,
		Title:      "An toàn",
		Message:    "Không có dấu hiệu bất thường",
		Confidence: 85,
	}
}

func TestScanImageSuccess(t *testing.T) {
	analyzer := &stubAnalyzer{available: true, result: safeResult()}
	h := NewScanHandler(analyzer, logger.NewDefault())

	body := `{"image":"data:image/png;base64,iVBORw0KGgo="}`
	req := httptest.NewRequest(http.MethodPost, "/api/scan-image", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Image(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, safeResult(), decodeResult(t, rec))
}

func TestScanImageInvalidPayload(t *testing.T) {
	h := NewScanHandler(&stubAnalyzer{available: true}, logger.NewDefault())

	req := httptest.NewRequest(http.MethodPost, "/api/scan-image", strings.NewReader(`{"image":"not-base64"}`))
	rec := httptest.NewRecorder()

	h.Image(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	result := decodeResult(t, rec)
	assert.Equal(t, models.StatusWarning, result.Status)
	assert.Equal(t, "Invalid Image", result.Title)
	assert.Equal(t, 0, result.Confidence)
}

func TestScanImageWithoutAPIKey(t *testing.T) {
	h := NewScanHandler(&stubAnalyzer{available: false}, logger.NewDefault())

	body := `{"image":"data:image/png;base64,iVBORw0KGgo="}`
	req := httptest.NewRequest(http.MethodPost, "/api/scan-image", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Image(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	result := decodeResult(t, rec)
	assert.Equal(t, models.StatusWarning, result.Status)
	assert.Equal(t, "API Key Missing", result.Title)
	assert.Equal(t, 0, result.Confidence)
}

func TestScanImageAnalysisFailure(t *testing.T) {
	analyzer := &stubAnalyzer{
		available: true,
		err:       &ai.ExhaustedError{Attempts: 3, Last: assert.AnError},
	}
	h := NewScanHandler(analyzer, logger.NewDefault())

	body := `{"image":"data:image/png;base64,iVBORw0KGgo="}`
	req := httptest.NewRequest(http.MethodPost, "/api/scan-image", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Image(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	result := decodeResult(t, rec)
	assert.Equal(t, models.StatusDanger, result.Status)
	assert.Equal(t, "Analysis Error", result.Title)
	assert.Equal(t, 0, result.Confidence)
}

func multipartAudioRequest(t *testing.T, fieldName, fileName, mimeType string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="` + fieldName + `"; filename="` + fileName + `"`}
	header["Content-Type"] = []string{mimeType}
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/scan-audio", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestScanAudioSuccess(t *testing.T) {
	analyzer := &stubAnalyzer{available: true, result: safeResult()}
	h := NewScanHandler(analyzer, logger.NewDefault())

	req := multipartAudioRequest(t, "audio", "call.mp3", "audio/mpeg", []byte("fake mp3 bytes"))
	rec := httptest.NewRecorder()

	h.Audio(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, safeResult(), decodeResult(t, rec))

	assert.Equal(t, "call.mp3", analyzer.lastAudio.FileName)
	assert.Equal(t, "audio/mpeg", analyzer.lastAudio.MimeType)
	assert.Equal(t, int64(len("fake mp3 bytes")), analyzer.lastAudio.SizeBytes)
}

func TestScanAudioMissingFile(t *testing.T) {
	h := NewScanHandler(&stubAnalyzer{available: true}, logger.NewDefault())

	req := multipartAudioRequest(t, "wrong-field", "call.mp3", "audio/mpeg", []byte("x"))
	rec := httptest.NewRecorder()

	h.Audio(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	result := decodeResult(t, rec)
	assert.Equal(t, "Missing Audio", result.Title)
}

func TestScanAudioRejectsWrongType(t *testing.T) {
	h := NewScanHandler(&stubAnalyzer{available: true}, logger.NewDefault())

	req := multipartAudioRequest(t, "audio", "movie.mp4", "video/mp4", []byte("x"))
	rec := httptest.NewRecorder()

	h.Audio(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	result := decodeResult(t, rec)
	assert.Equal(t, "Invalid File Type", result.Title)
}

func TestScanVideoSuccess(t *testing.T) {
	analyzer := &stubAnalyzer{available: true, result: safeResult()}
	h := NewScanHandler(analyzer, logger.NewDefault())

	body := `{"frames":["data:image/jpeg;base64,AAAA","data:image/jpeg;base64,BBBB"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/scan-video", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Video(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, analyzer.lastFrames, 2)
}

func TestScanVideoEmptyFrames(t *testing.T) {
	h := NewScanHandler(&stubAnalyzer{available: true}, logger.NewDefault())

	req := httptest.NewRequest(http.MethodPost, "/api/scan-video", strings.NewReader(`{"frames":[]}`))
	rec := httptest.NewRecorder()

	h.Video(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	result := decodeResult(t, rec)
	assert.Equal(t, models.StatusWarning, result.Status)
	assert.Equal(t, "Missing Frames", result.Title)
	assert.Equal(t, "No video frames provided", result.Message)
	assert.Equal(t, 0, result.Confidence)
}

func TestScanVideoBadJSON(t *testing.T) {
	h := NewScanHandler(&stubAnalyzer{available: true}, logger.NewDefault())

	req := httptest.NewRequest(http.MethodPost, "/api/scan-video", strings.NewReader(`{frames`))
	rec := httptest.NewRecorder()

	h.Video(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	result := decodeResult(t, rec)
	assert.Equal(t, "Invalid Request", result.Title)
}
