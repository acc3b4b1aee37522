package handlers

import (
	"fmt"
	"strings"
)

const (
	maxImageBytes = 10 * 1024 * 1024
	maxFrameBytes = 5 * 1024 * 1024
	maxAudioBytes = 25 * 1024 * 1024

	minPhoneDigits = 8
	maxPhoneDigits = 15
)

var (
	audioExtensions = []string{".mp3", ".wav"}
	audioMimeTypes  = []string{"audio/mpeg", "audio/mp3", "audio/wav", "audio/wave", "audio/x-wav"}
)

// ValidationError carries the title and message for a 400 error card.
type ValidationError struct {
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Title + ": " + e.Message
}

// decodedBase64Size estimates the decoded byte size of a base64 payload.
func decodedBase64Size(s string) int {
	return len(s) * 3 / 4
}

// validateImage checks an uploaded image in base64 data URL form.
func validateImage(image string) *ValidationError {
	if image == "" {
		return &ValidationError{Title: "Invalid Image", Message: "Image data is required"}
	}
	if !strings.HasPrefix(image, "data:image/") {
		return &ValidationError{Title: "Invalid Image", Message: "Image must be in base64 data URL format"}
	}
	if decodedBase64Size(image) > maxImageBytes {
		return &ValidationError{Title: "Invalid Image", Message: "Image file is too large. Maximum size is 10MB."}
	}
	return nil
}

// validateFrames checks a batch of extracted video frames. Each frame must
// be a valid image data URL and stay under the per-frame size cap.
func validateFrames(frames []string) *ValidationError {
	if len(frames) == 0 {
		return &ValidationError{Title: "Missing Frames", Message: "No video frames provided"}
	}
	for i, frame := range frames {
		if frame == "" {
			return &ValidationError{
				Title:   "Invalid Frame Format",
				Message: fmt.Sprintf("Frame %d: Image data is required", i+1),
			}
		}
		if !strings.HasPrefix(frame, "data:image/") {
			return &ValidationError{
				Title:   "Invalid Frame Format",
				Message: fmt.Sprintf("Frame %d: Image must be in base64 data URL format", i+1),
			}
		}
		if decodedBase64Size(frame) > maxFrameBytes {
			return &ValidationError{
				Title:   "Frame Too Large",
				Message: fmt.Sprintf("Frame %d is too large. Maximum size is 5MB per frame.", i+1),
			}
		}
	}
	return nil
}

// validateAudio checks an uploaded recording by name, MIME type and size.
// Either a known extension or a known MIME type is enough.
func validateAudio(fileName, mimeType string, size int64) *ValidationError {
	if size > maxAudioBytes {
		return &ValidationError{Title: "File Too Large", Message: "File is too large. Maximum size is 25MB."}
	}

	validExtension := false
	if idx := strings.LastIndex(fileName, "."); idx > 0 && idx < len(fileName)-1 {
		ext := strings.ToLower(fileName[idx:])
		for _, allowed := range audioExtensions {
			if ext == allowed {
				validExtension = true
				break
			}
		}
	}

	validMime := false
	if mimeType != "" {
		lower := strings.ToLower(mimeType)
		for _, allowed := range audioMimeTypes {
			if strings.Contains(lower, allowed) {
				validMime = true
				break
			}
		}
	}

	if !validExtension && !validMime {
		return &ValidationError{
			Title:   "Invalid File Type",
			Message: "Invalid file type. Allowed types: " + strings.Join(audioExtensions, ", "),
		}
	}
	return nil
}

// cleanPhoneNumber strips spaces, dashes and parentheses.
func cleanPhoneNumber(raw string) string {
	cleaned := strings.TrimSpace(raw)
	for _, ch := range []string{" ", "-", "(", ")"} {
		cleaned = strings.ReplaceAll(cleaned, ch, "")
	}
	return cleaned
}

// validatePhone checks a phone number and returns its cleaned form.
func validatePhone(raw string) (string, *ValidationError) {
	if strings.TrimSpace(raw) == "" {
		return "", &ValidationError{Title: "Missing Phone Number", Message: "Phone number is required"}
	}
	cleaned := cleanPhoneNumber(raw)
	if len(cleaned) < minPhoneDigits || len(cleaned) > maxPhoneDigits {
		return "", &ValidationError{
			Title:   "Invalid Format",
			Message: fmt.Sprintf("Phone number must be between %d and %d digits", minPhoneDigits, maxPhoneDigits),
		}
	}
	return cleaned, nil
}

// validateCoordinates checks latitude and longitude ranges.
func validateCoordinates(latitude, longitude float64) *ValidationError {
	if latitude < -90 || latitude > 90 {
		return &ValidationError{Title: "Invalid Latitude", Message: "Latitude must be between -90 and 90"}
	}
	if longitude < -180 || longitude > 180 {
		return &ValidationError{Title: "Invalid Longitude", Message: "Longitude must be between -180 and 180"}
	}
	return nil
}
