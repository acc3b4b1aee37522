package ai

import (
	"fmt"
	"regexp"
	"strings"
)

// Prompt builders are pure functions of validated input. The upstream
// models cannot ingest binary media, so every prompt is metadata-only:
// file size, MIME type, length and format, never decoded content.

var dataURLTypeRe = regexp.MustCompile(`^data:image/(\w+);`)

// ImageMetadata describes an uploaded image without touching its pixels.
type ImageMetadata struct {
	Type         string
	SizeBytes    int
	Base64Length int
	HasDataURL   bool
}

// ImageMetadataFromDataURL derives metadata from a base64 data URL. The
// decoded size is estimated as 3/4 of the base64 payload length.
func ImageMetadataFromDataURL(dataURL string) ImageMetadata {
	meta := ImageMetadata{
		Type:         "unknown",
		SizeBytes:    len(dataURL) * 3 / 4,
		Base64Length: len(dataURL),
		HasDataURL:   strings.HasPrefix(dataURL, "data:image/"),
	}
	if m := dataURLTypeRe.FindStringSubmatch(dataURL); m != nil {
		meta.Type = m[1]
	}
	return meta
}

// AudioMetadata describes an uploaded audio file.
type AudioMetadata struct {
	FileName  string
	SizeBytes int64
	MimeType  string
}

// EstimatedDurationSeconds guesses the clip length from size and format:
// roughly 1 MB per minute for MP3, 10 MB per minute for WAV.
func (m AudioMetadata) EstimatedDurationSeconds() float64 {
	if strings.Contains(m.MimeType, "mp3") || strings.HasSuffix(strings.ToLower(m.FileName), ".mp3") {
		return float64(m.SizeBytes) / (1024 * 1024) * 60
	}
	return float64(m.SizeBytes) / (10 * 1024 * 1024) * 60
}

const jsonFormatInstruction = `Respond in Vietnamese with JSON format:
{
  "status": "DANGER" | "SAFE" | "WARNING" | "INFO",
  "title": "Short title in Vietnamese",
  "message": "Detailed explanation in Vietnamese",
  "confidence": number between 0-100
}`

// BuildImagePrompt builds the scam-screening prompt for an uploaded image.
func BuildImagePrompt(meta ImageMetadata) string {
	var sb strings.Builder

	sb.WriteString("Analyze an image for scam, phishing, or suspicious content detection based on the following information:\n\n")
	sb.WriteString("Image Metadata:\n")
	sb.WriteString(fmt.Sprintf("- File Type: %s\n", meta.Type))
	sb.WriteString(fmt.Sprintf("- File Size: %.2f KB\n", float64(meta.SizeBytes)/1024))
	sb.WriteString(fmt.Sprintf("- Base64 Length: %d characters\n", meta.Base64Length))
	format := "Unknown"
	if meta.HasDataURL {
		format = "Data URL (base64)"
	}
	sb.WriteString(fmt.Sprintf("- Format: %s\n", format))
	sb.WriteString("\nBased on this image metadata and common scam patterns, provide an analysis.\n\n")
	sb.WriteString(jsonFormatInstruction)
	sb.WriteString("\n\nFocus on detecting potential risks based on:\n")
	sb.WriteString("- File size anomalies (very small or very large files may indicate manipulation)\n")
	sb.WriteString("- File type mismatches\n")
	sb.WriteString("- Common scam image patterns\n")
	sb.WriteString("- Suspicious metadata patterns\n")
	sb.WriteString("\nNote: this analysis is based on image metadata only; the image content itself is not inspected.")

	return sb.String()
}

// BuildAudioPrompt builds the scam-screening prompt for a phone-call
// recording, described by file metadata only.
func BuildAudioPrompt(meta AudioMetadata) string {
	duration := meta.EstimatedDurationSeconds()

	sizeCategory := "Large (>5MB)"
	switch {
	case meta.SizeBytes < 1*1024*1024:
		sizeCategory = "Small (<1MB)"
	case meta.SizeBytes < 5*1024*1024:
		sizeCategory = "Medium (1-5MB)"
	}

	formatDesc := "Unknown"
	lower := strings.ToLower(meta.FileName)
	switch {
	case strings.HasSuffix(lower, ".mp3"):
		formatDesc = "MP3 (compressed, typical for phone recordings)"
	case strings.HasSuffix(lower, ".wav"):
		formatDesc = "WAV (uncompressed, high quality)"
	}

	var sb strings.Builder
	sb.WriteString("Analyze this phone call recording for scam or phishing indicators.\n\n")
	sb.WriteString("File Information:\n")
	sb.WriteString(fmt.Sprintf("- File Name: %s\n", meta.FileName))
	sb.WriteString(fmt.Sprintf("- File Size: %.2f MB\n", float64(meta.SizeBytes)/1024/1024))
	sb.WriteString(fmt.Sprintf("- MIME Type: %s\n", meta.MimeType))
	sb.WriteString(fmt.Sprintf("- Estimated Duration: %.1f seconds (%.1f minutes)\n", duration, duration/60))
	sb.WriteString(fmt.Sprintf("- Format: %s\n", formatDesc))
	sb.WriteString(fmt.Sprintf("- Size Category: %s\n", sizeCategory))
	sb.WriteString("\nSince direct audio transcription is not available, analysis is based on file metadata and common scam patterns.\n\n")
	sb.WriteString(jsonFormatInstruction)
	sb.WriteString("\n\nLook for:\n")
	sb.WriteString("- Very short calls (<30 seconds) may indicate quick scam attempts\n")
	sb.WriteString("- Very long calls (>10 minutes) may indicate extended manipulation attempts\n")
	sb.WriteString("- Unusual file sizes may indicate manipulation or recording issues\n")
	sb.WriteString("- Requests for personal information, urgent financial requests\n")
	sb.WriteString("- Threats, pressure tactics, impersonation attempts\n")
	sb.WriteString("- Common Vietnamese scam patterns")

	return sb.String()
}

// BuildFramePrompt builds the per-frame prompt used in video analysis.
// index is 1-based.
func BuildFramePrompt(meta ImageMetadata, index, total int) string {
	var sb strings.Builder
	sb.WriteString("Analyze a video frame for deepfake, manipulation, or suspicious content indicators based on metadata:\n\n")
	sb.WriteString("Frame Metadata:\n")
	sb.WriteString(fmt.Sprintf("- Frame Type: %s\n", meta.Type))
	sb.WriteString(fmt.Sprintf("- Frame Size: %.2f KB\n", float64(meta.SizeBytes)/1024))
	sb.WriteString(fmt.Sprintf("- Base64 Length: %d characters\n", meta.Base64Length))
	sb.WriteString(fmt.Sprintf("- Frame Index: %d of %d\n", index, total))
	sb.WriteString("\nBased on this frame metadata, provide an analysis.\n\n")
	sb.WriteString(`Respond in Vietnamese with JSON format:
{
  "status": "DANGER" | "SAFE" | "WARNING" | "INFO",
  "indicators": ["list of potential indicators based on metadata"],
  "confidence": number between 0-100
}`)
	sb.WriteString("\n\nNote: this analysis is based on frame metadata only.")
	return sb.String()
}

// BuildVideoAggregationPrompt combines the per-frame completions into the
// final assessment request.
func BuildVideoAggregationPrompt(frameAnalyses []string) string {
	var sb strings.Builder
	sb.WriteString("Based on these frame analyses, provide a final assessment:\n\n")
	sb.WriteString(strings.Join(frameAnalyses, "\n\n"))
	sb.WriteString("\n\n")
	sb.WriteString(jsonFormatInstruction)
	return sb.String()
}

// BuildPhonePrompt builds the risk-assessment prompt for a phone number.
// cleaned is the number with spaces, dashes and parentheses stripped.
func BuildPhonePrompt(raw, cleaned string) string {
	var sb strings.Builder
	sb.WriteString("Analyze this phone number for potential scam or spam indicators.\n\n")
	sb.WriteString(fmt.Sprintf("Phone Number: %s\n", raw))
	sb.WriteString(fmt.Sprintf("Cleaned Format: %s\n", cleaned))
	sb.WriteString(fmt.Sprintf("Length: %d digits\n", len(cleaned)))
	sb.WriteString("\n")
	sb.WriteString(jsonFormatInstruction)
	sb.WriteString("\n\nConsider:\n")
	sb.WriteString("- Number patterns (repeated digits, suspicious sequences)\n")
	sb.WriteString("- Country code analysis\n")
	sb.WriteString("- Common scam/spam number formats\n")
	sb.WriteString("- Length and format anomalies\n")
	sb.WriteString("- General risk indicators\n")
	sb.WriteString("\nNote: this is a metadata-based analysis, not a reputation database lookup.")
	return sb.String()
}

// BuildLocationPrompt builds the safety-assessment prompt for a
// coordinate pair, with guidance tuned to risks common in Vietnam.
func BuildLocationPrompt(latitude, longitude float64) string {
	var sb strings.Builder
	sb.WriteString("Analyze this location for safety and security risks, especially in the context of Vietnam.\n\n")
	sb.WriteString("Coordinates:\n")
	sb.WriteString(fmt.Sprintf("- Latitude: %v\n", latitude))
	sb.WriteString(fmt.Sprintf("- Longitude: %v\n", longitude))
	sb.WriteString("\n")
	sb.WriteString(jsonFormatInstruction)
	sb.WriteString("\n\nConsider:\n")
	sb.WriteString("- General area safety (urban vs rural, tourist areas)\n")
	sb.WriteString("- Common risks in Vietnam (phone snatching, pickpocketing, scams)\n")
	sb.WriteString("- Scam activity patterns and time-of-day safety\n")
	sb.WriteString("- Recommendations for staying safe\n")
	sb.WriteString("\nNote: this is a general risk assessment, not a crime database lookup.")
	return sb.String()
}
