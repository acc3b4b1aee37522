package ai

import (
	"encoding/json"
	"strings"

	"cyberguard-ai/internal/domain/models"
)

// ExtractJSON pulls the JSON object embedded in a free-form completion:
// markdown code fences are stripped, then the greedy span from the first
// "{" to the last "}" is taken. The second return value is false when no
// object-shaped span exists.
func ExtractJSON(completion string) (string, bool) {
	content := strings.TrimSpace(completion)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return content[start : end+1], true
}

// completionDoc is the loosely-typed shape parsed out of a completion.
// Confidence is deliberately untyped: models sometimes return it as a
// string or omit it, and either case must default rather than fail.
type completionDoc struct {
	Status     string `json:"status"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Confidence any    `json:"confidence"`
}

// Normalize converts a raw completion into the canonical AnalysisResult.
// It never fails: when no JSON object can be extracted or parsed, the
// domain's keyword rules classify the text and fixed per-status
// confidences apply. Normalizing the same completion twice yields the
// same result.
func Normalize(domain models.Domain, completion string) models.AnalysisResult {
	policy := PolicyFor(domain)

	if raw, ok := ExtractJSON(completion); ok {
		var doc completionDoc
		if err := json.Unmarshal([]byte(raw), &doc); err == nil {
			return resultFromDoc(policy, doc, completion)
		}
	}

	status := policy.Classify(completion)
	return models.AnalysisResult{
		Status:     status,
		Title:      policy.TitleFor(status),
		Message:    completion,
		Confidence: policy.FallbackConfidence(status),
	}
}

func resultFromDoc(policy DomainPolicy, doc completionDoc, completion string) models.AnalysisResult {
	status := models.Status(doc.Status)
	if !models.ValidStatus(status) {
		status = models.StatusWarning
	}

	confidence := 50
	if f, ok := doc.Confidence.(float64); ok {
		confidence = models.ClampConfidence(int(f))
	}

	title := doc.Title
	if title == "" {
		title = policy.DefaultTitle
	}

	message := doc.Message
	if message == "" {
		message = completion
	}

	return models.AnalysisResult{
		Status:     status,
		Title:      title,
		Message:    message,
		Confidence: confidence,
	}
}
