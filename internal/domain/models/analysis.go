package models

// Status classifies the severity of an analysis verdict.
type Status string

const (
	StatusDanger  Status = "DANGER"
	StatusSafe    Status = "SAFE"
	StatusWarning Status = "WARNING"
	StatusInfo    Status = "INFO"
)

// ValidStatus reports whether s is one of the four recognized values.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDanger, StatusSafe, StatusWarning, StatusInfo:
		return true
	}
	return false
}

// AnalysisResult is the canonical verdict returned by every analysis
// endpoint. It is built fresh per request from an LLM completion and is
// never persisted.
type AnalysisResult struct {
	Status     Status `json:"status"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Confidence int    `json:"confidence"`
}

// Domain identifies which analysis surface produced a completion. It
// selects the prompt, the fallback keyword rules and the default titles.
type Domain string

const (
	DomainImage    Domain = "image"
	DomainAudio    Domain = "audio"
	DomainVideo    Domain = "video"
	DomainPhone    Domain = "phone"
	DomainLocation Domain = "location"
)

// ClampConfidence forces c into the [0,100] range.
func ClampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
