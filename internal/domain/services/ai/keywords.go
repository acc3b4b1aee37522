package ai

import (
	"strings"

	"cyberguard-ai/internal/domain/models"
)

// KeywordRule maps a keyword set to a status. Rules are evaluated in
// order against the lowercased completion; the first rule with any
// matching keyword wins.
type KeywordRule struct {
	Keywords []string
	Status   models.Status
}

// DomainPolicy is the per-domain normalization policy: the fallback
// keyword rules, the fixed per-status confidences used when no JSON could
// be extracted, and the title templates. The confidence values are tuned
// policy, not derived from the completion text.
type DomainPolicy struct {
	Rules             []KeywordRule
	DefaultStatus     models.Status
	Confidence        map[models.Status]int
	DefaultConfidence int
	DefaultTitle      string
	FallbackTitles    map[models.Status]string
	FallbackTitle     string
}

// FallbackConfidence returns the fixed confidence for a keyword-resolved
// status.
func (p DomainPolicy) FallbackConfidence(s models.Status) int {
	if c, ok := p.Confidence[s]; ok {
		return c
	}
	return p.DefaultConfidence
}

// TitleFor returns the fallback-path title for a keyword-resolved status.
func (p DomainPolicy) TitleFor(s models.Status) string {
	if t, ok := p.FallbackTitles[s]; ok {
		return t
	}
	return p.FallbackTitle
}

// Classify runs the ordered keyword rules over the completion text.
func (p DomainPolicy) Classify(completion string) models.Status {
	lower := strings.ToLower(completion)
	for _, rule := range p.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Status
			}
		}
	}
	return p.DefaultStatus
}

var domainPolicies = map[models.Domain]DomainPolicy{
	models.DomainImage: {
		Rules: []KeywordRule{
			{Keywords: []string{"lừa đảo", "scam", "phishing"}, Status: models.StatusDanger},
			{Keywords: []string{"an toàn", "safe", "bình thường"}, Status: models.StatusSafe},
			{Keywords: []string{"cảnh báo", "warning", "nghi ngờ"}, Status: models.StatusWarning},
		},
		DefaultStatus:     models.StatusInfo,
		Confidence:        map[models.Status]int{models.StatusDanger: 75, models.StatusWarning: 60},
		DefaultConfidence: 70,
		DefaultTitle:      "Phân tích hình ảnh",
		FallbackTitles: map[models.Status]string{
			models.StatusDanger:  "LỪA ĐẢO!",
			models.StatusWarning: "Cảnh báo",
		},
		FallbackTitle: "An toàn",
	},
	models.DomainAudio: {
		Rules: []KeywordRule{
			{Keywords: []string{"lừa đảo", "scam"}, Status: models.StatusDanger},
			{Keywords: []string{"an toàn", "safe"}, Status: models.StatusSafe},
			{Keywords: []string{"cảnh báo", "warning"}, Status: models.StatusWarning},
		},
		DefaultStatus:     models.StatusInfo,
		Confidence:        map[models.Status]int{models.StatusDanger: 80, models.StatusWarning: 65},
		DefaultConfidence: 72,
		DefaultTitle:      "Phân tích cuộc gọi",
		FallbackTitles: map[models.Status]string{
			models.StatusDanger:  "Cuộc gọi lừa đảo!",
			models.StatusWarning: "Cảnh báo",
		},
		FallbackTitle: "Cuộc gọi bình thường",
	},
	models.DomainVideo: {
		Rules: []KeywordRule{
			{Keywords: []string{"deepfake", "giả mạo"}, Status: models.StatusDanger},
			{Keywords: []string{"nghi ngờ", "suspicious"}, Status: models.StatusWarning},
			{Keywords: []string{"an toàn", "safe"}, Status: models.StatusSafe},
		},
		DefaultStatus:     models.StatusWarning,
		Confidence:        map[models.Status]int{models.StatusDanger: 75},
		DefaultConfidence: 68,
		DefaultTitle:      "Phân tích video",
		FallbackTitles: map[models.Status]string{
			models.StatusDanger: "Deepfake phát hiện!",
		},
		FallbackTitle: "Nghi ngờ Deepfake",
	},
	models.DomainPhone: {
		Rules: []KeywordRule{
			{Keywords: []string{"lừa đảo", "scam", "spam"}, Status: models.StatusDanger},
			{Keywords: []string{"an toàn", "safe"}, Status: models.StatusSafe},
			{Keywords: []string{"cảnh báo", "warning", "nghi ngờ"}, Status: models.StatusWarning},
		},
		DefaultStatus:     models.StatusInfo,
		Confidence:        map[models.Status]int{models.StatusDanger: 75, models.StatusWarning: 60},
		DefaultConfidence: 70,
		DefaultTitle:      "Phân tích số điện thoại",
		FallbackTitles: map[models.Status]string{
			models.StatusDanger:  "Số điện thoại đáng nghi!",
			models.StatusWarning: "Cảnh báo",
		},
		FallbackTitle: "Phân tích số điện thoại",
	},
	models.DomainLocation: {
		Rules: []KeywordRule{
			{Keywords: []string{"nguy hiểm", "danger", "rủi ro cao"}, Status: models.StatusDanger},
			{Keywords: []string{"an toàn", "safe"}, Status: models.StatusSafe},
			{Keywords: []string{"cảnh báo", "warning", "cẩn thận"}, Status: models.StatusWarning},
		},
		DefaultStatus:     models.StatusInfo,
		Confidence:        map[models.Status]int{models.StatusDanger: 75, models.StatusWarning: 60},
		DefaultConfidence: 70,
		DefaultTitle:      "Phân tích vị trí",
		FallbackTitles: map[models.Status]string{
			models.StatusDanger:  "Vị trí nguy hiểm!",
			models.StatusWarning: "Cảnh báo",
		},
		FallbackTitle: "Thông tin vị trí",
	},
}

// PolicyFor returns the normalization policy for a domain. Unknown
// domains fall back to the image policy, which carries the most generic
// rule set.
func PolicyFor(domain models.Domain) DomainPolicy {
	if p, ok := domainPolicies[domain]; ok {
		return p
	}
	return domainPolicies[models.DomainImage]
}
