package analyzer

import "time"

// Status classifies a check result. Thresholds are per-metric, not global.
type Status string

const (
	StatusPass    Status = "pass"
	StatusWarning Status = "warning"
	StatusFail    Status = "fail"
)

// CheckResult is the atomic output of every metric analyzer and file probe.
type CheckResult struct {
	ID             string   `json:"id"`
	Label          string   `json:"label"`
	Status         Status   `json:"status"`
	Score          float64  `json:"score"`
	Details        string   `json:"details"`
	Recommendation string   `json:"recommendation"`
	ActionItems    []string `json:"actionItems"`
}

// PageMetadata carries page-level metadata supplied by the scraping
// collaborator. All fields are optional.
type PageMetadata struct {
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	OGTitle       string `json:"ogTitle,omitempty"`
	OGDescription string `json:"ogDescription,omitempty"`
	Author        string `json:"author,omitempty"`
}

// ReportMetadata is the metadata block stored with a report.
type ReportMetadata struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AnalyzedAt  time.Time `json:"analyzedAt"`
}

// AnalysisReport is the complete result for one analyzed URL. It is
// constructed once per request and never mutated afterwards.
type AnalysisReport struct {
	URL          string         `json:"url"`
	OverallScore int            `json:"overallScore"`
	Checks       []CheckResult  `json:"checks"`
	Metadata     ReportMetadata `json:"metadata"`
}

// FileChecks holds the three auxiliary well-known file probe results.
type FileChecks struct {
	Llms    CheckResult `json:"llms"`
	Robots  CheckResult `json:"robots"`
	Sitemap CheckResult `json:"sitemap"`
}

// Metric ids. Stable keys used for weighting, status thresholds and
// recommendation lookup; unique within one analysis run.
const (
	CheckLlmsTxt          = "llms-txt"
	CheckRobotsTxt        = "robots-txt"
	CheckSitemap          = "sitemap"
	CheckHeadingStructure = "heading-structure"
	CheckReadability      = "readability"
	CheckMetaTags         = "meta-tags"
	CheckSemanticHTML     = "semantic-html"
	CheckAccessibility    = "accessibility"
	CheckFAQStructure     = "faq-structure"
	CheckContentStructure = "content-structure"
	CheckTopicalAuthority = "topical-authority"
)
