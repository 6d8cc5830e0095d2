package analyzer

import "time"

// Thresholds holds the per-metric status cutoffs: score >= Pass is "pass",
// score >= Warn is "warning", anything below is "fail".
type Thresholds struct {
	Pass float64
	Warn float64
}

// Config carries the engine's scoring tables. It is built once at process
// start and passed explicitly into the analyzers and the aggregator; nothing
// in the engine reads mutable package state.
type Config struct {
	// Weights is the per-metric weight table for the overall score.
	// Ids absent from the map default to weight 1.0.
	Weights map[string]float64

	// StatusThresholds maps metric ids to their pass/warn cutoffs.
	StatusThresholds map[string]Thresholds

	// ContentSignalIDs are the metrics whose scores feed the content-signal
	// bonus in the aggregator.
	ContentSignalIDs []string

	// Reputation lists for the domain bonus. DocPatterns are substring
	// matches against the www-stripped hostname and take priority over the
	// tier lists; TopTier adds 18, SecondTier adds 12.
	DocPatterns []string
	TopTier     []string
	SecondTier  []string

	// ProbeTimeout bounds each individual auxiliary file fetch.
	ProbeTimeout time.Duration
}

// DefaultConfig returns the engine's versioned scoring configuration.
func DefaultConfig() *Config {
	return &Config{
		Weights: map[string]float64{
			CheckReadability:      1.5,
			CheckHeadingStructure: 1.4,
			CheckFAQStructure:     1.3,
			CheckMetaTags:         1.2,
			CheckTopicalAuthority: 1.2,
			CheckContentStructure: 1.1,
			CheckSemanticHTML:     1.0,
			CheckAccessibility:    0.9,
			CheckRobotsTxt:        0.8,
			CheckSitemap:          0.7,
			CheckLlmsTxt:          0.3,
		},
		StatusThresholds: map[string]Thresholds{
			CheckHeadingStructure: {Pass: 80, Warn: 50},
			CheckMetaTags:         {Pass: 70, Warn: 40},
			CheckSemanticHTML:     {Pass: 80, Warn: 40},
			CheckAccessibility:    {Pass: 80, Warn: 50},
			CheckFAQStructure:     {Pass: 70, Warn: 40},
			CheckContentStructure: {Pass: 70, Warn: 50},
			CheckTopicalAuthority: {Pass: 80, Warn: 60},
		},
		ContentSignalIDs: []string{
			CheckReadability,
			CheckHeadingStructure,
			CheckMetaTags,
			CheckFAQStructure,
			CheckTopicalAuthority,
		},
		DocPatterns: []string{"docs.", "developer.", "api."},
		TopTier: []string{
			"vercel.com", "stripe.com", "github.com", "openai.com",
			"anthropic.com", "google.com", "microsoft.com", "apple.com",
			"aws.amazon.com", "cloud.google.com", "azure.microsoft.com",
			"react.dev", "nextjs.org", "tailwindcss.com",
		},
		SecondTier: []string{
			"netlify.com", "heroku.com", "digitalocean.com",
			"cloudflare.com", "twilio.com", "slack.com", "notion.so",
			"linear.app", "figma.com",
		},
		ProbeTimeout: 3 * time.Second,
	}
}

// statusFor derives a status from a score using the metric's own thresholds.
func (c *Config) statusFor(id string, score float64) Status {
	t, ok := c.StatusThresholds[id]
	if !ok {
		t = Thresholds{Pass: 80, Warn: 50}
	}
	switch {
	case score >= t.Pass:
		return StatusPass
	case score >= t.Warn:
		return StatusWarning
	default:
		return StatusFail
	}
}

// clampScore bounds a score into [0,100] before it is stored or aggregated.
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
