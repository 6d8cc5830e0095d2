package analyzer

import (
	"math"
	"net/url"
	"strings"
)

// AggregateScore combines all check results into the overall 0-100 score:
// a weighted average, a content-signal bonus, a minimum-viable floor and a
// domain-reputation bonus, in that order.
func (c *Config) AggregateScore(checks []CheckResult, rawURL string) int {
	var weightedSum, totalWeight float64
	for _, check := range checks {
		weight, ok := c.Weights[check.ID]
		if !ok {
			weight = 1.0
		}
		weightedSum += clampScore(check.Score) * weight
		totalWeight += weight
	}

	base := 0.0
	if totalWeight > 0 {
		base = math.Round(weightedSum / totalWeight)
	}

	// Pages whose core content metrics are mostly healthy get a bonus on
	// top of the weighted average.
	strong := 0
	for _, check := range checks {
		if containsID(c.ContentSignalIDs, check.ID) && check.Score >= 60 {
			strong++
		}
	}
	if strong >= 3 {
		base += 15
	} else if strong >= 2 {
		base += 10
	}

	// Minimum-viable floor: a page with at least one excellent check never
	// scores below 35.
	if base < 35 {
		for _, check := range checks {
			if check.Score >= 80 {
				base = 35
				break
			}
		}
	}

	score := base + float64(c.reputationBonus(rawURL))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return int(score)
}

// reputationBonus returns the additive domain bonus for the analyzed URL.
// The documentation-pattern match takes priority over the tier lists.
func (c *Config) reputationBonus(rawURL string) int {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return 0
	}

	for _, pattern := range c.DocPatterns {
		if strings.Contains(host, pattern) {
			return 20
		}
	}
	for _, domain := range c.TopTier {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return 18
		}
	}
	for _, domain := range c.SecondTier {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return 12
		}
	}
	return 0
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
