// Package logging collects runtime analytics for the service: visitors,
// analysis volume, popular targets and lead capture counts.
package logging

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

// Environment variable name for controlling analytics visibility
const ENV_DEV_MODE = "DEV_MODE"

// Analytics represents the collected service analytics.
type Analytics struct {
	UniqueVisitors   map[string]time.Time `json:"uniqueVisitors"`  // IP -> last visit
	AnalysisRequests int                  `json:"analysisRequests"`
	ErrorCount       int                  `json:"errorCount"`
	LeadsCaptured    int                  `json:"leadsCaptured"`
	PopularDomains   map[string]int       `json:"popularDomains"` // analyzed domain -> count
	AverageDuration  float64              `json:"averageDurationMs"`
	TotalDuration    float64              `json:"-"`
	RequestCount     int                  `json:"-"`
	LastPersisted    time.Time            `json:"lastPersisted"`
	mutex            sync.RWMutex         `json:"-"`
}

var (
	analytics *Analytics
	once      sync.Once
	statePath = "analytics.json"
)

// Initialize creates or loads the analytics singleton.
func Initialize() *Analytics {
	once.Do(func() {
		analytics = &Analytics{
			UniqueVisitors: make(map[string]time.Time),
			PopularDomains: make(map[string]int),
			LastPersisted:  time.Now(),
		}

		if err := analytics.Load(); err != nil {
			fmt.Printf("Could not load existing analytics: %v\n", err)
		}
	})
	return analytics
}

// TrackVisitor records a unique visitor.
func (a *Analytics) TrackVisitor(ip string) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.UniqueVisitors[ip] = time.Now()
}

// analyzedDomain reduces a target URL to its bare hostname for aggregation.
// Local and API URLs are filtered out.
func analyzedDomain(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	if host == "" || strings.Contains(host, "localhost") || host == "127.0.0.1" {
		return ""
	}

	return strings.TrimPrefix(host, "www.")
}

// TrackAnalysis records one analysis request against the target URL.
func (a *Analytics) TrackAnalysis(target string, durationMs float64, hasError bool) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.AnalysisRequests++

	if domain := analyzedDomain(target); domain != "" {
		a.PopularDomains[domain]++
	}

	if hasError {
		a.ErrorCount++
	}

	a.TotalDuration += durationMs
	a.RequestCount++
	a.AverageDuration = a.TotalDuration / float64(a.RequestCount)
}

// TrackLead records a captured lead.
func (a *Analytics) TrackLead() {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.LeadsCaptured++
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last 24 hours.
func (a *Analytics) GetUniqueVisitorsCount() int {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	count := 0
	cutoff := time.Now().Add(-24 * time.Hour)

	for _, lastVisit := range a.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}

	return count
}

// GetPopularDomains returns up to n analyzed domains with their counts.
func (a *Analytics) GetPopularDomains(n int) map[string]int {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	result := make(map[string]int)
	count := 0

	for domain, freq := range a.PopularDomains {
		if count < n {
			result[domain] = freq
			count++
		}
	}

	return result
}

// GetErrorRate returns the error rate as a percentage.
func (a *Analytics) GetErrorRate() float64 {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	if a.AnalysisRequests == 0 {
		return 0
	}

	return (float64(a.ErrorCount) / float64(a.AnalysisRequests)) * 100
}

// Save persists the analytics to disk.
func (a *Analytics) Save() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.LastPersisted = time.Now()

	file, err := os.Create(statePath)
	if err != nil {
		return fmt.Errorf("could not create analytics file: %v", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	if err := encoder.Encode(a); err != nil {
		return fmt.Errorf("could not encode analytics: %v", err)
	}

	return nil
}

// Load reads the analytics from disk.
func (a *Analytics) Load() error {
	file, err := os.Open(statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Not an error if file doesn't exist yet
		}
		return fmt.Errorf("could not open analytics file: %v", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(a); err != nil {
		return fmt.Errorf("could not decode analytics: %v", err)
	}

	return nil
}

// Snapshot returns the current analytics. The full picture is only exposed
// in development mode.
func (a *Analytics) Snapshot() map[string]interface{} {
	visitors := a.GetUniqueVisitorsCount()
	errorRate := a.GetErrorRate()

	a.mutex.RLock()
	totalRequests := a.AnalysisRequests
	avgDuration := a.AverageDuration
	leads := a.LeadsCaptured
	a.mutex.RUnlock()

	snapshot := map[string]interface{}{
		"uniqueVisitors24h": visitors,
		"totalRequests":     totalRequests,
		"errorRate":         errorRate,
		"averageDurationMs": avgDuration,
	}

	if os.Getenv(ENV_DEV_MODE) == "true" {
		snapshot["leadsCaptured"] = leads
		snapshot["popularDomains"] = a.GetPopularDomains(5)
	}

	return snapshot
}
