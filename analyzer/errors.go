// Package analyzer implements the AI readiness scoring engine: text
// extraction, readability estimation, heuristic metric analyzers, the
// auxiliary file prober and the weighted score aggregator.
package analyzer

import "fmt"

// InvalidURLError reports input that fails URL parsing after protocol
// normalization. The request aborts before any analysis runs.
type InvalidURLError struct {
	URL string
	Err error
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid URL %q: %v", e.URL, e.Err)
}

func (e *InvalidURLError) Unwrap() error { return e.Err }

// NoContentError reports empty or absent page HTML. The request aborts
// before metric analysis.
type NoContentError struct {
	URL string
}

func (e *NoContentError) Error() string {
	return fmt.Sprintf("no content fetched for %s", e.URL)
}
