// Package stats persists monthly usage counters for the analysis service.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MonthlyStats holds the counters for one calendar month.
type MonthlyStats struct {
	Analyses    int       `json:"analyses"`
	CacheHits   int       `json:"cache_hits"`
	CacheMisses int       `json:"cache_misses"`
	Failures    int       `json:"failures"`
	ProbeMisses int       `json:"probe_misses"`
	LastUpdated time.Time `json:"last_updated"`
}

// Storage handles persistent storage of usage statistics.
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
}

// NewStorage creates a storage instance persisting under dataDir.
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "usage.json"),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load usage stats: %w", err)
	}

	go s.backgroundWriter()

	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

// save writes the counters through a temp file and an atomic rename.
func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal usage stats: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

func (s *Storage) backgroundWriter() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.save()
		case <-ticker.C:
			s.save()
		case <-s.done:
			s.save()
			return
		}
	}
}

func currentMonth() string {
	return time.Now().Format("2006-01")
}

func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
		// Write already pending.
	}
}

func (s *Storage) monthLocked() *MonthlyStats {
	month := currentMonth()
	stats, exists := s.stats[month]
	if !exists {
		stats = &MonthlyStats{}
		s.stats[month] = stats
	}
	return stats
}

// RecordAnalysis counts one analysis request and its cache outcome.
func (s *Storage) RecordAnalysis(cacheHit bool) {
	s.mutex.Lock()
	stats := s.monthLocked()
	stats.Analyses++
	if cacheHit {
		stats.CacheHits++
	} else {
		stats.CacheMisses++
	}
	stats.LastUpdated = time.Now()
	s.mutex.Unlock()

	s.maybeRequestWrite()
}

// RecordFailure counts one failed analysis.
func (s *Storage) RecordFailure() {
	s.mutex.Lock()
	stats := s.monthLocked()
	stats.Failures++
	stats.LastUpdated = time.Now()
	s.mutex.Unlock()

	s.maybeRequestWrite()
}

// RecordProbeMisses counts auxiliary file probes that found nothing.
func (s *Storage) RecordProbeMisses(n int) {
	s.mutex.Lock()
	stats := s.monthLocked()
	stats.ProbeMisses += n
	stats.LastUpdated = time.Now()
	s.mutex.Unlock()

	s.maybeRequestWrite()
}

func (s *Storage) maybeRequestWrite() {
	s.mutex.Lock()
	due := time.Since(s.lastWrite) > time.Minute
	if due {
		s.lastWrite = time.Now()
	}
	s.mutex.Unlock()

	if due {
		s.requestWrite()
	}
}

// GetCurrentStats returns the counters for the current month.
func (s *Storage) GetCurrentStats() MonthlyStats {
	month := currentMonth()

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[month]; exists {
		return *stats
	}
	return MonthlyStats{}
}

// Shutdown stops the background writer after a final save.
func (s *Storage) Shutdown() error {
	close(s.done)
	return s.save()
}
