// Package store persists analysis reports and captured leads in SQLite.
// Reports are opaque JSON blobs keyed by a generated id; the scoring engine
// knows nothing about the backing store.
package store

import (
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/ai-ready/backend/analyzer"
)

// ErrNotFound is returned when no report exists for the requested id.
var ErrNotFound = sql.ErrNoRows

// Store handles all database operations.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// ReportSummary is the listing row for recent reports.
type ReportSummary struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	OverallScore int       `json:"overallScore"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Lead is a captured contact.
type Lead struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	URL       string    `json:"url,omitempty"`
	ReportID  string    `json:"reportId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Open creates the database connection and ensures the schema exists.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("%s?_journal=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveReport persists a report and returns its generated id. A later
// analysis of the same URL produces a new row with a new id; reports are
// never updated in place.
func (s *Store) SaveReport(report *analyzer.AnalysisReport) (string, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	id := generateReportID(report.URL)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(`
		INSERT INTO reports (id, url, overall_score, payload)
		VALUES (?, ?, ?, ?)
	`, id, report.URL, report.OverallScore, string(payload))
	if err != nil {
		return "", fmt.Errorf("failed to insert report: %w", err)
	}

	return id, nil
}

// GetReport fetches a stored report by id.
func (s *Store) GetReport(id string) (*analyzer.AnalysisReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRow(`SELECT payload FROM reports WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		return nil, err
	}

	var report analyzer.AnalysisReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report %s: %w", id, err)
	}
	return &report, nil
}

// RecentReports lists the most recently created reports.
func (s *Store) RecentReports(limit int) ([]ReportSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, url, overall_score, created_at
		FROM reports
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []ReportSummary
	for rows.Next() {
		var sum ReportSummary
		if err := rows.Scan(&sum.ID, &sum.URL, &sum.OverallScore, &sum.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// SaveLead persists a captured lead.
func (s *Store) SaveLead(lead *Lead) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`
		INSERT INTO leads (email, url, report_id)
		VALUES (?, ?, ?)
	`, lead.Email, lead.URL, nullable(lead.ReportID))
	if err != nil {
		return 0, fmt.Errorf("failed to insert lead: %w", err)
	}

	return result.LastInsertId()
}

// CountLeads returns the total number of captured leads.
func (s *Store) CountLeads() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM leads`).Scan(&count)
	return count, err
}

// generateReportID derives a short unique id from the URL and creation time.
func generateReportID(url string) string {
	seed := url + "|" + strconv.FormatInt(time.Now().UnixNano(), 10)
	hash := md5.Sum([]byte(seed))
	return hex.EncodeToString(hash[:8])
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
