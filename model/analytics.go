package model

import "time"

// CheckEvent represents a single check for analytics tracking
type CheckEvent struct {
	SessionID     string         `json:"session_id,omitempty"`
	TotalMatches  int            `json:"total_matches"`
	DistinctTerms int            `json:"distinct_terms"`
	WordCount     int            `json:"word_count"`
	ResponseTime  time.Duration  `json:"response_time"`
	Terms         map[string]int `json:"terms,omitempty"` // Surface text -> occurrences in this check
	Timestamp     time.Time      `json:"timestamp"`
}

// TermFrequency represents aggregated data for a frequently flagged term
type TermFrequency struct {
	Term        string `json:"term"`
	Occurrences int    `json:"occurrences"`
	CheckCount  int    `json:"check_count"` // Number of checks in which the term was flagged
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	TotalChecks     int             `json:"total_checks"`
	ChecksLast24h   int             `json:"checks_last_24h"`
	CleanChecks     int             `json:"clean_checks"` // Checks that found zero matches
	TotalMatches    int             `json:"total_matches"`
	TotalWords      int             `json:"total_words"`
	AvgResponseTime int64           `json:"avg_response_time"` // in milliseconds
	ActiveSessions  int             `json:"active_sessions"`
	TopTerms        []TermFrequency `json:"top_terms"`
	MatchesPer1000  float64         `json:"matches_per_1000_words"`
}
