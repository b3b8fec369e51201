package analytics

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gcbaptista/go-style-checker/model"
	"github.com/gcbaptista/go-style-checker/services"
)

const (
	analyticsFileName = "analytics.json"
	maxEventsToKeep   = 10000 // Keep last 10k events for performance
	topTermsLimit     = 10
)

// Service implements analytics tracking and reporting
type Service struct {
	mutex        sync.RWMutex
	saveMutex    sync.Mutex
	events       []model.CheckEvent
	sessions     services.SessionLister
	dataFilePath string // Empty keeps analytics in memory only
	now          func() time.Time
}

// NewService creates a new analytics service storing its events in dataDir.
// An empty dataDir disables persistence.
func NewService(sessions services.SessionLister, dataDir string) *Service {
	service := &Service{
		events:   make([]model.CheckEvent, 0),
		sessions: sessions,
		now:      time.Now,
	}
	if dataDir != "" {
		service.dataFilePath = filepath.Join(dataDir, analyticsFileName)
	}

	if err := service.loadData(); err != nil {
		log.Printf("Warning: Failed to load analytics data: %v", err)
	}

	return service
}

// TrackCheckEvent records a new check event
func (s *Service) TrackCheckEvent(event model.CheckEvent) error {
	s.mutex.Lock()
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
	events := append([]model.CheckEvent(nil), s.events...)
	s.mutex.Unlock()

	if err := s.saveData(events); err != nil {
		log.Printf("Warning: Failed to save analytics data: %v", err)
	}
	return nil
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData() (model.AnalyticsDashboard, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	yesterday := s.now().Add(-24 * time.Hour)

	dashboard := model.AnalyticsDashboard{
		TotalChecks:     len(s.events),
		AvgResponseTime: calculateAvgResponseTime(s.events),
		ActiveSessions:  s.getActiveSessionsCount(),
		TopTerms:        getTopTerms(s.events, topTermsLimit),
	}

	for _, event := range s.events {
		if event.Timestamp.After(yesterday) {
			dashboard.ChecksLast24h++
		}
		if event.TotalMatches == 0 {
			dashboard.CleanChecks++
		}
		dashboard.TotalMatches += event.TotalMatches
		dashboard.TotalWords += event.WordCount
	}
	if dashboard.TotalWords > 0 {
		dashboard.MatchesPer1000 = float64(dashboard.TotalMatches) * 1000 / float64(dashboard.TotalWords)
	}

	return dashboard, nil
}

// calculateAvgResponseTime calculates average response time for events in milliseconds
func calculateAvgResponseTime(events []model.CheckEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	return (total / time.Duration(len(events))).Milliseconds()
}

func (s *Service) getActiveSessionsCount() int {
	if s.sessions == nil {
		return 0
	}
	return len(s.sessions.ListSessions())
}

// getTopTerms returns the most frequently flagged terms, most occurrences
// first, ties broken by term.
func getTopTerms(events []model.CheckEvent, limit int) []model.TermFrequency {
	byTerm := make(map[string]*model.TermFrequency)
	for _, event := range events {
		for term, count := range event.Terms {
			freq, ok := byTerm[term]
			if !ok {
				freq = &model.TermFrequency{Term: term}
				byTerm[term] = freq
			}
			freq.Occurrences += count
			freq.CheckCount++
		}
	}

	terms := make([]model.TermFrequency, 0, len(byTerm))
	for _, freq := range byTerm {
		terms = append(terms, *freq)
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Occurrences != terms[j].Occurrences {
			return terms[i].Occurrences > terms[j].Occurrences
		}
		return terms[i].Term < terms[j].Term
	})

	if len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}

// loadData loads analytics data from file
func (s *Service) loadData() error {
	if s.dataFilePath == "" {
		return nil
	}

	data, err := os.ReadFile(s.dataFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist yet, that's okay
		}
		return fmt.Errorf("failed to read analytics file: %w", err)
	}

	if err := json.Unmarshal(data, &s.events); err != nil {
		return fmt.Errorf("failed to unmarshal analytics data: %w", err)
	}
	return nil
}

// saveData saves analytics data to file
func (s *Service) saveData(events []model.CheckEvent) error {
	if s.dataFilePath == "" {
		return nil
	}
	s.saveMutex.Lock()
	defer s.saveMutex.Unlock()

	dir := filepath.Dir(s.dataFilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create analytics directory: %w", err)
	}

	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analytics data: %w", err)
	}

	if err := os.WriteFile(s.dataFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write analytics file: %w", err)
	}
	return nil
}
