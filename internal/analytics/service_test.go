package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/gcbaptista/go-style-checker/model"
)

// MockSessionLister is a simple mock for testing
type MockSessionLister struct {
	sessions []model.SessionInfo
}

func (m *MockSessionLister) ListSessions() []model.SessionInfo { return m.sessions }

func TestAnalyticsService_TrackCheckEvent(t *testing.T) {
	service := NewService(&MockSessionLister{}, "")

	event := model.CheckEvent{
		SessionID:    "session-1",
		TotalMatches: 2,
		WordCount:    10,
		ResponseTime: 5 * time.Millisecond,
		Terms:        map[string]int{"teh": 2},
	}

	if err := service.TrackCheckEvent(event); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(service.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(service.events))
	}
	stored := service.events[0]
	if stored.SessionID != "session-1" {
		t.Errorf("Expected SessionID session-1, got %s", stored.SessionID)
	}
	if stored.Timestamp.IsZero() {
		t.Error("Expected the timestamp to be set")
	}
}

func TestAnalyticsService_GetDashboardData(t *testing.T) {
	lister := &MockSessionLister{sessions: []model.SessionInfo{{ID: "a"}, {ID: "b"}}}
	service := NewService(lister, "")
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	events := []model.CheckEvent{
		{TotalMatches: 3, WordCount: 100, ResponseTime: 10 * time.Millisecond, Terms: map[string]int{"teh": 2, "recieve": 1}, Timestamp: now.Add(-time.Hour)},
		{TotalMatches: 1, WordCount: 50, ResponseTime: 30 * time.Millisecond, Terms: map[string]int{"recieve": 1}, Timestamp: now.Add(-2 * time.Hour)},
		{TotalMatches: 0, WordCount: 50, ResponseTime: 20 * time.Millisecond, Timestamp: now.Add(-48 * time.Hour)},
	}
	for _, event := range events {
		if err := service.TrackCheckEvent(event); err != nil {
			t.Fatalf("Failed to track event: %v", err)
		}
	}

	dashboard, err := service.GetDashboardData()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if dashboard.TotalChecks != 3 {
		t.Errorf("Expected 3 total checks, got %d", dashboard.TotalChecks)
	}
	if dashboard.ChecksLast24h != 2 {
		t.Errorf("Expected 2 checks in the last 24h, got %d", dashboard.ChecksLast24h)
	}
	if dashboard.CleanChecks != 1 {
		t.Errorf("Expected 1 clean check, got %d", dashboard.CleanChecks)
	}
	if dashboard.TotalMatches != 4 || dashboard.TotalWords != 200 {
		t.Errorf("Expected 4 matches over 200 words, got %d over %d", dashboard.TotalMatches, dashboard.TotalWords)
	}
	if dashboard.MatchesPer1000 != 20 {
		t.Errorf("Expected 20 matches per 1000 words, got %v", dashboard.MatchesPer1000)
	}
	if dashboard.AvgResponseTime != 20 {
		t.Errorf("Expected 20ms average response time, got %d", dashboard.AvgResponseTime)
	}
	if dashboard.ActiveSessions != 2 {
		t.Errorf("Expected 2 active sessions, got %d", dashboard.ActiveSessions)
	}

	want := []model.TermFrequency{
		{Term: "recieve", Occurrences: 2, CheckCount: 2},
		{Term: "teh", Occurrences: 2, CheckCount: 1},
	}
	if len(dashboard.TopTerms) != len(want) {
		t.Fatalf("Expected %d top terms, got %+v", len(want), dashboard.TopTerms)
	}
	for i := range want {
		if dashboard.TopTerms[i] != want[i] {
			t.Errorf("Top term %d: expected %+v, got %+v", i, want[i], dashboard.TopTerms[i])
		}
	}
}

func TestAnalyticsService_EmptyDashboard(t *testing.T) {
	service := NewService(nil, "")

	dashboard, err := service.GetDashboardData()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if dashboard.TotalChecks != 0 || dashboard.MatchesPer1000 != 0 || dashboard.ActiveSessions != 0 {
		t.Errorf("Expected an empty dashboard, got %+v", dashboard)
	}
	if dashboard.TopTerms == nil {
		t.Error("Expected an empty, non-nil top terms list")
	}
}

func TestAnalyticsService_TopTermsLimit(t *testing.T) {
	service := NewService(nil, "")
	terms := make(map[string]int)
	for i := 0; i < topTermsLimit+5; i++ {
		terms[fmt.Sprintf("term-%02d", i)] = i + 1
	}
	if err := service.TrackCheckEvent(model.CheckEvent{TotalMatches: 1, Terms: terms}); err != nil {
		t.Fatal(err)
	}

	dashboard, _ := service.GetDashboardData()
	if len(dashboard.TopTerms) != topTermsLimit {
		t.Fatalf("Expected %d top terms, got %d", topTermsLimit, len(dashboard.TopTerms))
	}
	if dashboard.TopTerms[0].Term != "term-14" {
		t.Errorf("Expected the most frequent term first, got %s", dashboard.TopTerms[0].Term)
	}
}

func TestAnalyticsService_Persistence(t *testing.T) {
	dir := t.TempDir()

	service := NewService(nil, dir)
	if err := service.TrackCheckEvent(model.CheckEvent{SessionID: "s", TotalMatches: 1, Terms: map[string]int{"teh": 1}}); err != nil {
		t.Fatal(err)
	}

	reloaded := NewService(nil, dir)
	if len(reloaded.events) != 1 {
		t.Fatalf("Expected 1 persisted event, got %d", len(reloaded.events))
	}
	if reloaded.events[0].Terms["teh"] != 1 {
		t.Errorf("Expected persisted term counts, got %+v", reloaded.events[0].Terms)
	}
}

func TestAnalyticsService_TrimsOldEvents(t *testing.T) {
	service := NewService(nil, "")
	for i := 0; i < maxEventsToKeep+3; i++ {
		service.events = append(service.events, model.CheckEvent{WordCount: i})
	}
	if err := service.TrackCheckEvent(model.CheckEvent{WordCount: -1}); err != nil {
		t.Fatal(err)
	}

	if len(service.events) != maxEventsToKeep {
		t.Fatalf("Expected %d events, got %d", maxEventsToKeep, len(service.events))
	}
	if service.events[len(service.events)-1].WordCount != -1 {
		t.Error("Expected the newest event to be kept")
	}
}
