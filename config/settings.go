// Package config provides configuration structures for the style checker.
// It defines per-session check settings and the server configuration.
package config

import (
	"fmt"
	"strings"
)

const (
	// DefaultContextRadius is the number of runes kept on each side of a match
	DefaultContextRadius = 30

	// OverlapAll emits every match, even when matches of different terms overlap
	OverlapAll = "all"
	// OverlapLongest keeps only the leftmost-longest match among overlapping ones
	OverlapLongest = "longest"

	LanguageEnglish = "en"
	LanguageArabic  = "ar"
)

// CheckSettings contains the options that shape a check and its reports.
//
// OverlapPolicy decides what happens when two dictionary terms match
// overlapping spans. The default ("all") reports both matches, which is what
// independent per-term scanning yields. "longest" keeps the leftmost-longest
// match and drops the others; it changes the output and must be opted into.
type CheckSettings struct {
	ContextRadius  int    `json:"context_radius" toml:"context_radius"`   // Runes of context on each side of a match (e.g., 30)
	OverlapPolicy  string `json:"overlap_policy" toml:"overlap_policy"`   // "all" or "longest"
	ReportLanguage string `json:"report_language" toml:"report_language"` // Report captions: "en" or "ar"
}

// ApplyDefaults applies default values to the check settings
func (s *CheckSettings) ApplyDefaults() {
	if s.ContextRadius <= 0 {
		s.ContextRadius = DefaultContextRadius
	}
	if s.OverlapPolicy == "" {
		s.OverlapPolicy = OverlapAll
	}
	if s.ReportLanguage == "" {
		s.ReportLanguage = LanguageEnglish
	}
	s.OverlapPolicy = strings.ToLower(s.OverlapPolicy)
	s.ReportLanguage = strings.ToLower(s.ReportLanguage)
}

// Validate returns one message per invalid setting.
func (s *CheckSettings) Validate() []string {
	var errors []string

	if s.ContextRadius < 0 {
		errors = append(errors, fmt.Sprintf("context_radius must not be negative (got %d)", s.ContextRadius))
	}

	switch strings.ToLower(s.OverlapPolicy) {
	case "", OverlapAll, OverlapLongest:
	default:
		errors = append(errors, "Invalid overlap_policy '"+s.OverlapPolicy+"' (must be 'all' or 'longest')")
	}

	switch strings.ToLower(s.ReportLanguage) {
	case "", LanguageEnglish, LanguageArabic:
	default:
		errors = append(errors, "Invalid report_language '"+s.ReportLanguage+"' (must be 'en' or 'ar')")
	}

	return errors
}

// DefaultCheckSettings returns settings with every default applied.
func DefaultCheckSettings() CheckSettings {
	s := CheckSettings{}
	s.ApplyDefaults()
	return s
}
