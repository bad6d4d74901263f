package query

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	contractx "github.com/tanpawarit/RetailAnalyst/agent/contract"
)

const (
	minQueryLength   = 2
	maxQueryLength   = 500
	maxSectionLength = 50
	maxRangeDays     = 30
)

// Patterns that suggest injection attempts rather than analytics questions.
var harmfulPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)drop\s+table`),
	regexp.MustCompile(`(?i)delete\s+from`),
	regexp.MustCompile(`(?i)update\s+.+\s+set`),
	regexp.MustCompile(`(?i)insert\s+into`),
	regexp.MustCompile(`(?i)exec\(|eval\(`),
	regexp.MustCompile(`(?i)__import__`),
	regexp.MustCompile(`(?i)os\.system`),
	regexp.MustCompile(`(?i)subprocess\.`),
}

var retailKeywords = []string{
	"visitor", "customer", "section", "cashier", "queue",
	"wait", "busy", "traffic", "heatmap", "analytics",
	"report", "prediction", "forecast", "compare", "how many",
	"what is", "show me", "tell me", "analyze",
}

var sectionNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`)

// ValidateQuery rejects queries that are unsafe, malformed, or clearly not
// about retail analytics.
func ValidateQuery(q string) error {
	for _, pattern := range harmfulPatterns {
		if pattern.MatchString(q) {
			return fmt.Errorf("%w: query contains potentially harmful content", contractx.ErrQueryRejected)
		}
	}

	if len(strings.TrimSpace(q)) < minQueryLength {
		return fmt.Errorf("%w: query is too short", contractx.ErrQueryRejected)
	}
	if len(q) > maxQueryLength {
		return fmt.Errorf("%w: query is too long (max %d characters)", contractx.ErrQueryRejected, maxQueryLength)
	}

	lower := strings.ToLower(q)
	for _, keyword := range retailKeywords {
		if strings.Contains(lower, keyword) {
			return nil
		}
	}
	return fmt.Errorf("%w: query doesn't appear to be about retail analytics", contractx.ErrQueryRejected)
}

// ValidateSectionName reports whether a store section name is usable as a
// lookup key.
func ValidateSectionName(section string) bool {
	trimmed := strings.TrimSpace(section)
	if trimmed == "" {
		return false
	}
	if len(section) > maxSectionLength {
		return false
	}
	return sectionNamePattern.MatchString(section)
}

// ValidateTimeRange checks an ISO-8601 start/end pair.
func ValidateTimeRange(startTime, endTime string) error {
	start, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		return fmt.Errorf("%w: invalid time format", contractx.ErrValidation)
	}
	end, err := time.Parse(time.RFC3339, endTime)
	if err != nil {
		return fmt.Errorf("%w: invalid time format", contractx.ErrValidation)
	}

	if start.After(end) {
		return fmt.Errorf("%w: start time must be before end time", contractx.ErrValidation)
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: time range cannot exceed %d days", contractx.ErrValidation, maxRangeDays)
	}
	return nil
}
