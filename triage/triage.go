// Package triage converts free-text symptom reports into an urgency level.
package triage

import "strings"

type Level string

const (
	Low    Level = "Low"
	Medium Level = "Medium"
	High   Level = "High"
)

// UrgentThreshold marks the score above which an appointment is flagged
// urgent in queue views.
const UrgentThreshold = 80

const (
	scoreHigh   = 90
	scoreMedium = 60
	scoreLow    = 30
)

// High keywords are checked before medium ones: a report containing both
// "chest" and "fever" must classify as High.
var highKeywords = []string{"chest", "breath", "heart"}
var mediumKeywords = []string{"fever", "flu", "pain"}

type Result struct {
	Level Level `json:"level"`
	Score int   `json:"score"`
}

// Classify maps a symptom report to an urgency level and score. Matching is
// case-insensitive substring search; an empty or unrecognized report is Low.
// Classify never fails.
func Classify(symptoms string) Result {
	lower := strings.ToLower(symptoms)
	if containsAny(lower, highKeywords) {
		return Result{Level: High, Score: scoreHigh}
	}
	if containsAny(lower, mediumKeywords) {
		return Result{Level: Medium, Score: scoreMedium}
	}
	return Result{Level: Low, Score: scoreLow}
}

// Urgent reports whether the score falls in the band flagged for immediate
// attention.
func (r Result) Urgent() bool {
	return r.Score > UrgentThreshold
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
