package checklist

import (
	"fmt"
	"strings"
	"time"

	"stagehand/internal/event"
)

// FormatScoring summarizes the scoring setup for the checklist row:
// "Judges only", "Audience only", or a mixed percentage breakdown.
func FormatScoring(rec event.Record) string {
	if rec.ScoringMode == nil {
		return ""
	}
	switch *rec.ScoringMode {
	case event.ScoringJudges:
		return "Judges only"
	case event.ScoringAudience:
		return "Audience only"
	case event.ScoringMixed:
		j := asPercent(rec.ScoringJudge)
		a := asPercent(rec.ScoringAudience)
		if j == 0 && a == 0 {
			return "Mixed"
		}
		return fmt.Sprintf("Mixed (%d%% judges / %d%% audience)", j, a)
	}
	return string(*rec.ScoringMode)
}

// asPercent accepts both fraction (0.6) and percentage (60) encodings.
func asPercent(p *float64) int {
	if p == nil {
		return 0
	}
	v := *p
	if v <= 1 {
		v *= 100
	}
	return int(v + 0.5)
}

var dateTimeLayouts = []string{
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// FormatDateTimeRange renders the start/end pair as one line. Same-day
// ranges collapse the second date; unparseable inputs pass through as-is.
func FormatDateTimeRange(start, end *string) string {
	if start == nil {
		return ""
	}
	st, sok := parseDateTime(*start)
	if end == nil {
		if !sok {
			return *start
		}
		return st.Format("Mon, Jan 2 2006 15:04")
	}
	et, eok := parseDateTime(*end)
	if !sok || !eok {
		return strings.TrimSpace(*start) + " to " + strings.TrimSpace(*end)
	}
	if st.Year() == et.Year() && st.YearDay() == et.YearDay() {
		return fmt.Sprintf("%s to %s", st.Format("Mon, Jan 2 2006 15:04"), et.Format("15:04"))
	}
	return fmt.Sprintf("%s to %s", st.Format("Mon, Jan 2 2006 15:04"), et.Format("Mon, Jan 2 2006 15:04"))
}

func parseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
