package assistant

import (
	"strings"
	"time"
)

// defaultConfidence is assigned to every parsed insight; the model is never
// asked for a numeric confidence on the free-text path.
const defaultConfidence = 75

// ParseInsights segments free model text into insights with a two-state line
// classifier. A line containing "Insight", "Alert", or "Recommendation"
// starts a new record, flushing any record in progress. Subsequent non-empty
// lines either set the action (when carrying an "Action:" or
// "Recommendation:" label) or accumulate into the description. Blank lines
// are skipped without flushing; end of input flushes the last record.
func ParseInsights(text string) []Insight {
	insights := []Insight{}
	var current *Insight

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.Contains(line, "Insight") ||
			strings.Contains(line, "Alert") ||
			strings.Contains(line, "Recommendation") {
			if current != nil {
				insights = append(insights, *current)
			}
			kind := InsightRecommendation
			if strings.Contains(line, "Alert") {
				kind = InsightAlert
			}
			current = &Insight{
				Type:       kind,
				Title:      trimmed,
				Confidence: defaultConfidence,
			}
			continue
		}
		if current == nil {
			continue
		}
		if strings.Contains(line, "Action:") || strings.Contains(line, "Recommendation:") {
			current.Action = stripActionLabel(line)
		} else {
			current.Description += trimmed + " "
		}
	}
	if current != nil {
		insights = append(insights, *current)
	}
	return insights
}

// stripActionLabel removes the first "Action:" or "Recommendation:" label,
// whichever occurs earlier in the line.
func stripActionLabel(line string) string {
	ai := strings.Index(line, "Action:")
	ri := strings.Index(line, "Recommendation:")
	switch {
	case ai >= 0 && (ri < 0 || ai < ri):
		line = line[:ai] + line[ai+len("Action:"):]
	case ri >= 0:
		line = line[:ri] + line[ri+len("Recommendation:"):]
	}
	return strings.TrimSpace(line)
}

// ParseAlerts extracts one alert per matching line. A line containing
// "Alert", "Warning", or "Action Required" becomes its own record; priority
// is high iff the line contains "Critical". Non-matching lines are dropped.
func ParseAlerts(text string, now time.Time) []Alert {
	alerts := []Alert{}
	ts := now.Format(time.RFC3339)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.Contains(line, "Alert") &&
			!strings.Contains(line, "Warning") &&
			!strings.Contains(line, "Action Required") {
			continue
		}
		priority := PriorityMedium
		if strings.Contains(line, "Critical") {
			priority = PriorityHigh
		}
		alerts = append(alerts, Alert{
			Type:      "alert",
			Title:     trimmed,
			Priority:  priority,
			Timestamp: ts,
		})
	}
	return alerts
}
