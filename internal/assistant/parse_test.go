package assistant

import (
	"testing"
	"time"
)

func TestParseInsights_SingleRecordAccumulatesDescription(t *testing.T) {
	text := "Alert: X\nfirst line\nsecond line"
	got := ParseInsights(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(got))
	}
	in := got[0]
	if in.Type != InsightAlert {
		t.Fatalf("expected type alert, got %q", in.Type)
	}
	if in.Title != "Alert: X" {
		t.Fatalf("unexpected title %q", in.Title)
	}
	if in.Description != "first line second line " {
		t.Fatalf("unexpected description %q", in.Description)
	}
	if in.Confidence != 75 {
		t.Fatalf("expected confidence 75, got %d", in.Confidence)
	}
	if in.Action != "" {
		t.Fatalf("expected empty action, got %q", in.Action)
	}
}

func TestParseInsights_BlankLinesSkippedWithoutFlush(t *testing.T) {
	text := "Alert: stock\n\nonly continuation"
	got := ParseInsights(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(got))
	}
	if got[0].Description != "only continuation " {
		t.Fatalf("unexpected description %q", got[0].Description)
	}
}

func TestParseInsights_ActionLabelOverwrites(t *testing.T) {
	text := "Recommendation: Reorder\nStock is low.\nAction: Reorder 200kg"
	got := ParseInsights(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(got))
	}
	in := got[0]
	if in.Title != "Recommendation: Reorder" {
		t.Fatalf("unexpected title %q", in.Title)
	}
	if in.Description != "Stock is low. " {
		t.Fatalf("unexpected description %q", in.Description)
	}
	if in.Action != "Reorder 200kg" {
		t.Fatalf("unexpected action %q", in.Action)
	}
}

func TestParseInsights_SecondActionLineOverwritesFirst(t *testing.T) {
	text := "Insight: margins\nAction: do A\nAction: do B"
	got := ParseInsights(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(got))
	}
	if got[0].Action != "do B" {
		t.Fatalf("expected last action to win, got %q", got[0].Action)
	}
	if got[0].Description != "" {
		t.Fatalf("action lines must not leak into description, got %q", got[0].Description)
	}
}

func TestParseInsights_MarkerFlushesInProgressRecord(t *testing.T) {
	text := "Alert: one\ndetail one\nRecommendation: two\ndetail two"
	got := ParseInsights(text)
	if len(got) != 2 {
		t.Fatalf("expected 2 insights, got %d", len(got))
	}
	if got[0].Type != InsightAlert || got[1].Type != InsightRecommendation {
		t.Fatalf("unexpected types %q, %q", got[0].Type, got[1].Type)
	}
	if got[1].Description != "detail two " {
		t.Fatalf("unexpected second description %q", got[1].Description)
	}
}

func TestParseInsights_LeadingProseBeforeFirstMarkerDropped(t *testing.T) {
	text := "Here are your insights:\nAlert: one\ndetail"
	got := ParseInsights(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(got))
	}
	if got[0].Description != "detail " {
		t.Fatalf("unexpected description %q", got[0].Description)
	}
}

func TestParseInsights_EmptyInput(t *testing.T) {
	if got := ParseInsights(""); len(got) != 0 {
		t.Fatalf("expected no insights, got %d", len(got))
	}
}

func TestParseAlerts_PriorityDerivation(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	text := "Critical Alert: lots expiring\nWarning: potato stock low\njust some prose line"
	got := ParseAlerts(text, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(got))
	}
	if got[0].Priority != PriorityHigh {
		t.Fatalf("expected high priority, got %q", got[0].Priority)
	}
	if got[1].Priority != PriorityMedium {
		t.Fatalf("expected medium priority, got %q", got[1].Priority)
	}
	for _, a := range got {
		if a.Type != "alert" {
			t.Fatalf("expected fixed type alert, got %q", a.Type)
		}
		if a.Timestamp != now.Format(time.RFC3339) {
			t.Fatalf("unexpected timestamp %q", a.Timestamp)
		}
	}
}

func TestParseAlerts_ActionRequiredMarker(t *testing.T) {
	got := ParseAlerts("Action Required: restock onions today", time.Now())
	if len(got) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(got))
	}
	if got[0].Priority != PriorityMedium {
		t.Fatalf("expected medium priority, got %q", got[0].Priority)
	}
}

func TestParseAlerts_NonMatchingLinesDropped(t *testing.T) {
	if got := ParseAlerts("prices stable\nall good\n", time.Now()); len(got) != 0 {
		t.Fatalf("expected no alerts, got %d", len(got))
	}
}
