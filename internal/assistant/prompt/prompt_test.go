package prompt

import (
	"strings"
	"testing"
)

type snapshot struct {
	Inventory []string `json:"inventory"`
	Season    string   `json:"season"`
}

func testSnapshot() snapshot {
	return snapshot{Inventory: []string{"Tomatoes", "Onions"}, Season: "monsoon"}
}

func TestSearch_EmbedsSnapshotAndQuery(t *testing.T) {
	out := Search(testSnapshot(), "expiring lots")
	for _, want := range []string{"[BUSINESS_CONTEXT]", "[QUERY]", "Tomatoes", "expiring lots"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in prompt:\n%s", want, out)
		}
	}
}

func TestSearch_Deterministic(t *testing.T) {
	a := Search(testSnapshot(), "q")
	b := Search(testSnapshot(), "q")
	if a != b {
		t.Fatal("identical inputs must produce identical prompts")
	}
}

func TestInsights_NamesMarkerWords(t *testing.T) {
	out := Insights(testSnapshot())
	for _, want := range []string{"Insight", "Alert", "Recommendation", "Action:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected marker %q in instructions", want)
		}
	}
}

func TestPricing_EmbedsItemAndPrice(t *testing.T) {
	out := Pricing(testSnapshot(), "Tomatoes", 42.5)
	if !strings.Contains(out, `"Tomatoes"`) {
		t.Fatal("expected item name in prompt")
	}
	if !strings.Contains(out, "42.50") {
		t.Fatal("expected current price in prompt")
	}
}

func TestAlerts_AsksForMarkerLines(t *testing.T) {
	out := Alerts(testSnapshot())
	for _, want := range []string{"Alert", "Warning", "Action Required", "Critical"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in alert instructions", want)
		}
	}
}

func TestCustomerAnalysis_EmbedsBothObjects(t *testing.T) {
	out := CustomerAnalysis(testSnapshot(), map[string]any{"name": "Gupta Wholesale"})
	if !strings.Contains(out, "Gupta Wholesale") {
		t.Fatal("expected customer data in prompt")
	}
	if !strings.Contains(out, "monsoon") {
		t.Fatal("expected snapshot in prompt")
	}
}

func TestChatSystem_EmbedsEnrichedContext(t *testing.T) {
	out := ChatSystem(map[string]any{"userQuery": "how are sales?"})
	if !strings.Contains(out, "how are sales?") {
		t.Fatal("expected enriched context in system prompt")
	}
	if !strings.Contains(out, "[EXPERTISE]") {
		t.Fatal("expected expertise section")
	}
}
