// Package prompt builds the task-specific prompts sent to the generation
// provider. Each builder is a pure function of its inputs: the serialized
// snapshot is embedded whole, never truncated, and encoding is order-stable
// so identical inputs yield identical prompts.
package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Task kinds, one deterministic template each.
const (
	TaskSearch           = "search"
	TaskInsights         = "insights"
	TaskPricing          = "pricing"
	TaskAlerts           = "alerts"
	TaskCustomerAnalysis = "customer_analysis"
	TaskChat             = "chat"
)

// Search frames an intelligent-search request over the full business
// snapshot. The output shape itself is enforced by the response schema, the
// prompt only explains intent.
func Search(snapshot any, query string) string {
	var buf bytes.Buffer
	buf.WriteString("You are an AI assistant for a mandi (agricultural market) management system.\n")
	buf.WriteString("Based on the user's search query, provide intelligent search results.\n")
	writeSection(&buf, "BUSINESS_CONTEXT", formatJSON(snapshot))
	writeSection(&buf, "QUERY", query)
	writeSection(&buf, "INSTRUCTIONS",
		"Analyze the query and return relevant results from inventory, customers, sales,\n"+
			"purchases, insights, and actionable recommendations. Focus on practical information\n"+
			"that helps with mandi operations. Score relevance from 0 to 100, include the data\n"+
			"points behind each result, and suggest a follow-up action where applicable.\n"+
			"Provide a brief summary of findings and related queries the user might explore.")
	return finish(&buf)
}

// Insights asks for 3-5 prioritized observations over the snapshot.
func Insights(snapshot any) string {
	var buf bytes.Buffer
	buf.WriteString("Based on the current business context, generate 3-5 insights for mandi management.\n")
	writeSection(&buf, "BUSINESS_CONTEXT", formatJSON(snapshot))
	writeSection(&buf, "FOCUS", list(
		"Inventory optimization",
		"Sales opportunities",
		"Risk management",
		"Customer retention",
		"Market trends",
		"Seasonal patterns",
	))
	writeSection(&buf, "INSTRUCTIONS",
		"Start each finding on its own line with \"Insight\", \"Alert\", or \"Recommendation\".\n"+
			"Follow with description lines, and an \"Action:\" line where one applies.")
	return finish(&buf)
}

// Pricing asks for price advice on a single item.
func Pricing(snapshot any, itemName string, currentPrice float64) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "As a mandi pricing expert, analyze the optimal price for %q currently priced at ₹%.2f.\n", itemName, currentPrice)
	writeSection(&buf, "CONSIDER", list(
		"Current market conditions",
		"Seasonal factors",
		"Supply and demand",
		"Competition",
		"Customer sensitivity",
		"Profit margins",
	))
	writeSection(&buf, "BUSINESS_CONTEXT", formatJSON(snapshot))
	writeSection(&buf, "INSTRUCTIONS", "Provide specific pricing recommendations with reasoning.")
	return finish(&buf)
}

// Alerts asks for prioritized inventory alerts.
func Alerts(snapshot any) string {
	var buf bytes.Buffer
	buf.WriteString("Based on the current inventory situation, generate important alerts and recommendations.\n")
	writeSection(&buf, "FOCUS", list(
		"Low stock items that need restocking",
		"Items approaching expiry",
		"Overstocked items",
		"Seasonal demand changes",
		"Supply chain risks",
	))
	writeSection(&buf, "BUSINESS_CONTEXT", formatJSON(snapshot))
	writeSection(&buf, "INSTRUCTIONS",
		"Format as actionable alerts, one per line, each containing \"Alert\", \"Warning\",\n"+
			"or \"Action Required\". Mark the most urgent lines \"Critical\".")
	return finish(&buf)
}

// CustomerAnalysis asks for behavior insights over one customer record.
func CustomerAnalysis(snapshot any, customer any) string {
	var buf bytes.Buffer
	buf.WriteString("Analyze customer behavior patterns and provide insights.\n")
	writeSection(&buf, "CUSTOMER", formatJSON(customer))
	writeSection(&buf, "BUSINESS_CONTEXT", formatJSON(snapshot))
	writeSection(&buf, "FOCUS", list(
		"Purchase patterns",
		"Seasonal preferences",
		"Credit behavior",
		"Loyalty indicators",
		"Upselling opportunities",
		"Retention risks",
	))
	return finish(&buf)
}

// ChatSystem builds the system prompt for general chat. The user's query is
// sent separately as the user message.
func ChatSystem(enriched any) string {
	var buf bytes.Buffer
	buf.WriteString("You are an expert AI assistant for mandi (agricultural market) management.\n")
	writeSection(&buf, "EXPERTISE", list(
		"Inventory management and optimization",
		"Agricultural market trends and pricing",
		"Customer relationship management",
		"Sales and purchase analytics",
		"Supply chain management",
		"Financial analysis for agricultural businesses",
		"Weather impact on agricultural markets",
		"Seasonal demand patterns",
	))
	writeSection(&buf, "BUSINESS_CONTEXT", formatJSON(enriched))
	writeSection(&buf, "INSTRUCTIONS",
		"Provide detailed, actionable responses. When possible include specific numbers,\n"+
			"recommendations, implementation timelines, and potential risks. Be conversational\n"+
			"but professional, and always focus on practical business value.")
	return finish(&buf)
}

func formatJSON(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func list(items ...string) string {
	var buf strings.Builder
	for _, item := range items {
		fmt.Fprintf(&buf, "- %s\n", item)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func writeSection(buf *bytes.Buffer, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	fmt.Fprintf(buf, "\n[%s]\n%s\n", title, body)
}

func finish(buf *bytes.Buffer) string {
	return strings.TrimSpace(buf.String()) + "\n"
}
