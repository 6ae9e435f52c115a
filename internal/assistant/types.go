package assistant

// Search result kinds. Every result returned by the search pipeline carries
// exactly one of these.
const (
	ResultInventory = "inventory"
	ResultCustomer  = "customer"
	ResultSale      = "sale"
	ResultPurchase  = "purchase"
	ResultInsight   = "insight"
	ResultAction    = "action"
)

// SearchResult is one typed hit from the schema-validated search pipeline.
// Data holds scalar or string-sequence values keyed by field name.
type SearchResult struct {
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Data        map[string]any `json:"data"`
	Relevance   int            `json:"relevance"`
	Action      string         `json:"action,omitempty"`
}

// SearchResponse preserves the model-assigned result order; results are not
// re-sorted by relevance.
type SearchResponse struct {
	Results     []SearchResult `json:"results"`
	Summary     string         `json:"summary"`
	Suggestions []string       `json:"suggestions"`
}

// Insight types as derived by the line classifier. The documented set also
// names "insight", but no derivation path produces it.
const (
	InsightAlert          = "alert"
	InsightRecommendation = "recommendation"
)

// Insight is reconstructed per call from the model's free text; it is never
// persisted.
type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Confidence  int    `json:"confidence"`
	Action      string `json:"action"`
}

// Alert priorities. "low" is declared for completeness; the current
// derivation emits only high and medium.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type Alert struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Priority  string `json:"priority"`
	Timestamp string `json:"timestamp"`
}

// QueryResult is the chat pipeline's answer. Context echoes the enriched
// context object that was sent to the model.
type QueryResult struct {
	Response  string         `json:"response"`
	Context   map[string]any `json:"context"`
	Timestamp string         `json:"timestamp"`
}

// CustomerRecord is the caller-supplied customer profile for behavior
// analysis.
type CustomerRecord struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Phone           string             `json:"phone"`
	Email           string             `json:"email,omitempty"`
	Address         string             `json:"address"`
	TotalOrders     int                `json:"totalOrders"`
	LastOrderDate   string             `json:"lastOrderDate,omitempty"`
	CreditLimit     float64            `json:"creditLimit"`
	Outstanding     float64            `json:"outstandingAmount"`
	Category        string             `json:"category"`
	PurchaseHistory []CustomerPurchase `json:"purchaseHistory,omitempty"`
}

type CustomerPurchase struct {
	Date   string   `json:"date"`
	Amount float64  `json:"amount"`
	Items  []string `json:"items"`
}
