package assistant

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	genai "google.golang.org/genai"
)

var searchResultTypes = []string{
	ResultInventory, ResultCustomer, ResultSale,
	ResultPurchase, ResultInsight, ResultAction,
}

// searchGenSchema is the output shape handed to the provider for
// schema-constrained search generation.
func searchGenSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"results", "summary", "suggestions"},
		Properties: map[string]*genai.Schema{
			"results": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"type", "title", "description", "data", "relevance"},
					Properties: map[string]*genai.Schema{
						"type":        {Type: genai.TypeString, Enum: searchResultTypes},
						"title":       {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
						"data":        {Type: genai.TypeObject},
						"relevance":   {Type: genai.TypeInteger},
						"action":      {Type: genai.TypeString},
					},
				},
			},
			"summary":     {Type: genai.TypeString},
			"suggestions": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
	}
}

// searchValidationSchema revalidates the returned payload independently of
// the provider. Data values are constrained to a closed set of kinds:
// string, number, boolean, or sequence of strings.
var searchValidationSchema = map[string]any{
	"type":     "object",
	"required": []any{"results", "summary", "suggestions"},
	"properties": map[string]any{
		"results": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"type", "title", "description", "data", "relevance"},
				"properties": map[string]any{
					"type":        map[string]any{"type": "string", "enum": toAnySlice(searchResultTypes)},
					"title":       map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"data": map[string]any{
						"type": "object",
						"additionalProperties": map[string]any{
							"anyOf": []any{
								map[string]any{"type": "string"},
								map[string]any{"type": "number"},
								map[string]any{"type": "boolean"},
								map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							},
						},
					},
					"relevance": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
					"action":    map[string]any{"type": "string"},
				},
			},
		},
		"summary":     map[string]any{"type": "string"},
		"suggestions": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// decodeSearchResponse validates the raw payload against the search schema
// and decodes it. Any violation fails the whole payload; the caller degrades
// the search, it never surfaces a partial result set.
func decodeSearchResponse(raw json.RawMessage) (SearchResponse, error) {
	schemaLoader := gojsonschema.NewGoLoader(searchValidationSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("validate search payload: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return SearchResponse{}, fmt.Errorf("search payload schema violation: %s", errs[0].String())
		}
		return SearchResponse{}, fmt.Errorf("search payload schema violation")
	}

	var resp SearchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return SearchResponse{}, fmt.Errorf("decode search payload: %w", err)
	}
	if resp.Results == nil {
		resp.Results = []SearchResult{}
	}
	if resp.Suggestions == nil {
		resp.Suggestions = []string{}
	}
	return resp, nil
}
