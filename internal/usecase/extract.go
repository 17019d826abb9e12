package usecase

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"NewsEnricher/internal/domain"
)

var (
	objectExpr         = regexp.MustCompile(`(?s)\{.*\}`)
	trailingObjComma   = regexp.MustCompile(`,\s*}`)
	trailingArrayComma = regexp.MustCompile(`,\s*]`)
)

// ExtractSemantic recovers a structured object from a free-form model
// response. The response is not trusted to be pure JSON: the first-to-last
// brace span is isolated, strictly parsed, and on failure run once through
// RepairJSON before parsing again. Absent fields never fail the extraction;
// they default during normalization.
func ExtractSemantic(raw string) (*domain.SemanticResult, error) {
	span := objectExpr.FindString(raw)
	if span == "" {
		return nil, domain.ErrNoStructuredOutput
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(span), &parsed); err != nil {
		repaired := RepairJSON(span)
		if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedOutput, err)
		}
	}

	return normalizeSemantic(parsed), nil
}

// RepairJSON applies the documented best-effort transformations to
// almost-JSON model output: single quotes become double quotes, and
// trailing commas before closing braces/brackets are stripped.
func RepairJSON(s string) string {
	s = strings.ReplaceAll(s, "'", `"`)
	s = trailingObjComma.ReplaceAllString(s, "}")
	s = trailingArrayComma.ReplaceAllString(s, "]")
	return s
}

// normalizeSemantic maps loosely-typed parsed fields onto the result schema,
// defaulting anything absent or of the wrong type.
func normalizeSemantic(parsed map[string]any) *domain.SemanticResult {
	result := &domain.SemanticResult{
		Summary:        stringField(parsed, "summary"),
		Tags:           stringSliceField(parsed, "tags"),
		RelevanceScore: floatField(parsed, "relevance_score"),
		Context:        map[string]any{},
	}

	if suggestions, ok := parsed["media_suggestions"].(map[string]any); ok {
		result.Media = domain.MediaSuggestions{
			ImageKeywords:      stringField(suggestions, "image_keywords"),
			VideoKeywords:      stringField(suggestions, "video_keywords"),
			MediaJustification: stringField(suggestions, "media_justification"),
		}
	}

	if context, ok := parsed["context"].(map[string]any); ok {
		result.Context = context
	}

	return result
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func floatField(m map[string]any, key string) float64 {
	if v, ok := m[key].(float64); ok {
		return v
	}
	return 0.0
}

func stringSliceField(m map[string]any, key string) []string {
	items, ok := m[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
