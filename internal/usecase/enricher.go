package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"NewsEnricher/internal/domain"
	"NewsEnricher/internal/ports"
)

const missingBodyNote = "No body content available."

// Enricher sends article text to a language model with a fixed instruction
// template and recovers the structured enrichment fields from its response.
type Enricher struct {
	model  ports.TextModel
	logger *slog.Logger
}

// NewEnricher wires the model transport.
func NewEnricher(model ports.TextModel, logger *slog.Logger) *Enricher {
	return &Enricher{model: model, logger: logger}
}

// Enrich builds the bounded text context and prompt, invokes the model, and
// extracts the semantic result. Any transport or extraction failure is
// returned as an error; callers must treat it as a full enrichment failure
// since downstream media and context fields depend on this output.
func (e *Enricher) Enrich(ctx context.Context, article domain.RawArticle) (*domain.SemanticResult, error) {
	if e.model == nil {
		return nil, fmt.Errorf("%w: no model configured", domain.ErrEnrichmentFailed)
	}

	prompt := buildPrompt(article)

	response, err := e.model.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate text: %w", err)
	}

	result, err := ExtractSemantic(strings.TrimSpace(response))
	if err != nil {
		e.debug("model output not recoverable", "error", err)
		return nil, err
	}

	return result, nil
}

// buildTextContext assembles the model input from title, optional
// description, and body; a missing body is replaced with a placeholder note
// so nothing absent is ever passed downstream.
func buildTextContext(article domain.RawArticle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", article.Title)
	if article.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", article.Description)
	}
	body := article.Body
	if body == "" {
		body = missingBodyNote
	}
	fmt.Fprintf(&b, "Body: %s\n", body)
	return b.String()
}

func buildPrompt(article domain.RawArticle) string {
	return fmt.Sprintf(`You are an AI enrichment service for a news platform.
Given the short text of a news article, infer its meaning and produce structured enrichment data in valid JSON.

ARTICLE INPUT:
%s
REQUIRED OUTPUT (JSON only):
{
    "summary": "1-2 factual sentences summarizing the story.",
    "tags": ["#RelevantTag1", "#RelevantTag2", "#RelevantTag3"],
    "relevance_score": number (0.0-1.0, estimate relevance to African audience),
    "media_suggestions": {
        "image_keywords": "describe what image to search for on Unsplash",
        "video_keywords": "describe what video to search for on YouTube",
        "media_justification": "Explain why these visuals fit the story."
    },
    "context": {
        "wikipedia_snippet": "2-sentence factual note about the main topic.",
        "social_sentiment": "Example: '74%% positive mentions on X in last 24h.'",
        "search_trend": "Example: ''topic' +150%% this week.'",
        "geo": {
            "country": "Country name if identifiable",
            "lat": number or null,
            "lng": number or null,
            "map_url": "https://www.google.com/maps?q=lat,lng"
        }
    }
}

Rules:
- Output valid JSON only.
- No markdown, no prose.
- If unsure, make a best guess.
`, buildTextContext(article))
}

func (e *Enricher) debug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}
