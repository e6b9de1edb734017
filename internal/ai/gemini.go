package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements LLMClassifier using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Use Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"

	// Classification should be deterministic, not creative.
	model.SetTemperature(0.1)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// ClassifyIntent asks the model to pick one travel intent label for the
// utterance. Used as a fallback when no rule trigger fires convincingly.
func (p *GeminiProvider) ClassifyIntent(ctx context.Context, userMessage string) (*ClassificationResult, error) {
	fullPrompt := fmt.Sprintf("%s\n\nUser Message: %s", classificationPrompt, userMessage)

	resp, err := p.model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	// Extract text from the response parts.
	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// Clean up potential markdown formatting (though json mode should handle this, safety first).
	cleanJSON := cleanJSONString(responseText.String())

	var result ClassificationResult
	if err := json.Unmarshal([]byte(cleanJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}

	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}

	return &result, nil
}

const classificationPrompt = `Role: You are the intent classifier for "Wander", a travel planning chat assistant.

Pick exactly ONE intent label for the user message:
- "search_flight": looking for flights or air travel.
- "search_hotel": looking for hotels or places to stay.
- "search_activity": looking for activities, tours, or attractions.
- "add_to_plan": asking to add a result to their trip plan.
- "remove_from_plan": asking to remove something from their trip plan.
- "view_plan": asking to see their current itinerary.
- "book_item": asking to book or confirm a reservation.
- "greeting": small talk or an opening greeting.
- "help": asking how the assistant works.

RULES:
1. Vague travel talk with no clear goal is "search_flight" with low confidence.
2. Confidence reflects how unambiguous the message is, between 0 and 1.
3. Keep "reason" to one short sentence.

Output JSON Schema:
{
  "intent": "search_flight" | "search_hotel" | "search_activity" | "add_to_plan" | "remove_from_plan" | "view_plan" | "book_item" | "greeting" | "help",
  "confidence": number,
  "reason": "string"
}
`

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
