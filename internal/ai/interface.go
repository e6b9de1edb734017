package ai

import (
	"context"
)

// LLMClassifier defines the contract for model-backed intent classification.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.) in the future.
type LLMClassifier interface {
	// ClassifyIntent analyzes the user's natural language input and picks one
	// intent label with a confidence score. It is only consulted when the
	// rule-based classifier is not confident.
	ClassifyIntent(ctx context.Context, userMessage string) (*ClassificationResult, error)
}
