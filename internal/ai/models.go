package ai

// ClassificationResult captures the structured output from the AI model.
type ClassificationResult struct {
	// Intent is the label chosen by the model; it must be one of the labels
	// offered in the prompt, but callers validate it against their own set.
	Intent string `json:"intent"`

	// Confidence is the model's self-reported certainty in [0,1].
	Confidence float64 `json:"confidence"`

	// Reason is a short model-provided justification, useful in logs.
	Reason string `json:"reason,omitempty"`
}
