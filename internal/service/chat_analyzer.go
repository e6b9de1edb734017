// README: Chat analyzer orchestrates NLU, context folding, and persistence.
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"wander/internal/ai"
	"wander/internal/conversation"
	"wander/internal/maps"
	"wander/internal/nlu"
	"wander/internal/types"
)

var (
	ErrBadRequest      = errors.New("bad request")
	ErrSessionNotFound = errors.New("session not found")
)

// fallbackTimeout bounds the LLM round trip; the rule result is always
// available if the model is slow.
const fallbackTimeout = 10 * time.Second

// HistoryLog records chat turns and replays them for the context fold.
type HistoryLog interface {
	Record(ctx context.Context, msg conversation.Message) (conversation.Message, error)
	History(ctx context.Context, sessionID types.ID) ([]conversation.Message, error)
}

// ContextStore persists the folded context snapshot per session.
type ContextStore interface {
	Exists(ctx context.Context, id types.ID) (bool, error)
	SaveContext(ctx context.Context, id types.ID, c conversation.Context) error
}

// FallbackQuota meters LLM fallback classifications.
type FallbackQuota interface {
	UseToken(ctx context.Context, sessionID string) error
}

// DestinationResolver attaches canonical place data to destination entities.
type DestinationResolver interface {
	ResolveDestination(ctx context.Context, name string) (*maps.PlaceInfo, error)
}

// ChatAnalyzer runs the NLU pipeline for one inbound chat message: rule-based
// intent (with optional metered LLM fallback), entity extraction, optional
// destination resolution, history append, context fold, and clarification.
type ChatAnalyzer struct {
	history   HistoryLog
	sessions  ContextStore
	fallback  ai.LLMClassifier
	quota     FallbackQuota
	places    DestinationResolver
	threshold float64
}

// NewChatAnalyzer wires the analyzer. fallback, quota, and places may be nil;
// the rule-based pipeline works without them.
func NewChatAnalyzer(history HistoryLog, sessions ContextStore, fallback ai.LLMClassifier, quota FallbackQuota, places DestinationResolver, threshold float64) *ChatAnalyzer {
	return &ChatAnalyzer{
		history:   history,
		sessions:  sessions,
		fallback:  fallback,
		quota:     quota,
		places:    places,
		threshold: threshold,
	}
}

// AnalysisResult is the per-message output returned to the chat UI.
type AnalysisResult struct {
	SessionID     types.ID                    `json:"session_id"`
	Intent        nlu.Intent                  `json:"intent"`
	Entities      []nlu.Entity                `json:"entities"`
	Context       conversation.Context        `json:"context"`
	Clarification *conversation.Clarification `json:"clarification,omitempty"`
	Destination   *maps.PlaceInfo             `json:"destination,omitempty"`
}

// Analyze processes one user message in a session.
func (a *ChatAnalyzer) Analyze(ctx context.Context, sessionID types.ID, text string) (*AnalysisResult, error) {
	if sessionID == "" || text == "" {
		return nil, ErrBadRequest
	}

	exists, err := a.sessions.Exists(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSessionNotFound
	}

	intent := nlu.ExtractIntent(text)
	if intent.Confidence < a.threshold {
		intent = a.classifyWithFallback(ctx, sessionID, text, intent)
	}
	entities := nlu.ExtractEntities(text)

	if _, err := a.history.Record(ctx, conversation.Message{
		SessionID: sessionID,
		Role:      "user",
		Content:   text,
		Intent:    &intent,
		Entities:  entities,
	}); err != nil {
		return nil, err
	}

	messages, err := a.history.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	convCtx := conversation.MaintainContext(messages)

	var clarification *conversation.Clarification
	if convCtx.ClarificationNeeded {
		c := conversation.ClarifyIntent(text, convCtx, entities)
		clarification = &c
	}

	if err := a.sessions.SaveContext(ctx, sessionID, convCtx); err != nil {
		return nil, err
	}

	return &AnalysisResult{
		SessionID:     sessionID,
		Intent:        intent,
		Entities:      entities,
		Context:       convCtx,
		Clarification: clarification,
		Destination:   a.resolveDestination(ctx, convCtx),
	}, nil
}

// classifyWithFallback consults the LLM when the rule result is weak. Any
// failure (quota exhausted, model error, unknown label) keeps the rule
// result; the fallback can only raise confidence, never break the pipeline.
func (a *ChatAnalyzer) classifyWithFallback(ctx context.Context, sessionID types.ID, text string, ruleIntent nlu.Intent) nlu.Intent {
	if a.fallback == nil {
		return ruleIntent
	}
	if a.quota != nil {
		if err := a.quota.UseToken(ctx, string(sessionID)); err != nil {
			log.Printf("fallback quota: %v", err)
			return ruleIntent
		}
	}

	fctx, cancel := context.WithTimeout(ctx, fallbackTimeout)
	defer cancel()

	result, err := a.fallback.ClassifyIntent(fctx, text)
	if err != nil {
		log.Printf("fallback classify: %v", err)
		return ruleIntent
	}

	intentType := nlu.IntentType(result.Intent)
	if !knownIntents[intentType] || result.Confidence <= ruleIntent.Confidence {
		return ruleIntent
	}
	return nlu.Intent{
		Type:       intentType,
		Confidence: result.Confidence,
		Parameters: map[string]string{},
	}
}

// resolveDestination enriches the folded destination, when one is known, with
// canonical place data. Resolution failures are logged and ignored.
func (a *ChatAnalyzer) resolveDestination(ctx context.Context, convCtx conversation.Context) *maps.PlaceInfo {
	if a.places == nil {
		return nil
	}
	dest, ok := convCtx.Entities[nlu.EntityDestination]
	if !ok {
		return nil
	}
	place, err := a.places.ResolveDestination(ctx, dest.Value)
	if err != nil {
		log.Printf("resolve destination %q: %v", dest.Value, err)
		return nil
	}
	return place
}

// knownIntents guards against the model inventing labels.
var knownIntents = map[nlu.IntentType]bool{
	nlu.IntentSearchFlight:   true,
	nlu.IntentSearchHotel:    true,
	nlu.IntentSearchActivity: true,
	nlu.IntentAddToPlan:      true,
	nlu.IntentRemoveFromPlan: true,
	nlu.IntentViewPlan:       true,
	nlu.IntentBookItem:       true,
	nlu.IntentGreeting:       true,
	nlu.IntentHelp:           true,
}
