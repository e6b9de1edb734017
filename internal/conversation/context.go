// README: Context tracker; pure fold of message history into conversation state.
package conversation

import "wander/internal/nlu"

// commandConfidenceFloor separates commands from vague travel talk. The
// classifier's unmatched-utterance fallback sits below it, so entity-only
// follow-ups ("2 adults, leaving next week") contribute entities without
// re-triggering a search transition.
const commandConfidenceFloor = 0.5

// NewContext returns the empty context used before any message arrives.
func NewContext() Context {
	return Context{
		State:         StateGreeting,
		Entities:      map[nlu.EntityType]nlu.Entity{},
		MissingFields: []string{},
	}
}

// MaintainContext folds an ordered message history into a Context. The fold
// is referentially transparent: MaintainContext(history) equals
// MaintainContext(history[:len-1]) advanced by the last message, and repeated
// calls on the same history return equal results. Missing or empty history
// yields the greeting-state default.
func MaintainContext(history []Message) Context {
	ctx := NewContext()

	for _, msg := range history {
		if msg.Intent != nil && msg.Intent.Confidence >= commandConfidenceFloor {
			ctx.LastIntent = msg.Intent
			ctx.State = NextState(ctx.State, msg.Intent.Type)
		}
		for _, e := range msg.Entities {
			mergeEntity(ctx.Entities, e)
		}
	}

	ctx.MissingFields = missingFields(ctx.LastIntent, ctx.Entities)

	// A search cannot run until its required fields are known.
	if ctx.State == StateSearching && len(ctx.MissingFields) > 0 {
		ctx.State = StateGatheringRequirements
	}

	ctx.ClarificationNeeded = len(ctx.MissingFields) > 0 ||
		countDistinctDestinations(lastEntities(history)) > 1

	return ctx
}

// mergeEntity applies the per-type merge rule: an incoming entity replaces
// the stored one only when its confidence is strictly greater.
func mergeEntity(entities map[nlu.EntityType]nlu.Entity, e nlu.Entity) {
	current, ok := entities[e.Type]
	if !ok || e.Confidence > current.Confidence {
		entities[e.Type] = e
	}
}

// missingFields recomputes the required-field gaps for the last intent
// against the merged entity map. Order follows the requiredFields table.
func missingFields(last *nlu.Intent, entities map[nlu.EntityType]nlu.Entity) []string {
	missing := []string{}
	if last == nil {
		return missing
	}
	for _, field := range requiredFields[last.Type] {
		if _, ok := entities[nlu.EntityType(field)]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// lastEntities returns the raw entity list of the most recent message that
// carried any. The folded map keeps one entity per type, so destination
// ambiguity has to be read from the per-message list.
func lastEntities(history []Message) []nlu.Entity {
	for i := len(history) - 1; i >= 0; i-- {
		if len(history[i].Entities) > 0 {
			return history[i].Entities
		}
	}
	return nil
}

func countDistinctDestinations(entities []nlu.Entity) int {
	seen := map[string]bool{}
	for _, e := range entities {
		if e.Type == nlu.EntityDestination {
			seen[e.Value] = true
		}
	}
	return len(seen)
}
