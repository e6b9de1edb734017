// README: Clarification generator; picks one canned follow-up question.
package conversation

import "wander/internal/nlu"

// travelerOptions is the fixed picker shown when the head count is unknown.
var travelerOptions = []string{"1", "2", "3", "4+"}

// ClarifyIntent picks the single follow-up question for the current context.
// Priority: destination ambiguity, then missing destination, date, and
// travelers, then a generic fallback. The text parameter is accepted for
// interface symmetry with the extractors but the question is driven by the
// context; extracted is the raw entity list of the triggering message,
// threaded alongside the folded context so multiple same-type destinations
// remain visible for disambiguation.
func ClarifyIntent(_ string, ctx Context, extracted []nlu.Entity) Clarification {
	if options := distinctDestinations(extracted); len(options) > 1 {
		return Clarification{
			Question: "I found more than one destination. Which one did you mean?",
			Type:     ClarificationSingleChoice,
			Options:  options,
		}
	}

	if contains(ctx.MissingFields, "destination") {
		return Clarification{
			Question: "Where would you like to travel?",
			Type:     ClarificationOpenEnded,
		}
	}
	if contains(ctx.MissingFields, "date") {
		return Clarification{
			Question: "When would you like to travel?",
			Type:     ClarificationOpenEnded,
		}
	}
	if contains(ctx.MissingFields, "travelers") {
		return Clarification{
			Question: "How many people are traveling?",
			Type:     ClarificationSingleChoice,
			Options:  travelerOptions,
		}
	}

	return Clarification{
		Question: "Could you tell me a bit more about your trip?",
		Type:     ClarificationOpenEnded,
	}
}

// distinctDestinations returns the unique destination values in first-seen
// order.
func distinctDestinations(entities []nlu.Entity) []string {
	seen := map[string]bool{}
	var values []string
	for _, e := range entities {
		if e.Type != nlu.EntityDestination || seen[e.Value] {
			continue
		}
		seen[e.Value] = true
		values = append(values, e.Value)
	}
	return values
}

func contains(fields []string, field string) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}
