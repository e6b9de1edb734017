// README: Rule-based intent classifier (ordered substring triggers).
package nlu

import "strings"

// fallbackConfidence is deliberately below 0.5: an unmatched utterance in a
// travel chat is treated as vague flight talk, not as an error.
const fallbackConfidence = 0.3

// intentRule pairs an intent with its trigger phrases and a fixed confidence.
// Triggers are matched by plain substring containment against the lowercased
// utterance; phrase triggers like "add this to my plan" work without
// word-boundary handling.
type intentRule struct {
	intent     IntentType
	triggers   []string
	confidence float64
}

// intentRules is the priority order: the first rule with any trigger hit
// wins, so plan/booking phrases must precede the broader search rules.
var intentRules = []intentRule{
	{IntentAddToPlan, []string{
		// "to my plan" survives an interposed noun ("add this flight to my
		// plan"); the remove rule below uses "from my plan", so no overlap.
		"to my plan", "to the plan", "add to plan",
		"add it to my trip", "save this", "put this in my plan",
	}, 0.9},
	{IntentRemoveFromPlan, []string{
		"remove this from my plan", "remove from my plan", "remove from plan",
		"take this out of my plan", "drop this from",
	}, 0.9},
	{IntentBookItem, []string{
		"book this now", "book this", "book it", "reserve this",
		"confirm the booking", "proceed with booking", "complete the booking",
	}, 0.9},
	{IntentViewPlan, []string{
		"show my plan", "view my plan", "my itinerary", "show my trip",
		"review my plan", "what's in my plan",
	}, 0.85},
	{IntentSearchFlight, []string{
		"flight", "flights", "fly to", "flying", "plane ticket",
		"airfare", "round trip", "one way to",
	}, 0.8},
	{IntentSearchHotel, []string{
		"hotel", "hotels", "accommodation", "place to stay", "somewhere to stay",
		"resort", "hostel", "airbnb", "lodging",
	}, 0.8},
	{IntentSearchActivity, []string{
		"things to do", "activities", "activity", "attractions",
		"sightseeing", "tours", "tour of", "museum", "excursion",
	}, 0.75},
	{IntentGreeting, []string{
		"hello", "hi there", "hey there", "good morning", "good afternoon",
		"good evening",
	}, 0.7},
	{IntentHelp, []string{
		"help me", "how do i", "how does this work", "what can you do",
	}, 0.6},
}

// ExtractIntent classifies a free-text utterance into exactly one Intent.
// Pure function: no state, no side effects. Empty input is valid and hits
// the fallback path.
func ExtractIntent(text string) Intent {
	lower := strings.ToLower(text)

	for _, rule := range intentRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(lower, trigger) {
				return Intent{
					Type:       rule.intent,
					Confidence: rule.confidence,
					Parameters: map[string]string{},
				}
			}
		}
	}

	return Intent{
		Type:       IntentSearchFlight,
		Confidence: fallbackConfidence,
		Parameters: map[string]string{},
	}
}
