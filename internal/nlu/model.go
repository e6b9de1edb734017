// README: NLU value types shared by the classifier and the extractor.
package nlu

// IntentType labels the classified purpose of an utterance.
type IntentType string

const (
	IntentSearchFlight   IntentType = "search_flight"
	IntentSearchHotel    IntentType = "search_hotel"
	IntentSearchActivity IntentType = "search_activity"
	IntentAddToPlan      IntentType = "add_to_plan"
	IntentRemoveFromPlan IntentType = "remove_from_plan"
	IntentViewPlan       IntentType = "view_plan"
	IntentBookItem       IntentType = "book_item"
	IntentGreeting       IntentType = "greeting"
	IntentHelp           IntentType = "help"
)

// Intent is the classified purpose of one utterance.
// Exactly one Intent is produced per utterance; it is never persisted
// on its own but recomputed (or replayed from the message log) per message.
type Intent struct {
	Type       IntentType        `json:"type"`
	Confidence float64           `json:"confidence"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// EntityType labels a typed fragment pulled out of free text.
type EntityType string

const (
	EntityDestination EntityType = "destination"
	EntityDate        EntityType = "date"
	EntityBudget      EntityType = "budget"
	EntityTravelers   EntityType = "travelers"
	EntityPreference  EntityType = "preference"
)

// Entity is a typed fragment of an utterance.
// Value holds the matched (or normalized) text. Number carries the parsed
// numeric value for budget and travelers entities and is zero otherwise.
// Start and End are byte offsets into the source text.
type Entity struct {
	Type       EntityType `json:"type"`
	Value      string     `json:"value"`
	Number     float64    `json:"number,omitempty"`
	Confidence float64    `json:"confidence"`
	Start      int        `json:"start"`
	End        int        `json:"end"`
}
