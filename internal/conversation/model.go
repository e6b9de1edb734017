// README: Conversation state, message, and context definitions.
package conversation

import (
	"time"

	"wander/internal/nlu"
	"wander/internal/types"
)

// State is the coarse stage of a multi-turn travel conversation.
type State string

const (
	StateGreeting              State = "greeting"
	StateGatheringRequirements State = "gathering_requirements"
	StateSearching             State = "searching"
	StatePresentingOptions     State = "presenting_options"
	StateRefiningSearch        State = "refining_search"
	StateAddingToPlan          State = "adding_to_plan"
	StateReviewingPlan         State = "reviewing_plan"
	StateBooking               State = "booking"
	StatePostBooking           State = "post_booking"
)

// Message is one chat turn together with its NLU metadata.
type Message struct {
	ID        types.ID     `json:"id"`
	SessionID types.ID     `json:"session_id"`
	Role      string       `json:"role"`
	Content   string       `json:"content"`
	Intent    *nlu.Intent  `json:"intent,omitempty"`
	Entities  []nlu.Entity `json:"entities,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// Context is the folded per-session conversation state. Entities holds at
// most one entity per type (merge rule: strictly greater confidence replaces).
type Context struct {
	State               State                         `json:"state"`
	Entities            map[nlu.EntityType]nlu.Entity `json:"entities"`
	MissingFields       []string                      `json:"missing_fields"`
	LastIntent          *nlu.Intent                   `json:"last_intent,omitempty"`
	ClarificationNeeded bool                          `json:"clarification_needed"`
}

// ClarificationType distinguishes open questions from option pickers.
type ClarificationType string

const (
	ClarificationOpenEnded    ClarificationType = "open_ended"
	ClarificationSingleChoice ClarificationType = "single_choice"
)

// Clarification is a follow-up question derived from the context; it is
// never stored.
type Clarification struct {
	Question string            `json:"question"`
	Type     ClarificationType `json:"type"`
	Options  []string          `json:"options,omitempty"`
}

// transitions maps (current state, intent) to the next state. Pairs absent
// from the table are a no-op: the conversation stays where it is. There is
// no terminal state; a new search after booking reopens requirements
// gathering.
var transitions = map[State]map[nlu.IntentType]State{
	StateGreeting: {
		nlu.IntentSearchFlight:   StateSearching,
		nlu.IntentSearchHotel:    StateSearching,
		nlu.IntentSearchActivity: StateSearching,
		nlu.IntentViewPlan:       StateReviewingPlan,
	},
	StateGatheringRequirements: {
		nlu.IntentSearchFlight:   StateSearching,
		nlu.IntentSearchHotel:    StateSearching,
		nlu.IntentSearchActivity: StateSearching,
		nlu.IntentViewPlan:       StateReviewingPlan,
	},
	StateSearching: {
		nlu.IntentSearchFlight:   StateRefiningSearch,
		nlu.IntentSearchHotel:    StateRefiningSearch,
		nlu.IntentSearchActivity: StateRefiningSearch,
		nlu.IntentAddToPlan:      StateAddingToPlan,
		nlu.IntentBookItem:       StateBooking,
		nlu.IntentViewPlan:       StateReviewingPlan,
	},
	StatePresentingOptions: {
		nlu.IntentSearchFlight:   StateRefiningSearch,
		nlu.IntentSearchHotel:    StateRefiningSearch,
		nlu.IntentSearchActivity: StateRefiningSearch,
		nlu.IntentAddToPlan:      StateAddingToPlan,
		nlu.IntentBookItem:       StateBooking,
		nlu.IntentViewPlan:       StateReviewingPlan,
	},
	StateRefiningSearch: {
		nlu.IntentSearchFlight:   StateRefiningSearch,
		nlu.IntentSearchHotel:    StateRefiningSearch,
		nlu.IntentSearchActivity: StateRefiningSearch,
		nlu.IntentAddToPlan:      StateAddingToPlan,
		nlu.IntentBookItem:       StateBooking,
		nlu.IntentViewPlan:       StateReviewingPlan,
	},
	StateAddingToPlan: {
		nlu.IntentSearchFlight:   StateSearching,
		nlu.IntentSearchHotel:    StateSearching,
		nlu.IntentSearchActivity: StateSearching,
		nlu.IntentViewPlan:       StateReviewingPlan,
		nlu.IntentBookItem:       StateBooking,
	},
	StateReviewingPlan: {
		nlu.IntentSearchFlight:   StateSearching,
		nlu.IntentSearchHotel:    StateSearching,
		nlu.IntentSearchActivity: StateSearching,
		nlu.IntentRemoveFromPlan: StateReviewingPlan,
		nlu.IntentAddToPlan:      StateAddingToPlan,
		nlu.IntentBookItem:       StateBooking,
	},
	StateBooking: {
		nlu.IntentBookItem: StatePostBooking,
		nlu.IntentViewPlan: StateReviewingPlan,
	},
	StatePostBooking: {
		nlu.IntentSearchFlight:   StateGatheringRequirements,
		nlu.IntentSearchHotel:    StateGatheringRequirements,
		nlu.IntentSearchActivity: StateGatheringRequirements,
		nlu.IntentViewPlan:       StateReviewingPlan,
	},
}

// NextState applies the transition table; undefined pairs stay put.
func NextState(current State, intent nlu.IntentType) State {
	if next, ok := transitions[current][intent]; ok {
		return next
	}
	return current
}

// requiredFields lists what each intent needs before a search can run.
// Field names match entity type names.
var requiredFields = map[nlu.IntentType][]string{
	nlu.IntentSearchFlight:   {"destination", "date", "travelers"},
	nlu.IntentSearchHotel:    {"destination", "date", "travelers"},
	nlu.IntentSearchActivity: {"destination", "date"},
}

func isSearchIntent(t nlu.IntentType) bool {
	switch t {
	case nlu.IntentSearchFlight, nlu.IntentSearchHotel, nlu.IntentSearchActivity:
		return true
	}
	return false
}
