// README: Context tracker tests (fold, merge rules, missing fields, transitions).
package conversation

import (
	"reflect"
	"testing"

	"wander/internal/nlu"
)

func intentMsg(t nlu.IntentType, conf float64) Message {
	return Message{
		Role:    "user",
		Content: string(t),
		Intent:  &nlu.Intent{Type: t, Confidence: conf},
	}
}

func entityMsg(entities ...nlu.Entity) Message {
	return Message{Role: "user", Content: "entities", Entities: entities}
}

func dest(value string, conf float64) nlu.Entity {
	return nlu.Entity{Type: nlu.EntityDestination, Value: value, Confidence: conf}
}

func TestMaintainContext_EmptyHistory(t *testing.T) {
	ctx := MaintainContext(nil)
	if ctx.State != StateGreeting {
		t.Errorf("state = %s, want %s", ctx.State, StateGreeting)
	}
	if len(ctx.Entities) != 0 || len(ctx.MissingFields) != 0 {
		t.Errorf("expected empty context, got %+v", ctx)
	}
	if ctx.ClarificationNeeded {
		t.Error("empty history must not need clarification")
	}
	if ctx.LastIntent != nil {
		t.Errorf("expected nil last intent, got %+v", ctx.LastIntent)
	}
}

func TestMaintainContext_DisjointEntityMerge(t *testing.T) {
	history := []Message{
		entityMsg(dest("Tokyo", 0.8)),
		entityMsg(nlu.Entity{Type: nlu.EntityTravelers, Value: "2", Number: 2, Confidence: 0.9}),
	}
	ctx := MaintainContext(history)

	if got := ctx.Entities[nlu.EntityDestination]; got.Value != "Tokyo" || got.Confidence != 0.8 {
		t.Errorf("destination entity modified by merge: %+v", got)
	}
	if got := ctx.Entities[nlu.EntityTravelers]; got.Number != 2 || got.Confidence != 0.9 {
		t.Errorf("travelers entity modified by merge: %+v", got)
	}
}

func TestMaintainContext_ConfidenceMaxMerge(t *testing.T) {
	lowThenHigh := []Message{entityMsg(dest("Paris", 0.6)), entityMsg(dest("London", 0.9))}
	highThenLow := []Message{entityMsg(dest("London", 0.9)), entityMsg(dest("Paris", 0.6))}

	for _, history := range [][]Message{lowThenHigh, highThenLow} {
		ctx := MaintainContext(history)
		got := ctx.Entities[nlu.EntityDestination]
		if got.Value != "London" || got.Confidence != 0.9 {
			t.Errorf("merge did not keep highest confidence: %+v", got)
		}
	}
}

func TestMaintainContext_EqualConfidenceKeepsStored(t *testing.T) {
	history := []Message{entityMsg(dest("Paris", 0.8)), entityMsg(dest("London", 0.8))}
	ctx := MaintainContext(history)
	if got := ctx.Entities[nlu.EntityDestination]; got.Value != "Paris" {
		t.Errorf("equal confidence must not replace; got %+v", got)
	}
}

func TestMaintainContext_MissingFieldsForFlightSearch(t *testing.T) {
	history := []Message{{
		Role:     "user",
		Content:  "flight to Tokyo",
		Intent:   &nlu.Intent{Type: nlu.IntentSearchFlight, Confidence: 0.8},
		Entities: []nlu.Entity{dest("Tokyo", 0.8)},
	}}
	ctx := MaintainContext(history)

	want := []string{"date", "travelers"}
	if !reflect.DeepEqual(ctx.MissingFields, want) {
		t.Errorf("missing fields = %v, want %v", ctx.MissingFields, want)
	}
	if !ctx.ClarificationNeeded {
		t.Error("clarification must be needed when required fields are missing")
	}
	if ctx.State != StateGatheringRequirements {
		t.Errorf("state = %s, want %s (search blocked on missing fields)", ctx.State, StateGatheringRequirements)
	}
}

func TestMaintainContext_SearchWithAllFields(t *testing.T) {
	history := []Message{{
		Role:   "user",
		Intent: &nlu.Intent{Type: nlu.IntentSearchFlight, Confidence: 0.8},
		Entities: []nlu.Entity{
			dest("Tokyo", 0.8),
			{Type: nlu.EntityDate, Value: "next week", Confidence: 0.8},
			{Type: nlu.EntityTravelers, Value: "2", Number: 2, Confidence: 0.9},
		},
	}}
	ctx := MaintainContext(history)

	if len(ctx.MissingFields) != 0 {
		t.Errorf("unexpected missing fields: %v", ctx.MissingFields)
	}
	if ctx.State != StateSearching {
		t.Errorf("state = %s, want %s", ctx.State, StateSearching)
	}
	if ctx.ClarificationNeeded {
		t.Error("no clarification expected when context is complete")
	}
}

func TestMaintainContext_VagueFollowUpKeepsSearch(t *testing.T) {
	// A follow-up that only supplies the missing details carries the
	// classifier's low-confidence fallback intent; it must not advance the
	// state machine, so the search lands in searching, not refining_search.
	history := []Message{
		{
			Role:     "user",
			Content:  "flight to Tokyo",
			Intent:   &nlu.Intent{Type: nlu.IntentSearchFlight, Confidence: 0.8},
			Entities: []nlu.Entity{dest("Tokyo", 0.8)},
		},
		{
			Role:    "user",
			Content: "2 adults, leaving next week",
			Intent:  &nlu.Intent{Type: nlu.IntentSearchFlight, Confidence: 0.3},
			Entities: []nlu.Entity{
				{Type: nlu.EntityTravelers, Value: "2", Number: 2, Confidence: 0.9},
				{Type: nlu.EntityDate, Value: "next week", Confidence: 0.8},
			},
		},
	}
	ctx := MaintainContext(history)

	if ctx.State != StateSearching {
		t.Errorf("state = %s, want %s", ctx.State, StateSearching)
	}
	if len(ctx.MissingFields) != 0 {
		t.Errorf("unexpected missing fields: %v", ctx.MissingFields)
	}
	if ctx.LastIntent == nil || ctx.LastIntent.Confidence != 0.8 {
		t.Errorf("vague intent overrode the stored one: %+v", ctx.LastIntent)
	}
}

func TestMaintainContext_LaterIntentOverrides(t *testing.T) {
	history := []Message{
		intentMsg(nlu.IntentSearchFlight, 0.8),
		intentMsg(nlu.IntentAddToPlan, 0.9),
	}
	ctx := MaintainContext(history)
	if ctx.LastIntent == nil || ctx.LastIntent.Type != nlu.IntentAddToPlan {
		t.Errorf("last intent = %+v, want add_to_plan", ctx.LastIntent)
	}
}

func TestMaintainContext_AmbiguousDestinations(t *testing.T) {
	history := []Message{entityMsg(dest("Tokyo", 0.8), dest("Kyoto", 0.8))}
	ctx := MaintainContext(history)
	if !ctx.ClarificationNeeded {
		t.Error("two distinct destinations in one message must trigger clarification")
	}
}

func TestMaintainContext_IncrementalConsistency(t *testing.T) {
	history := []Message{
		intentMsg(nlu.IntentGreeting, 0.7),
		{
			Role:     "user",
			Intent:   &nlu.Intent{Type: nlu.IntentSearchHotel, Confidence: 0.8},
			Entities: []nlu.Entity{dest("Osaka", 0.8)},
		},
		entityMsg(nlu.Entity{Type: nlu.EntityDate, Value: "tomorrow", Confidence: 0.8}),
	}

	full := MaintainContext(history)
	again := MaintainContext(history)
	if !reflect.DeepEqual(full, again) {
		t.Errorf("repeated folds disagree:\n%+v\n%+v", full, again)
	}
}

func TestNextState_Transitions(t *testing.T) {
	tests := []struct {
		from   State
		intent nlu.IntentType
		want   State
	}{
		{StateGreeting, nlu.IntentSearchFlight, StateSearching},
		{StateSearching, nlu.IntentSearchHotel, StateRefiningSearch},
		{StateSearching, nlu.IntentAddToPlan, StateAddingToPlan},
		{StateAddingToPlan, nlu.IntentViewPlan, StateReviewingPlan},
		{StateReviewingPlan, nlu.IntentBookItem, StateBooking},
		{StateBooking, nlu.IntentBookItem, StatePostBooking},
		// no terminal state: a new search reopens requirements gathering
		{StatePostBooking, nlu.IntentSearchFlight, StateGatheringRequirements},
		// undefined pairs are a no-op
		{StateGreeting, nlu.IntentBookItem, StateGreeting},
		{StateGreeting, nlu.IntentGreeting, StateGreeting},
		{StateBooking, nlu.IntentSearchFlight, StateBooking},
	}
	for _, tt := range tests {
		if got := NextState(tt.from, tt.intent); got != tt.want {
			t.Errorf("NextState(%s, %s) = %s, want %s", tt.from, tt.intent, got, tt.want)
		}
	}
}
