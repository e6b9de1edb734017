// README: Intent classifier tests (rule hits, priority, fallback).
package nlu

import "testing"

func TestExtractIntent_TriggerPhrases(t *testing.T) {
	tests := []struct {
		name string
		text string
		want IntentType
	}{
		{"flight keyword", "I need a flight to Tokyo", IntentSearchFlight},
		{"flight uppercase", "FIND ME A FLIGHT", IntentSearchFlight},
		{"flying", "We are flying out on Friday", IntentSearchFlight},
		{"hotel keyword", "Find me a hotel in Kyoto", IntentSearchHotel},
		{"place to stay", "Looking for a place to stay near the beach", IntentSearchHotel},
		{"activities", "What activities are there in Osaka?", IntentSearchActivity},
		{"things to do", "Any things to do around the harbor?", IntentSearchActivity},
		{"add to plan phrase", "Please add this to my plan", IntentAddToPlan},
		{"save this", "save this for later", IntentAddToPlan},
		{"remove from plan", "remove this from my plan", IntentRemoveFromPlan},
		{"book now", "Book this now please", IntentBookItem},
		{"book it", "ok, book it", IntentBookItem},
		{"view plan", "show my plan so far", IntentViewPlan},
		{"itinerary", "can I see my itinerary", IntentViewPlan},
		{"greeting", "hello!", IntentGreeting},
		{"help", "how do i change the dates?", IntentHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractIntent(tt.text)
			if got.Type != tt.want {
				t.Errorf("ExtractIntent(%q).Type = %s, want %s", tt.text, got.Type, tt.want)
			}
			if got.Confidence < 0.5 {
				t.Errorf("ExtractIntent(%q).Confidence = %.2f, want >= 0.5", tt.text, got.Confidence)
			}
		})
	}
}

func TestExtractIntent_PlanBeatsSearch(t *testing.T) {
	// These contain both a plan phrase and a search keyword, with the item
	// noun interposed mid-phrase; the plan rule has priority.
	for _, text := range []string{
		"add this flight to my plan",
		"add that hotel to the plan",
		"can you add the museum tour to my plan",
	} {
		got := ExtractIntent(text)
		if got.Type != IntentAddToPlan {
			t.Errorf("ExtractIntent(%q).Type = %s, want %s", text, got.Type, IntentAddToPlan)
		}
	}
}

func TestExtractIntent_Fallback(t *testing.T) {
	for _, text := range []string{"", "qwerty asdf", "somewhere warm maybe"} {
		got := ExtractIntent(text)
		if got.Type != IntentSearchFlight {
			t.Errorf("ExtractIntent(%q).Type = %s, want %s", text, got.Type, IntentSearchFlight)
		}
		if got.Confidence >= 0.5 {
			t.Errorf("ExtractIntent(%q).Confidence = %.2f, want < 0.5", text, got.Confidence)
		}
	}
}

func TestExtractIntent_Pure(t *testing.T) {
	a := ExtractIntent("book this now")
	b := ExtractIntent("book this now")
	if a.Type != b.Type || a.Confidence != b.Confidence {
		t.Errorf("repeated calls disagree: %+v vs %+v", a, b)
	}
}
