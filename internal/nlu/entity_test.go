// README: Entity extractor tests (per-type patterns, dedup, ordering, robustness).
package nlu

import (
	"strings"
	"testing"
)

func entitiesOfType(entities []Entity, typ EntityType) []Entity {
	var out []Entity
	for _, e := range entities {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func TestExtractEntities_Destinations(t *testing.T) {
	got := entitiesOfType(ExtractEntities("I want to visit Tokyo and Kyoto"), EntityDestination)
	if len(got) != 2 {
		t.Fatalf("expected 2 destinations, got %d: %+v", len(got), got)
	}
	if got[0].Value != "Tokyo" || got[1].Value != "Kyoto" {
		t.Errorf("expected [Tokyo Kyoto], got [%s %s]", got[0].Value, got[1].Value)
	}
	for _, e := range got {
		if e.End <= e.Start {
			t.Errorf("entity %q has invalid position (%d, %d)", e.Value, e.Start, e.End)
		}
	}
	if got[0].Start >= got[1].Start {
		t.Errorf("destinations out of order: %d vs %d", got[0].Start, got[1].Start)
	}
}

func TestExtractEntities_DestinationDedup(t *testing.T) {
	got := entitiesOfType(ExtractEntities("from Tokyo to Tokyo"), EntityDestination)
	if len(got) != 1 {
		t.Fatalf("expected 1 destination after dedup, got %d: %+v", len(got), got)
	}
	if got[0].Value != "Tokyo" {
		t.Errorf("expected Tokyo, got %s", got[0].Value)
	}
}

func TestExtractEntities_MultiWordDestination(t *testing.T) {
	got := entitiesOfType(ExtractEntities("a flight to New York"), EntityDestination)
	if len(got) != 1 || got[0].Value != "New York" {
		t.Fatalf("expected [New York], got %+v", got)
	}
}

func TestExtractEntities_MonthIsNotADestination(t *testing.T) {
	got := entitiesOfType(ExtractEntities("somewhere sunny in March"), EntityDestination)
	if len(got) != 0 {
		t.Errorf("expected no destinations, got %+v", got)
	}
}

func TestExtractEntities_Dates(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		contains string
	}{
		{"absolute with year", "Flying on March 15, 2024", "March 15"},
		{"absolute without year", "leaving March 15", "March 15"},
		{"relative next week", "sometime next week", "next week"},
		{"relative tomorrow", "I leave tomorrow", "tomorrow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entitiesOfType(ExtractEntities(tt.text), EntityDate)
			if len(got) == 0 {
				t.Fatalf("expected a date entity in %q", tt.text)
			}
			if !strings.Contains(got[0].Value, tt.contains) {
				t.Errorf("date value %q does not contain %q", got[0].Value, tt.contains)
			}
		})
	}
}

func TestExtractEntities_Budget(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"dollar prefix", "My budget is $3000", 3000},
		{"thousands separator", "around 3,000 dollars total", 3000},
		{"ceiling phrase kept literal", "keep it under $1000", 1000},
		{"prefix and suffix overlap", "$2,500 dollars", 2500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entitiesOfType(ExtractEntities(tt.text), EntityBudget)
			if len(got) != 1 {
				t.Fatalf("expected exactly 1 budget entity, got %d: %+v", len(got), got)
			}
			if got[0].Number != tt.want {
				t.Errorf("budget = %v, want %v", got[0].Number, tt.want)
			}
		})
	}
}

func TestExtractEntities_Travelers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"explicit adults", "2 adults and a dog", 2},
		{"party of", "Party of 4", 4},
		{"solo", "it's just myself", 1},
		{"couple", "travelling as a couple", 2},
		{"family default", "a family trip this summer", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entitiesOfType(ExtractEntities(tt.text), EntityTravelers)
			if len(got) != 1 {
				t.Fatalf("expected exactly 1 travelers entity, got %d: %+v", len(got), got)
			}
			if got[0].Number != tt.want {
				t.Errorf("travelers = %v, want %v", got[0].Number, tt.want)
			}
		})
	}
}

func TestExtractEntities_Preferences(t *testing.T) {
	got := entitiesOfType(ExtractEntities("a luxury hotel, direct flights, business class"), EntityPreference)
	want := map[string]bool{"luxury": true, "direct": true, "business class": true}
	if len(got) != len(want) {
		t.Fatalf("expected %d preferences, got %d: %+v", len(want), len(got), got)
	}
	for _, e := range got {
		if !want[e.Value] {
			t.Errorf("unexpected preference %q", e.Value)
		}
	}
}

func TestExtractEntities_LeftToRightOrder(t *testing.T) {
	got := ExtractEntities("Fly to Paris next week with 2 adults under $1500")
	if len(got) < 4 {
		t.Fatalf("expected at least 4 entities, got %d: %+v", len(got), got)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Start < got[i-1].Start {
			t.Errorf("entities not ordered by position at %d: %+v", i, got)
		}
	}
}

func TestExtractEntities_GarbageInput(t *testing.T) {
	for _, text := range []string{"", "!!!###$$$", "$", "party of NaN", strings.Repeat("é", 64)} {
		got := ExtractEntities(text)
		for _, e := range got {
			if e.Start < 0 || e.End > len(text) {
				t.Errorf("entity out of bounds for %q: %+v", text, e)
			}
		}
	}
}

func TestExtractEntities_StressRepetition(t *testing.T) {
	text := strings.Repeat("we could go somewhere nice ", 1000) + "to Tokyo"
	got := entitiesOfType(ExtractEntities(text), EntityDestination)
	if len(got) == 0 {
		t.Fatal("expected a destination entity at the tail of the stress string")
	}
	last := got[len(got)-1]
	if last.Value != "Tokyo" {
		t.Errorf("expected Tokyo, got %q", last.Value)
	}
}
