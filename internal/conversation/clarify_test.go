// README: Clarification generator tests (priority order, option sets).
package conversation

import (
	"reflect"
	"strings"
	"testing"

	"wander/internal/nlu"
)

func TestClarifyIntent_AmbiguousDestinations(t *testing.T) {
	extracted := []nlu.Entity{
		dest("Tokyo", 0.8),
		dest("Kyoto", 0.8),
		dest("Tokyo", 0.8), // repeated value must not duplicate an option
	}
	ctx := NewContext()
	ctx.MissingFields = []string{"destination", "date"}

	got := ClarifyIntent("Tokyo or Kyoto?", ctx, extracted)
	if got.Type != ClarificationSingleChoice {
		t.Fatalf("type = %s, want %s", got.Type, ClarificationSingleChoice)
	}
	if !reflect.DeepEqual(got.Options, []string{"Tokyo", "Kyoto"}) {
		t.Errorf("options = %v, want [Tokyo Kyoto]", got.Options)
	}
}

func TestClarifyIntent_MissingFieldPriority(t *testing.T) {
	tests := []struct {
		name        string
		missing     []string
		wantType    ClarificationType
		wantPart    string
		wantOptions []string
	}{
		{"destination first", []string{"destination", "date", "travelers"}, ClarificationOpenEnded, "Where", nil},
		{"then date", []string{"date", "travelers"}, ClarificationOpenEnded, "When", nil},
		{"then travelers", []string{"travelers"}, ClarificationSingleChoice, "How many", []string{"1", "2", "3", "4+"}},
		{"generic fallback", nil, ClarificationOpenEnded, "more about your trip", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext()
			ctx.MissingFields = tt.missing

			got := ClarifyIntent("", ctx, nil)
			if got.Type != tt.wantType {
				t.Errorf("type = %s, want %s", got.Type, tt.wantType)
			}
			if !strings.Contains(got.Question, tt.wantPart) {
				t.Errorf("question %q does not mention %q", got.Question, tt.wantPart)
			}
			if tt.wantOptions != nil && !reflect.DeepEqual(got.Options, tt.wantOptions) {
				t.Errorf("options = %v, want %v", got.Options, tt.wantOptions)
			}
		})
	}
}

func TestClarifyIntent_TextParameterIsInert(t *testing.T) {
	ctx := NewContext()
	ctx.MissingFields = []string{"date"}

	a := ClarifyIntent("first wording", ctx, nil)
	b := ClarifyIntent("completely different wording", ctx, nil)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("clarification depends on text parameter: %+v vs %+v", a, b)
	}
}
