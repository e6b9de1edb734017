// README: Pattern-based entity extractor (destination, date, budget, travelers, preference).
package nlu

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	destinationConfidence   = 0.8
	absoluteDateConfidence  = 0.9
	relativeDateConfidence  = 0.8
	budgetConfidence        = 0.9
	travelerCountConfidence = 0.9
	travelerWordConfidence  = 0.8
	familyDefaultConfidence = 0.6
	preferenceConfidence    = 0.7

	// familyDefaultTravelers is assumed when a family trip is mentioned
	// without an explicit head count.
	familyDefaultTravelers = 4
)

// Destination candidates are capitalized tokens following a trigger
// preposition. Conjunction continuations ("Tokyo and Kyoto") only count once
// a preposition-anchored destination has been found.
var (
	destPattern     = regexp.MustCompile(`\b(?i:to|visit|in|at|from|near)\b\s+([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*)`)
	destConjPattern = regexp.MustCompile(`\b(?i:and|or)\b\s+([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*)`)

	absoluteDatePattern = regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:st|nd|rd|th)?(?:,\s*\d{4})?`)
	relativeDatePattern = regexp.MustCompile(`(?i)\b(?:next week|next month|next weekend|this weekend|tomorrow|tonight|today)\b`)

	currencyBudgetPattern = regexp.MustCompile(`\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
	wordBudgetPattern     = regexp.MustCompile(`(?i)\b([0-9][0-9,]*(?:\.[0-9]+)?)\s*(?:dollars|bucks|usd)\b`)

	travelerCountPattern  = regexp.MustCompile(`(?i)\b(\d+)\s+(?:adults?|people|persons?|travelers?|travellers?|passengers?|guests?)\b`)
	partyOfPattern        = regexp.MustCompile(`(?i)\b(?:party|group|family) of (\d+)\b`)
	soloTravelerPattern   = regexp.MustCompile(`(?i)\b(?:just myself|by myself|travelling alone|traveling alone|solo trip|solo)\b`)
	coupleTravelerPattern = regexp.MustCompile(`(?i)\b(?:as a couple|for two|me and my (?:wife|husband|partner))\b`)
	familyTravelerPattern = regexp.MustCompile(`(?i)\b(?:family trip|family vacation|with my family)\b`)
)

// destinationStopwords are capitalized tokens that follow trigger
// prepositions in ordinary travel talk but are never place names
// ("in March", "at Christmas").
var destinationStopwords = map[string]bool{
	"I": true, "January": true, "February": true, "March": true,
	"April": true, "May": true, "June": true, "July": true,
	"August": true, "September": true, "October": true, "November": true,
	"December": true, "Monday": true, "Tuesday": true, "Wednesday": true,
	"Thursday": true, "Friday": true, "Saturday": true, "Sunday": true,
	"Christmas": true, "Easter": true,
}

// preferenceVocabulary is the fixed adjective/phrase list; each distinct term
// found anywhere in the text yields one preference entity.
var preferenceVocabulary = []string{
	"luxury",
	"budget-friendly",
	"cheap",
	"direct",
	"nonstop",
	"non-stop",
	"business class",
	"first class",
	"economy",
	"window seat",
	"aisle seat",
	"all-inclusive",
	"pet-friendly",
	"family-friendly",
	"romantic",
	"boutique",
	"beachfront",
}

// ExtractEntities scans an utterance for typed fragments. Each entity type is
// extracted independently; results are concatenated and ordered left to right
// by position. Pure function; garbage input yields an empty slice, never a
// panic.
func ExtractEntities(text string) []Entity {
	if text == "" {
		return nil
	}

	var entities []Entity
	entities = append(entities, extractDestinations(text)...)
	entities = append(entities, extractDates(text)...)
	entities = append(entities, extractBudgets(text)...)
	entities = append(entities, extractTravelers(text)...)
	entities = append(entities, extractPreferences(text)...)

	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Start < entities[j].Start
	})
	return entities
}

func extractDestinations(text string) []Entity {
	var found []Entity
	seen := map[string]bool{}

	collect := func(matches [][]int) {
		for _, m := range matches {
			start, end := m[2], m[3]
			value := text[start:end]
			if destinationStopwords[value] || seen[value] {
				continue
			}
			seen[value] = true
			found = append(found, Entity{
				Type:       EntityDestination,
				Value:      value,
				Confidence: destinationConfidence,
				Start:      start,
				End:        end,
			})
		}
	}

	collect(destPattern.FindAllStringSubmatchIndex(text, -1))
	// "to Tokyo and Kyoto": the conjunction form is only trusted when a
	// preposition-anchored destination already exists.
	if len(found) > 0 {
		collect(destConjPattern.FindAllStringSubmatchIndex(text, -1))
	}
	return found
}

func extractDates(text string) []Entity {
	var found []Entity
	for _, m := range absoluteDatePattern.FindAllStringIndex(text, -1) {
		found = append(found, Entity{
			Type:       EntityDate,
			Value:      text[m[0]:m[1]],
			Confidence: absoluteDateConfidence,
			Start:      m[0],
			End:        m[1],
		})
	}
	for _, m := range relativeDatePattern.FindAllStringIndex(text, -1) {
		found = append(found, Entity{
			Type:       EntityDate,
			Value:      text[m[0]:m[1]],
			Confidence: relativeDateConfidence,
			Start:      m[0],
			End:        m[1],
		})
	}
	return found
}

func extractBudgets(text string) []Entity {
	var found []Entity

	collect := func(matches [][]int) {
		for _, m := range matches {
			// Skip spans overlapping an already-extracted budget
			// ("$3,000 dollars" is one amount, not two).
			overlaps := false
			for _, e := range found {
				if m[0] < e.End && e.Start < m[1] {
					overlaps = true
					break
				}
			}
			if overlaps {
				continue
			}

			raw := strings.ReplaceAll(text[m[2]:m[3]], ",", "")
			amount, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			found = append(found, Entity{
				Type:       EntityBudget,
				Value:      raw,
				Number:     amount,
				Confidence: budgetConfidence,
				Start:      m[0],
				End:        m[1],
			})
		}
	}

	collect(currencyBudgetPattern.FindAllStringSubmatchIndex(text, -1))
	collect(wordBudgetPattern.FindAllStringSubmatchIndex(text, -1))
	return found
}

func extractTravelers(text string) []Entity {
	numeric := func(matches [][]int) []Entity {
		var out []Entity
		for _, m := range matches {
			raw := text[m[2]:m[3]]
			count, err := strconv.Atoi(raw)
			if err != nil {
				continue
			}
			out = append(out, Entity{
				Type:       EntityTravelers,
				Value:      raw,
				Number:     float64(count),
				Confidence: travelerCountConfidence,
				Start:      m[0],
				End:        m[1],
			})
		}
		return out
	}

	if found := numeric(travelerCountPattern.FindAllStringSubmatchIndex(text, -1)); len(found) > 0 {
		return found
	}
	if found := numeric(partyOfPattern.FindAllStringSubmatchIndex(text, -1)); len(found) > 0 {
		return found
	}

	if m := soloTravelerPattern.FindStringIndex(text); m != nil {
		return []Entity{{
			Type: EntityTravelers, Value: "1", Number: 1,
			Confidence: travelerWordConfidence, Start: m[0], End: m[1],
		}}
	}
	if m := coupleTravelerPattern.FindStringIndex(text); m != nil {
		return []Entity{{
			Type: EntityTravelers, Value: "2", Number: 2,
			Confidence: travelerWordConfidence, Start: m[0], End: m[1],
		}}
	}
	if m := familyTravelerPattern.FindStringIndex(text); m != nil {
		return []Entity{{
			Type:       EntityTravelers,
			Value:      strconv.Itoa(familyDefaultTravelers),
			Number:     familyDefaultTravelers,
			Confidence: familyDefaultConfidence,
			Start:      m[0],
			End:        m[1],
		}}
	}
	return nil
}

func extractPreferences(text string) []Entity {
	lower := strings.ToLower(text)
	var found []Entity
	for _, term := range preferenceVocabulary {
		idx := strings.Index(lower, term)
		if idx < 0 {
			continue
		}
		found = append(found, Entity{
			Type:       EntityPreference,
			Value:      term,
			Confidence: preferenceConfidence,
			Start:      idx,
			End:        idx + len(term),
		})
	}
	return found
}
