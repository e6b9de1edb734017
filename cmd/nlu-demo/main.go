// README: Offline NLU demo; feeds typed messages through the analysis pipeline.
package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"wander/internal/conversation"
	"wander/internal/nlu"
	"wander/internal/types"
)

func main() {
	fmt.Println("Type a travel message (Ctrl-D to quit):")

	var history []conversation.Message
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := scanner.Text()
		if text == "" {
			continue
		}

		intent := nlu.ExtractIntent(text)
		entities := nlu.ExtractEntities(text)
		history = append(history, conversation.Message{
			ID:        types.NewID(),
			SessionID: "demo",
			Role:      "user",
			Content:   text,
			Intent:    &intent,
			Entities:  entities,
			CreatedAt: time.Now().UTC(),
		})
		ctx := conversation.MaintainContext(history)

		fmt.Printf("Intent: %s (%.2f)\n", intent.Type, intent.Confidence)
		for _, e := range entities {
			fmt.Printf("Entity: %s=%q [%d:%d]\n", e.Type, e.Value, e.Start, e.End)
		}
		fmt.Printf("State: %s  Missing: %v\n", ctx.State, ctx.MissingFields)
		if ctx.ClarificationNeeded {
			c := conversation.ClarifyIntent(text, ctx, entities)
			fmt.Printf("Clarify: %s", c.Question)
			if len(c.Options) > 0 {
				fmt.Printf(" %v", c.Options)
			}
			fmt.Println()
		}
		fmt.Println()
	}
}
