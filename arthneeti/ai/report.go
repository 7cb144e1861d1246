package ai

import (
	"context"
	"fmt"
	"strings"
)

// Narrator turns a final-report prompt into prose for the game-over
// screen.
type Narrator struct {
	completer Completer
}

func NewNarrator(completer Completer) *Narrator {
	return &Narrator{completer: completer}
}

const narratorSystemPrompt = `You write end-of-game reports for an Indian personal-finance simulation.
Warm, specific and honest. Use Markdown with a title and short sections.
Keep the whole report under 250 words.`

func (n *Narrator) Narrate(ctx context.Context, prompt string) (string, error) {
	report, err := n.completer.Complete(ctx, narratorSystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("report completion failed: %w", err)
	}
	report = strings.TrimSpace(report)
	if report == "" {
		return "", fmt.Errorf("empty report from model")
	}
	return report, nil
}
