package memory

import (
	"fmt"
	"strings"

	"github.com/eris/director/internal/director/event"
	"github.com/eris/director/internal/synthetic/world"
)

// approxCharsPerToken is the coarse token estimate used to enforce the
// context-window budget without depending on a real tokenizer; the
// director's context budget is a soft safety margin, not a billing figure.
const approxCharsPerToken = 4

// Synopsis is the bounded context handed to the decision node: recent
// events, the chat buffer, and player summaries, trimmed to fit within the
// configured token budget.
type Synopsis struct {
	Text       string
	Truncated  bool
	TokenCount int
}

// BuildSynopsis assembles a token-budgeted synopsis from the world's
// to_snapshot() projection, recent events, the rolling chat buffer, and
// player summaries. Older material is dropped first; the result never
// exceeds maxTokens.
func BuildSynopsis(snapshot world.Snapshot, recent []event.Event, chatBuffer []event.Event, summaries map[string]PlayerSummary, maxTokens int) Synopsis {
	var b strings.Builder

	fmt.Fprintf(&b, "World state: phase=%s fracture=%.1f game_state=%s dragon_alive=%v weather=%s\n",
		snapshot.Phase, snapshot.Fracture, snapshot.GameState, snapshot.DragonAlive, snapshot.Weather)
	for id, p := range snapshot.Players {
		fmt.Fprintf(&b, "- player %s: health=%.1f/%.1f alive=%v fear=%.1f aura=%d\n",
			id, p.Health, p.MaxHealth, p.Alive, p.Fear, p.Aura)
	}

	b.WriteString("Player summaries:\n")
	for id, s := range summaries {
		fmt.Fprintf(&b, "- %s: aura=%d deaths=%d dragons_killed=%d nemesis=%q\n",
			id, s.Aura, s.Deaths, s.DragonsKilled, s.NemesisCause)
	}

	b.WriteString("Recent events:\n")
	for _, e := range recent {
		fmt.Fprintf(&b, "- [%s] %s subject=%s\n", e.Priority, e.Kind, e.Subject)
	}

	b.WriteString("Chat buffer:\n")
	for _, e := range chatBuffer {
		msg, _ := e.Payload["message"].(string)
		fmt.Fprintf(&b, "- %s: %s\n", e.Subject, msg)
	}

	budgetChars := maxTokens * approxCharsPerToken
	text := b.String()
	truncated := false
	if budgetChars > 0 && len(text) > budgetChars {
		text = truncateFromFront(text, budgetChars)
		truncated = true
	}

	return Synopsis{
		Text:       text,
		Truncated:  truncated,
		TokenCount: len(text) / approxCharsPerToken,
	}
}

// truncateFromFront keeps the tail of text (the most recent material),
// dropping the oldest lines first, matching the "drop older material
// first" rule.
func truncateFromFront(text string, budgetChars int) string {
	if len(text) <= budgetChars {
		return text
	}
	cut := len(text) - budgetChars
	if idx := strings.IndexByte(text[cut:], '\n'); idx >= 0 {
		cut += idx + 1
	}
	return text[cut:]
}
