package world

import (
	"github.com/eris/director/internal/director/event"
)

// ApplyEvent folds one observation into the prior state, returning the new
// state and the Diff describing what changed. ApplyEvent never mutates s.
func ApplyEvent(s State, evt event.Event) (State, Diff) {
	next := s.clone()
	diff := newDiff(SourceEvent, string(evt.Kind), evt.Subject)

	switch evt.Kind {
	case event.KindDamage:
		applyDamage(&next, evt, &diff)
	case event.KindDeath:
		applyDeath(&next, evt, &diff)
	case event.KindDimension:
		applyDimension(&next, evt, &diff)
	case event.KindDragonKill:
		applyDragonKill(&next, evt, &diff)
	case event.KindMobKill:
		applyMobKill(&next, evt, &diff)
	case event.KindAdvancement:
		applyAdvancement(&next, evt, &diff)
	case event.KindInventory:
		applyInventory(&next, evt, &diff)
	case event.KindHealth:
		applyHealthSync(&next, evt, &diff)
	case event.KindChat, event.KindStructure:
		// Chat and structure discovery carry no mechanical state change;
		// they only influence classification and narrative context.
	}

	diff.TriggeredPhaseChange = settlePhase(s, &next)
	return next, diff
}

func amountOf(payload map[string]any) float64 {
	switch v := payload["amount"].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func applyDamage(s *State, evt event.Event, diff *Diff) {
	amount := amountOf(evt.Payload)
	s.Tension += 0.5 * amount
	diff.record("tension", s.Tension-0.5*amount, s.Tension)

	p, ok := s.Players[evt.Subject]
	if !ok {
		return
	}
	oldHealth, oldFear := p.Health, p.Fear
	p.Health -= amount
	p.DamageTaken += amount
	p.Fear += 0.3 * amount
	if p.Fear > 100 {
		p.Fear = 100
	}
	clampHealth(&p)
	s.Players[evt.Subject] = p

	diff.record("health", oldHealth, p.Health)
	diff.record("fear", oldFear, p.Fear)
	if oldHealth > 0 && p.Health == 0 {
		diff.CausedDeath = true
	}
}

func applyDeath(s *State, evt event.Event, diff *Diff) {
	s.Tension += 50
	diff.record("tension", s.Tension-50, s.Tension)

	p, ok := s.Players[evt.Subject]
	if !ok {
		return
	}
	oldAlive := p.Alive
	p.Alive = false
	p.Health = 0
	s.Players[evt.Subject] = p
	diff.record("alive", oldAlive, false)
	diff.CausedDeath = true
}

func applyDimension(s *State, evt event.Event, diff *Diff) {
	p, ok := s.Players[evt.Subject]
	if !ok {
		return
	}
	dest, _ := evt.Payload["dimension"].(string)
	oldDim := p.Dimension
	p.Dimension = dest
	if dest == "nether" {
		p.EnteredNether++
	} else if dest == "end" {
		p.EnteredEnd++
	}
	s.Players[evt.Subject] = p
	diff.record("dimension", oldDim, dest)

	if dest == "nether" || dest == "end" {
		s.Tension += 5
		diff.record("tension", s.Tension-5, s.Tension)
	}
}

func applyDragonKill(s *State, evt event.Event, diff *Diff) {
	old := s.Tension
	s.Tension -= 30
	if s.Tension < 0 {
		s.Tension = 0
	}
	diff.record("tension", old, s.Tension)

	s.DragonAlive = false
	s.GameState = GameStateEnding
	diff.CausedVictory = true
}

func applyMobKill(s *State, evt event.Event, diff *Diff) {
	p, ok := s.Players[evt.Subject]
	if ok {
		p.MobKills++
		s.Players[evt.Subject] = p
		diff.record("mob_kills", p.MobKills-1, p.MobKills)
	}
	mobID, _ := evt.Payload["mob_id"].(string)
	if mobID != "" {
		if m, found := s.Mobs[mobID]; found {
			m.Alive = false
			s.Mobs[mobID] = m
		}
	}
}

func applyAdvancement(s *State, evt event.Event, diff *Diff) {
	p, ok := s.Players[evt.Subject]
	if !ok {
		return
	}
	name, _ := evt.Payload["advancement"].(string)
	if name == "" {
		return
	}
	p.Advancements = append(p.Advancements, name)
	s.Players[evt.Subject] = p
	diff.record("advancements", len(p.Advancements)-1, len(p.Advancements))
}

func applyInventory(s *State, evt event.Event, diff *Diff) {
	p, ok := s.Players[evt.Subject]
	if !ok {
		return
	}
	item, _ := evt.Payload["item"].(string)
	count := amountOf(map[string]any{"amount": evt.Payload["count"]})
	if item == "" {
		return
	}
	old := p.Inventory[item]
	p.Inventory[item] = old + int(count)
	s.Players[evt.Subject] = p
	diff.record("inventory."+item, old, p.Inventory[item])
}

func applyHealthSync(s *State, evt event.Event, diff *Diff) {
	p, ok := s.Players[evt.Subject]
	if !ok {
		return
	}
	oldHealth := p.Health
	if h, ok := evt.Payload["health"].(float64); ok {
		p.Health = h
	}
	if f, ok := evt.Payload["food"].(float64); ok {
		p.Food = f
	}
	if sat, ok := evt.Payload["saturation"].(float64); ok {
		p.Saturation = sat
	}
	clampHealth(&p)
	s.Players[evt.Subject] = p
	diff.record("health", oldHealth, p.Health)
	if oldHealth > 0 && p.Health == 0 {
		diff.CausedDeath = true
	}
}
