package world

import (
	"fmt"

	"github.com/eris/director/internal/director/tool"
)

// ApplyToolCall folds one accepted tool invocation into the prior state,
// returning the new state and the Diff describing what changed. Unlike
// ApplyEvent, a tool call can be individually rejected (Diff.Succeeded =
// false) without the caller having to special-case it: the protection
// validator still runs upstream in the pipeline, but a handful of
// business-rule rejections (e.g. healing a player who is already at full
// health) live here because they are about target state, not safety.
func ApplyToolCall(s State, d tool.Descriptor, args map[string]any) (State, Diff) {
	next := s.clone()
	diff := newDiff(SourceToolCall, d.Name(), stringArg(args, "target_player"))

	switch d.Name() {
	case "spawn_mob":
		applySpawnMob(&next, args, &diff)
	case "give_item":
		applyGiveItem(&next, args, &diff)
	case "damage_player":
		applyDamagePlayerTool(&next, args, &diff)
	case "heal_player":
		applyHealPlayer(&next, args, &diff)
	case "teleport_player":
		applyTeleport(&next, args, &diff)
	case "apply_effect":
		// Cosmetic-adjacent status effect; tracked narratively, no numeric
		// state change beyond what damage_player/heal_player already model.
	case "modify_aura":
		applyModifyAura(&next, args, &diff)
	case "change_weather":
		applyChangeWeather(&next, args, &diff)
	case "spawn_tnt":
		applySpawnTNT(&next, args, &diff)
	case "spawn_falling_block":
		applySpawnFallingBlock(&next, args, &diff)
	case "protect_player":
		applyProtectPlayer(&next, args, &diff)
	case "rescue_teleport":
		applyRescueTeleport(&next, args, &diff)
	case "respawn_override":
		applyRespawnOverride(&next, args, &diff)
	default:
		// Purely cosmetic tools (broadcast, message_player,
		// strike_lightning, launch_firework, play_sound, show_title,
		// spawn_particles, fake_death) have no mechanical effect.
	}

	if diff.Succeeded {
		applyFractureCost(&next, d, &diff)
	}
	diff.TriggeredPhaseChange = settlePhase(s, &next)
	return next, diff
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func numberArg(args map[string]any, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func applyFractureCost(s *State, d tool.Descriptor, diff *Diff) {
	if d.FractureCost == 0 {
		return
	}
	old := s.Tension
	s.Tension += d.FractureCost
	if s.Tension < 0 {
		s.Tension = 0
	}
	diff.record("tension", old, s.Tension)
}

func applySpawnMob(s *State, args map[string]any, diff *Diff) {
	mobType := stringArg(args, "mob_type")
	target := stringArg(args, "target_player")
	count := int(numberArg(args, "count"))
	if count <= 0 {
		count = 1
	}
	for i := 0; i < count; i++ {
		id := fmt.Sprintf("%s-%s-%d", mobType, target, s.MobsSpawnedThisRun)
		s.Mobs[id] = MobSpawn{ID: id, Type: mobType, Target: target, Alive: true}
		s.MobsSpawnedThisRun++
	}
	diff.record("mobs_spawned", s.MobsSpawnedThisRun-count, s.MobsSpawnedThisRun)
}

func applyGiveItem(s *State, args map[string]any, diff *Diff) {
	p, ok := s.Players[stringArg(args, "target_player")]
	if !ok {
		diff.Succeeded = false
		diff.Reason = "unknown target player"
		return
	}
	item := stringArg(args, "item")
	count := int(numberArg(args, "count"))
	if count <= 0 {
		count = 1
	}
	old := p.Inventory[item]
	p.Inventory[item] = old + count
	s.Players[p.ID] = p
	diff.record("inventory."+item, old, p.Inventory[item])
}

func applyDamagePlayerTool(s *State, args map[string]any, diff *Diff) {
	target := stringArg(args, "target_player")
	p, ok := s.Players[target]
	if !ok || !p.Alive {
		diff.Succeeded = false
		diff.Reason = "target is not a living player"
		return
	}
	amount := numberArg(args, "amount")
	old := p.Health
	p.Health -= amount
	clampHealth(&p)
	s.Players[target] = p
	diff.record("health", old, p.Health)
	if old > 0 && p.Health == 0 {
		diff.CausedDeath = true
	}
}

func applyHealPlayer(s *State, args map[string]any, diff *Diff) {
	target := stringArg(args, "target_player")
	p, ok := s.Players[target]
	if !ok {
		diff.Succeeded = false
		diff.Reason = "unknown target player"
		return
	}
	if p.Health >= p.MaxHealth {
		diff.Succeeded = false
		diff.Reason = "target already at full health"
		return
	}
	amount := numberArg(args, "amount")
	old := p.Health
	p.Health += amount
	clampHealth(&p)
	s.Players[target] = p
	diff.record("health", old, p.Health)
}

func applyTeleport(s *State, args map[string]any, diff *Diff) {
	target := stringArg(args, "target_player")
	p, ok := s.Players[target]
	if !ok {
		diff.Succeeded = false
		diff.Reason = "unknown target player"
		return
	}
	destination := stringArg(args, "destination")
	diff.record("destination", p.Dimension, destination)
	s.Players[target] = p
}

func applyModifyAura(s *State, args map[string]any, diff *Diff) {
	target := stringArg(args, "target_player")
	p, ok := s.Players[target]
	if !ok {
		diff.Succeeded = false
		diff.Reason = "unknown target player"
		return
	}
	old := p.Aura
	p.Aura += int(numberArg(args, "delta"))
	s.Players[target] = p
	diff.record("aura", old, p.Aura)
}

func applyChangeWeather(s *State, args map[string]any, diff *Diff) {
	old := s.Weather
	s.Weather = stringArg(args, "weather")
	diff.record("weather", old, s.Weather)
}

func applySpawnTNT(s *State, args map[string]any, diff *Diff) {
	s.TNTSpawnedThisRun++
	diff.record("tnt_spawned", s.TNTSpawnedThisRun-1, s.TNTSpawnedThisRun)
}

func applySpawnFallingBlock(s *State, args map[string]any, diff *Diff) {
	target := stringArg(args, "target_player")
	if _, ok := s.Players[target]; !ok {
		diff.Succeeded = false
		diff.Reason = "unknown target player"
	}
}

func applyProtectPlayer(s *State, args map[string]any, diff *Diff) {
	target := stringArg(args, "target_player")
	p, ok := s.Players[target]
	if !ok {
		diff.Succeeded = false
		diff.Reason = "unknown target player"
		return
	}
	if p.Health >= p.MaxHealth {
		diff.Succeeded = false
		diff.Reason = "target already at full health"
		return
	}
	diff.record("protected", false, true)
}

func applyRescueTeleport(s *State, args map[string]any, diff *Diff) {
	target := stringArg(args, "target_player")
	p, ok := s.Players[target]
	if !ok {
		diff.Succeeded = false
		diff.Reason = "unknown target player"
		return
	}
	if p.Health >= p.MaxHealth {
		diff.Succeeded = false
		diff.Reason = "target already at full health"
		return
	}
	diff.record("rescued", false, true)
}

func applyRespawnOverride(s *State, args map[string]any, diff *Diff) {
	target := stringArg(args, "target_player")
	p, ok := s.Players[target]
	if !ok {
		diff.Succeeded = false
		diff.Reason = "unknown target player"
		return
	}
	destination := stringArg(args, "destination")
	diff.record("respawn_point", "", destination)
	s.Players[target] = p
}
