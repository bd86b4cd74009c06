package pipeline

import (
	"github.com/eris/director/internal/director/model"
	"github.com/eris/director/internal/synthetic/world"
)

// protect validates a plan's steps against the world's current snapshot,
// dropping individual calls that would violate a safety invariant rather
// than rejecting the whole plan: a health floor breach, an over-cap
// spawn, or a tool acting on a dead player (respawn_override is the one
// tool whose purpose is acting on a dead player, so it is exempt from the
// liveness check). chatOnly restricts acceptance to the tools reachable
// from the chat fast path.
func (p *Pipeline) protect(w world.State, steps []model.ToolInvocation, chatOnly bool) []model.ToolInvocation {
	accepted := make([]model.ToolInvocation, 0, len(steps))
	mobsSpawned := w.MobsSpawnedThisRun
	tntSpawned := w.TNTSpawnedThisRun

	for _, step := range steps {
		descriptor, ok := p.Registry.Lookup(step.Tool)
		if !ok {
			continue
		}
		if chatOnly && !descriptor.AllowedInChat {
			continue
		}

		target, hasTarget := step.Args["target_player"].(string)
		if hasTarget && descriptor.Name() != "respawn_override" {
			player, found := w.Players[target]
			if !found || !player.Alive {
				continue
			}
			if descriptor.Name() == "damage_player" {
				amount := numberArg(step.Args, "amount")
				if player.Health-amount < p.HealthFloor {
					continue
				}
			}
		}

		switch descriptor.Name() {
		case "spawn_mob":
			count := int(numberArg(step.Args, "count"))
			if count <= 0 {
				count = 1
			}
			if mobsSpawned+count > p.MaxMobsPerRun {
				continue
			}
			mobsSpawned += count
		case "spawn_tnt":
			if tntSpawned+1 > p.MaxTNTPerRun {
				continue
			}
			tntSpawned++
		}

		accepted = append(accepted, step)
	}
	return accepted
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
