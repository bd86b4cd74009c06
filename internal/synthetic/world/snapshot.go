package world

// PlayerInit describes one player's starting condition, the shape a
// scenario provides when seeding a world via FromScenario.
type PlayerInit struct {
	ID        string
	Role      string
	Dimension string
	MaxHealth float64
}

// FromScenario seeds a fresh world from an ordered player list, the
// synthetic world's entry point for a scenario run.
func FromScenario(players []PlayerInit, phaseThresholds [4]float64) State {
	s := NewState(phaseThresholds)
	s.GameState = GameStateActive
	for _, p := range players {
		maxHealth := p.MaxHealth
		if maxHealth == 0 {
			maxHealth = 20
		}
		s.Players[p.ID] = PlayerState{
			ID:         p.ID,
			Role:       p.Role,
			Dimension:  p.Dimension,
			Health:     maxHealth,
			MaxHealth:  maxHealth,
			Food:       20,
			Saturation: 5,
			Alive:      true,
			GameMode:   "survival",
			Inventory:  make(map[string]int),
		}
	}
	return s
}

// PlayerSnapshot is the observation shape the pipeline reads per player.
type PlayerSnapshot struct {
	ID           string
	Role         string
	Dimension    string
	Health       float64
	MaxHealth    float64
	Alive        bool
	Fear         float64
	Aura         int
	MobKills     int
	Advancements int
}

// Snapshot is the observation shape the pipeline's enricher node reads
// each tick: to_snapshot() in spec terms.
type Snapshot struct {
	Players     map[string]PlayerSnapshot
	GameState   GameState
	DragonAlive bool
	Weather     string
	Fracture    float64
	Phase       Phase
	Tension     float64
	GlobalChaos float64
}

// ToSnapshot projects the full state into the pipeline's read-only
// observation shape.
func (s State) ToSnapshot() Snapshot {
	players := make(map[string]PlayerSnapshot, len(s.Players))
	for id, p := range s.Players {
		players[id] = PlayerSnapshot{
			ID:           p.ID,
			Role:         p.Role,
			Dimension:    p.Dimension,
			Health:       p.Health,
			MaxHealth:    p.MaxHealth,
			Alive:        p.Alive,
			Fear:         p.Fear,
			Aura:         p.Aura,
			MobKills:     p.MobKills,
			Advancements: len(p.Advancements),
		}
	}
	return Snapshot{
		Players:     players,
		GameState:   s.GameState,
		DragonAlive: s.DragonAlive,
		Weather:     s.Weather,
		Fracture:    s.Fracture(),
		Phase:       s.Phase(),
		Tension:     s.Tension,
		GlobalChaos: s.GlobalChaos,
	}
}
