// Package config parses director runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	platformconfig "github.com/eris/director/internal/platform/config"
)

// Config holds every tunable named in the director's external interface:
// mask selection, debounce windows, context budgets, phase thresholds, and
// per-node timeouts.
type Config struct {
	MaskStability      float64 `env:"ERIS_DIRECTOR_MASK_STABILITY" envDefault:"0.70"`
	MaskStabilityDecay float64 `env:"ERIS_DIRECTOR_MASK_STABILITY_DECAY" envDefault:"0.05"`
	MinStability       float64 `env:"ERIS_DIRECTOR_MIN_STABILITY" envDefault:"0.30"`
	MaskDebtWeight     float64 `env:"ERIS_DIRECTOR_MASK_DEBT_WEIGHT" envDefault:"1.0"`

	DebounceState     time.Duration `env:"ERIS_DIRECTOR_DEBOUNCE_STATE" envDefault:"15s"`
	DebounceDamage    time.Duration `env:"ERIS_DIRECTOR_DEBOUNCE_DAMAGE" envDefault:"5s"`
	DebounceMilestone time.Duration `env:"ERIS_DIRECTOR_DEBOUNCE_MILESTONE" envDefault:"3s"`

	ChatBuffer    int `env:"ERIS_DIRECTOR_CHAT_BUFFER" envDefault:"50"`
	ContextTokens int `env:"ERIS_DIRECTOR_CONTEXT_TOKENS" envDefault:"25000"`
	QueueCap      int `env:"ERIS_DIRECTOR_QUEUE_CAP" envDefault:"1000"`

	// PhaseThresholds gates NORMAL->RISING->CRITICAL->BREAKING->APOCALYPSE in
	// that order; exactly four values are expected.
	PhaseThresholds []float64 `env:"ERIS_DIRECTOR_PHASE_THRESHOLDS" envDefault:"50,80,120,150" envSeparator:","`

	MaxMobsPerRun int     `env:"ERIS_DIRECTOR_MAX_MOBS_PER_RUN" envDefault:"50"`
	MaxTNTPerRun  int     `env:"ERIS_DIRECTOR_MAX_TNT_PER_RUN" envDefault:"10"`
	HealthFloor   float64 `env:"ERIS_DIRECTOR_HEALTH_FLOOR" envDefault:"1.0"`

	ModelTimeout time.Duration `env:"ERIS_DIRECTOR_MODEL_TIMEOUT" envDefault:"8s"`
	ChatTimeout  time.Duration `env:"ERIS_DIRECTOR_CHAT_TIMEOUT" envDefault:"3s"`
	NodeDeadline time.Duration `env:"ERIS_DIRECTOR_NODE_DEADLINE" envDefault:"8s"`

	// MobKillPriority resolves the spec's open question on mob_kill
	// classification; defaults to LOW per the recommended fallback.
	MobKillPriority string `env:"ERIS_DIRECTOR_MOB_KILL_PRIORITY" envDefault:"LOW"`

	LongTermDBPath string `env:"ERIS_DIRECTOR_LONGTERM_DB_PATH" envDefault:"data/director-memory.db"`

	OpenAIResponsesURL string `env:"ERIS_DIRECTOR_OPENAI_RESPONSES_URL" envDefault:"https://api.openai.com/v1/responses"`
	OpenAIModel        string `env:"ERIS_DIRECTOR_OPENAI_MODEL" envDefault:"gpt-4.1-mini"`
	OpenAICredential   string `env:"ERIS_DIRECTOR_OPENAI_API_KEY"`

	OtelEnabled  bool   `env:"ERIS_DIRECTOR_OTEL_ENABLED" envDefault:"false"`
	OtelEndpoint string `env:"ERIS_DIRECTOR_OTEL_ENDPOINT"`

	Locale string `env:"ERIS_DIRECTOR_LOCALE" envDefault:"en-US"`
}

// Load parses Config from the environment and validates cross-field
// invariants that envDefault tags cannot express.
func Load() (Config, error) {
	var cfg Config
	if err := platformconfig.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations that would violate pipeline or mask
// invariants regardless of which node first observes them.
func (c Config) Validate() error {
	if c.MinStability < 0 || c.MinStability > c.MaskStability {
		return fmt.Errorf("min_stability %v must be in [0, mask_stability=%v]", c.MinStability, c.MaskStability)
	}
	if len(c.PhaseThresholds) != 4 {
		return fmt.Errorf("phase_thresholds must have exactly 4 values, got %d", len(c.PhaseThresholds))
	}
	for i := 1; i < len(c.PhaseThresholds); i++ {
		if c.PhaseThresholds[i] <= c.PhaseThresholds[i-1] {
			return fmt.Errorf("phase_thresholds must be strictly increasing, got %v", c.PhaseThresholds)
		}
	}
	if c.HealthFloor < 0 {
		return fmt.Errorf("health_floor must be >= 0, got %v", c.HealthFloor)
	}
	if c.ChatBuffer <= 0 {
		return fmt.Errorf("chat_buffer must be > 0, got %d", c.ChatBuffer)
	}
	return nil
}
