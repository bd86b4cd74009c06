// Package scenariorun parses scenario-run command flags and executes
// scripted director runs against the synthetic world.
package scenariorun

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/eris/director/internal/director/event"
	"github.com/eris/director/internal/director/mask"
	"github.com/eris/director/internal/director/memory"
	"github.com/eris/director/internal/director/model"
	"github.com/eris/director/internal/director/pipeline"
	"github.com/eris/director/internal/director/tool"
	platformconfig "github.com/eris/director/internal/platform/config"
	"github.com/eris/director/internal/synthetic/scenario"
)

// Config holds scenario-run command configuration.
type Config struct {
	ScenarioFile string `env:"ERIS_SCENARIO_RUN_FILE"`
	Seed         int64  `env:"ERIS_SCENARIO_RUN_SEED" envDefault:"1"`
	RunID        string `env:"ERIS_SCENARIO_RUN_ID"`
	Verbose      bool   `env:"ERIS_SCENARIO_RUN_VERBOSE"`
	Timeout      time.Duration `env:"ERIS_SCENARIO_RUN_TIMEOUT" envDefault:"30s"`

	MaskStability      float64 `env:"ERIS_DIRECTOR_MASK_STABILITY" envDefault:"0.70"`
	MaskStabilityDecay float64 `env:"ERIS_DIRECTOR_MASK_STABILITY_DECAY" envDefault:"0.05"`
	MinStability       float64 `env:"ERIS_DIRECTOR_MIN_STABILITY" envDefault:"0.30"`
	MaskDebtWeight     float64 `env:"ERIS_DIRECTOR_MASK_DEBT_WEIGHT" envDefault:"1.0"`

	PhaseThresholds []float64 `env:"ERIS_DIRECTOR_PHASE_THRESHOLDS" envDefault:"50,80,120,150" envSeparator:","`
	MaxMobsPerRun   int       `env:"ERIS_DIRECTOR_MAX_MOBS_PER_RUN" envDefault:"50"`
	MaxTNTPerRun    int       `env:"ERIS_DIRECTOR_MAX_TNT_PER_RUN" envDefault:"10"`
	HealthFloor     float64   `env:"ERIS_DIRECTOR_HEALTH_FLOOR" envDefault:"1.0"`
	ContextTokens   int       `env:"ERIS_DIRECTOR_CONTEXT_TOKENS" envDefault:"25000"`
	ChatBuffer      int       `env:"ERIS_DIRECTOR_CHAT_BUFFER" envDefault:"50"`
	ModelTimeout    time.Duration `env:"ERIS_DIRECTOR_MODEL_TIMEOUT" envDefault:"8s"`
	ChatTimeout     time.Duration `env:"ERIS_DIRECTOR_CHAT_TIMEOUT" envDefault:"3s"`
	NodeDeadline    time.Duration `env:"ERIS_DIRECTOR_NODE_DEADLINE" envDefault:"8s"`
	MobKillPriority string    `env:"ERIS_DIRECTOR_MOB_KILL_PRIORITY" envDefault:"LOW"`

	OpenAIResponsesURL string `env:"ERIS_DIRECTOR_OPENAI_RESPONSES_URL" envDefault:"https://api.openai.com/v1/responses"`
	OpenAIModel        string `env:"ERIS_DIRECTOR_OPENAI_MODEL" envDefault:"gpt-4.1-mini"`
	OpenAICredential   string `env:"ERIS_DIRECTOR_OPENAI_API_KEY"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformconfig.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.ScenarioFile, "scenario", cfg.ScenarioFile, "path to scenario lua file")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "deterministic seed for the mask selector's rng")
	fs.StringVar(&cfg.RunID, "run-id", cfg.RunID, "run identifier recorded in the trace")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall run timeout")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.ScenarioFile == "" {
		return Config{}, errors.New("scenario path is required")
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}
	return cfg, nil
}

// nullLongTerm satisfies memory.LongTerm with empty reads and no-op writes;
// scenario runs are throwaway replays, never persisted across runs.
type nullLongTerm struct{}

func (nullLongTerm) PlayerSummary(ctx context.Context, playerID string) (memory.PlayerSummary, error) {
	return memory.PlayerSummary{PlayerID: playerID}, nil
}
func (nullLongTerm) RecentRuns(ctx context.Context, playerID string, k int) ([]memory.RunSummary, error) {
	return nil, nil
}
func (nullLongTerm) MaskDebt(ctx context.Context) (map[string]float64, error) { return nil, nil }
func (nullLongTerm) SaveMaskDebt(ctx context.Context, debt map[string]float64) error {
	return nil
}

// Run loads the scenario at cfg.ScenarioFile, drives it through a pipeline
// wired against the synthetic world (EchoBridge in place of a live game
// connection), and writes the resulting trace as JSON to out.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	scene, err := scenario.LoadScenarioFromFile(cfg.ScenarioFile)
	if err != nil {
		return err
	}

	registry := tool.NewRegistry()
	executor := tool.NewExecutor(registry, scenario.EchoBridge{})
	selector := mask.NewSelector(mask.Descriptors(), cfg.MaskStability, cfg.MaskStabilityDecay, cfg.MinStability, cfg.MaskDebtWeight, rand.New(rand.NewSource(cfg.Seed)))
	provider := model.NewOpenAIAdapter(model.OpenAIConfig{
		ResponsesURL: cfg.OpenAIResponsesURL,
		APIKey:       cfg.OpenAICredential,
		Model:        cfg.OpenAIModel,
	})

	p := pipeline.New(registry, executor, selector, provider, nullLongTerm{}, mask.VariantObserver, cfg.MaskStability)
	p.MobKillPriority = event.ParsePriority(cfg.MobKillPriority)
	p.HealthFloor = cfg.HealthFloor
	p.MaxMobsPerRun = cfg.MaxMobsPerRun
	p.MaxTNTPerRun = cfg.MaxTNTPerRun
	p.ContextTokens = cfg.ContextTokens
	p.ChatBufferSize = cfg.ChatBuffer
	p.ModelTimeout = cfg.ModelTimeout
	p.ChatTimeout = cfg.ChatTimeout
	p.NodeDeadline = cfg.NodeDeadline

	var thresholds [4]float64
	copy(thresholds[:], cfg.PhaseThresholds)

	runCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	runner := scenario.NewRunner(p, thresholds)
	trace, err := runner.Run(runCtx, scene, cfg.RunID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(trace)
}
