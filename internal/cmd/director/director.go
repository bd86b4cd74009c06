// Package director parses the director service's flags/env and runs its
// event loop until shutdown.
package director

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/eris/director/internal/director/bridge"
	directorconfig "github.com/eris/director/internal/director/config"
	"github.com/eris/director/internal/director/event"
	"github.com/eris/director/internal/director/mask"
	"github.com/eris/director/internal/director/memory"
	"github.com/eris/director/internal/director/model"
	"github.com/eris/director/internal/director/pipeline"
	"github.com/eris/director/internal/director/tool"
	platformconfig "github.com/eris/director/internal/platform/config"
	"github.com/eris/director/internal/synthetic/world"
)

// Config wraps directorconfig.Config with the process-lifecycle flags the
// teacher's service commands declare alongside their domain config.
type Config struct {
	directorconfig.Config
	Verbose bool `env:"ERIS_DIRECTOR_VERBOSE"`

	GameCommandURL string `env:"ERIS_DIRECTOR_GAME_COMMAND_URL" envDefault:"http://localhost:9191/commands"`
	GameEventsURL  string `env:"ERIS_DIRECTOR_GAME_EVENTS_URL" envDefault:"http://localhost:9191/events"`

	// Roster is a comma-separated player_id:role list seeding the synthetic
	// world at startup; the live game has no roster-discovery call yet.
	Roster string `env:"ERIS_DIRECTOR_ROSTER"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformconfig.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.StringVar(&cfg.GameCommandURL, "game-command-url", cfg.GameCommandURL, "game server command endpoint")
	fs.StringVar(&cfg.GameEventsURL, "game-events-url", cfg.GameEventsURL, "game server event stream endpoint")
	fs.StringVar(&cfg.Roster, "roster", cfg.Roster, "comma-separated player_id:role list")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Config.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseRoster parses a comma-separated player_id:role list into a Roster.
// An entry without a ":role" suffix defaults to role "unknown".
func ParseRoster(spec string) Roster {
	var roster Roster
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, role, found := strings.Cut(entry, ":")
		if !found {
			role = "unknown"
		}
		roster = append(roster, world.PlayerInit{ID: id, Role: role})
	}
	return roster
}

// Roster supplies the player identities seeding the synthetic world's
// initial state; the live game has no equivalent bootstrap call yet, so
// the director command takes the roster as a parameter rather than
// inventing a discovery protocol.
type Roster []world.PlayerInit

// Run wires the event processor, mask selector, model provider, tool
// registry, long-term store, and pipeline, then drains the bridge's
// inbound event stream until ctx is canceled.
func Run(ctx context.Context, cfg Config, gameBridge bridge.GameBridge, roster Roster) error {
	if gameBridge == nil {
		return errors.New("game bridge is required")
	}

	store, err := memory.OpenSQLiteStore(cfg.LongTermDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	registry := tool.NewRegistry()
	executor := tool.NewExecutor(registry, gameBridge)
	selector := mask.NewSelector(mask.Descriptors(), cfg.MaskStability, cfg.MaskStabilityDecay, cfg.MinStability, cfg.MaskDebtWeight, rand.New(rand.NewSource(time.Now().UnixNano())))
	provider := model.NewOpenAIAdapter(model.OpenAIConfig{
		ResponsesURL: cfg.OpenAIResponsesURL,
		APIKey:       cfg.OpenAICredential,
		Model:        cfg.OpenAIModel,
	})

	p := pipeline.New(registry, executor, selector, provider, store, mask.VariantObserver, cfg.MaskStability)
	p.MobKillPriority = event.ParsePriority(cfg.MobKillPriority)
	p.HealthFloor = cfg.HealthFloor
	p.MaxMobsPerRun = cfg.MaxMobsPerRun
	p.MaxTNTPerRun = cfg.MaxTNTPerRun
	p.ContextTokens = cfg.ContextTokens
	p.ChatBufferSize = cfg.ChatBuffer
	p.ModelTimeout = cfg.ModelTimeout
	p.ChatTimeout = cfg.ChatTimeout
	p.NodeDeadline = cfg.NodeDeadline

	if err := p.LoadMaskDebt(ctx); err != nil {
		log.Printf("load mask debt: %v", err)
	}
	defer func() {
		if err := p.PersistMaskDebt(context.Background()); err != nil {
			log.Printf("persist mask debt: %v", err)
		}
	}()

	var thresholds [4]float64
	copy(thresholds[:], cfg.PhaseThresholds)
	w := world.FromScenario(roster, thresholds)

	windows := event.DebounceWindows{State: cfg.DebounceState, Damage: cfg.DebounceDamage, Milestone: cfg.DebounceMilestone}
	var dropped int
	processor := event.NewProcessor(windows, cfg.QueueCap, cfg.ChatBuffer, func(evicted event.Event) {
		dropped++
		log.Printf("event queue overflow, evicted %s (total dropped=%d)", evicted.Kind, dropped)
	})

	inbound, err := gameBridge.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		for evt := range inbound {
			if !isKnownKind(evt.EventKind) {
				log.Printf("discarding unknown event kind %q", evt.EventKind)
				continue
			}
			kind := event.Kind(evt.EventKind)
			e := event.Event{
				Kind:        kind,
				Subject:     subjectOf(evt.Data),
				Payload:     evt.Data,
				ArrivalTime: evt.Received,
				Priority:    event.Classify(kind, evt.Data, p.MobKillPriority),
			}
			processor.Submit(e)
		}
	}()

	return drain(ctx, processor, p, w)
}

// drain pops the highest-priority eligible event on a short tick and runs
// it through the pipeline until ctx is canceled; Next returns ok=false when
// nothing is currently eligible, in which case the loop waits for the next
// tick rather than busy-spinning.
func drain(ctx context.Context, processor *event.Processor, p *pipeline.Pipeline, w world.State) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			evt, ok := processor.Next(now)
			if !ok {
				continue
			}
			next, _, err := p.Process(ctx, evt, w)
			if err != nil {
				log.Printf("process event: %v", err)
				continue
			}
			w = next
		}
	}
}

func isKnownKind(kind string) bool {
	switch event.Kind(kind) {
	case event.KindAdvancement, event.KindDamage, event.KindInventory, event.KindDimension,
		event.KindChat, event.KindDeath, event.KindDragonKill, event.KindMobKill,
		event.KindStructure, event.KindHealth:
		return true
	default:
		return false
	}
}

func subjectOf(data map[string]any) string {
	subject, _ := data["subject"].(string)
	return subject
}
