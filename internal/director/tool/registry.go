package tool

import "github.com/modelcontextprotocol/go-sdk/mcp"

// Category partitions the catalogue per §4.9: state-changing tools mutate
// the synthetic world's numeric truth, protective tools exist to undo
// harm, cosmetic tools have no mechanical effect on player state.
type Category string

const (
	CategoryStateChanging Category = "state_changing"
	CategoryProtective    Category = "protective"
	CategoryCosmetic      Category = "cosmetic"
)

// Descriptor is the full registration for one tool: its MCP-shaped
// identity (name/description, as the teacher's tool constructors declare
// them), its argument schema, its fracture/aura cost, its category, and
// whether the chat fast path may invoke it.
type Descriptor struct {
	Tool            *mcp.Tool
	Schema          Schema
	Category        Category
	FractureCost    float64
	AuraCost        int
	AllowedInChat   bool
}

// Name is a convenience accessor over the embedded mcp.Tool.
func (d Descriptor) Name() string { return d.Tool.Name }

// Registry is the declared tool catalogue. Construction is a single slice
// literal, mirroring the teacher's CoreDomains()-style descriptor list
// rather than a builder or class hierarchy.
type Registry struct {
	byName map[string]Descriptor
	all    []Descriptor
}

// NewRegistry builds a Registry from the authoritative Descriptors list.
func NewRegistry() *Registry {
	descriptors := Descriptors()
	byName := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		byName[d.Name()] = d
	}
	return &Registry{byName: byName, all: descriptors}
}

// Lookup returns the descriptor for name, if the registry declares it.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// All returns every declared descriptor.
func (r *Registry) All() []Descriptor { return r.all }

// AllowedInChat returns descriptors reachable from the chat fast path:
// per §4.6, only broadcast and message_player.
func (r *Registry) AllowedInChat() []Descriptor {
	var out []Descriptor
	for _, d := range r.all {
		if d.AllowedInChat {
			out = append(out, d)
		}
	}
	return out
}

func tool(name, description string) *mcp.Tool {
	return &mcp.Tool{Name: name, Description: description}
}

func field(name string, t FieldType, required bool) Field {
	return Field{Name: name, Type: t, Required: required}
}

// Descriptors returns the authoritative catalogue named in §4.9.
func Descriptors() []Descriptor {
	return []Descriptor{
		{
			Tool:         tool("spawn_mob", "Spawns a hostile mob near a player"),
			Schema:       Schema{Fields: []Field{field("mob_type", FieldString, true), field("target_player", FieldString, true), field("count", FieldNumber, false)}},
			Category:     CategoryStateChanging,
			FractureCost: 3,
		},
		{
			Tool:         tool("give_item", "Places an item in a player's inventory"),
			Schema:       Schema{Fields: []Field{field("target_player", FieldString, true), field("item", FieldString, true), field("count", FieldNumber, false)}},
			Category:     CategoryStateChanging,
			FractureCost: 0,
		},
		{
			Tool:         tool("damage_player", "Deals direct damage to a player"),
			Schema:       Schema{Fields: []Field{field("target_player", FieldString, true), field("amount", FieldNumber, true)}},
			Category:     CategoryStateChanging,
			FractureCost: 4,
		},
		{
			Tool:         tool("heal_player", "Restores health to a player"),
			Schema:       Schema{Fields: []Field{field("target_player", FieldString, true), field("amount", FieldNumber, true)}},
			Category:     CategoryStateChanging,
			FractureCost: -2,
		},
		{
			Tool:         tool("teleport_player", "Teleports a player to named or relative coordinates"),
			Schema:       Schema{Fields: []Field{field("target_player", FieldString, true), field("destination", FieldString, true)}},
			Category:     CategoryStateChanging,
			FractureCost: 1,
		},
		{
			Tool:         tool("apply_effect", "Applies a status effect to a player"),
			Schema:       Schema{Fields: []Field{field("target_player", FieldString, true), field("effect", FieldString, true), field("duration_seconds", FieldNumber, false)}},
			Category:     CategoryStateChanging,
			FractureCost: 2,
		},
		{
			Tool:         tool("modify_aura", "Adjusts a player's director-local aura counter"),
			Schema:       Schema{Fields: []Field{field("target_player", FieldString, true), field("delta", FieldNumber, true)}},
			Category:     CategoryStateChanging,
			AuraCost:     1,
		},
		{
			Tool:         tool("change_weather", "Changes the world's current weather"),
			Schema:       Schema{Fields: []Field{field("weather", FieldString, true)}},
			Category:     CategoryStateChanging,
			FractureCost: 1,
		},
		{
			Tool:         tool("spawn_tnt", "Spawns primed TNT near a player"),
			Schema:       Schema{Fields: []Field{field("target_player", FieldString, true)}},
			Category:     CategoryStateChanging,
			FractureCost: 6,
		},
		{
			Tool:         tool("spawn_falling_block", "Drops a falling block hazard near a player"),
			Schema:       Schema{Fields: []Field{field("target_player", FieldString, true), field("block_type", FieldString, true)}},
			Category:     CategoryStateChanging,
			FractureCost: 3,
		},
		{
			Tool:         tool("protect_player", "Grants a player temporary damage immunity"),
			Schema:       Schema{Fields: []Field{field("target_player", FieldString, true), field("duration_seconds", FieldNumber, false)}},
			Category:     CategoryProtective,
			FractureCost: -1,
		},
		{
			Tool:         tool("rescue_teleport", "Teleports a player out of immediate danger"),
			Schema:       Schema{Fields: []Field{field("target_player", FieldString, true)}},
			Category:     CategoryProtective,
			FractureCost: -1,
		},
		{
			Tool:         tool("respawn_override", "Overrides a dead player's respawn point"),
			Schema:       Schema{Fields: []Field{field("target_player", FieldString, true), field("destination", FieldString, true)}},
			Category:     CategoryProtective,
			FractureCost: 0,
		},
		{
			Tool:          tool("broadcast", "Sends a server-wide chat message as Eris"),
			Schema:        Schema{Fields: []Field{field("message", FieldString, true)}},
			Category:      CategoryCosmetic,
			AllowedInChat: true,
		},
		{
			Tool:          tool("message_player", "Sends a private chat message as Eris to one player"),
			Schema:        Schema{Fields: []Field{field("target_player", FieldString, true), field("message", FieldString, true)}},
			Category:      CategoryCosmetic,
			AllowedInChat: true,
		},
		{
			Tool:     tool("strike_lightning", "Strikes lightning near a player, cosmetic only"),
			Schema:   Schema{Fields: []Field{field("target_player", FieldString, true)}},
			Category: CategoryCosmetic,
		},
		{
			Tool:     tool("launch_firework", "Launches a firework near a player"),
			Schema:   Schema{Fields: []Field{field("target_player", FieldString, true)}},
			Category: CategoryCosmetic,
		},
		{
			Tool:     tool("play_sound", "Plays a named sound effect to a player"),
			Schema:   Schema{Fields: []Field{field("target_player", FieldString, true), field("sound", FieldString, true)}},
			Category: CategoryCosmetic,
		},
		{
			Tool:     tool("show_title", "Displays a title/subtitle overlay to a player"),
			Schema:   Schema{Fields: []Field{field("target_player", FieldString, true), field("title", FieldString, true), field("subtitle", FieldString, false)}},
			Category: CategoryCosmetic,
		},
		{
			Tool:     tool("spawn_particles", "Spawns a cosmetic particle effect near a player"),
			Schema:   Schema{Fields: []Field{field("target_player", FieldString, true), field("effect", FieldString, true)}},
			Category: CategoryCosmetic,
		},
		{
			Tool:     tool("fake_death", "Plays the death animation/sound without affecting health"),
			Schema:   Schema{Fields: []Field{field("target_player", FieldString, true)}},
			Category: CategoryCosmetic,
		},
	}
}
