// Package mask implements the director's persona registry and selection
// policy: a value-typed descriptor set plus a softmax selector, deliberately
// avoiding a class hierarchy per variant.
package mask

import "github.com/eris/director/internal/director/event"

// Variant identifies one of the director's fixed persona masks.
type Variant string

const (
	VariantTrickster    Variant = "TRICKSTER"
	VariantProphet      Variant = "PROPHET"
	VariantFriend       Variant = "FRIEND"
	VariantChaosBringer Variant = "CHAOS_BRINGER"
	VariantObserver     Variant = "OBSERVER"
	VariantGambler      Variant = "GAMBLER"
)

// Descriptor is the value-typed registration of one mask variant: its
// system-prompt fragment and its affinity weights against event kinds.
// Affinity is read, never mutated, after Descriptors returns it.
type Descriptor struct {
	Variant        Variant
	SystemPrompt   string
	EventAffinity  map[event.Kind]float64
	DefaultAffinity float64
}

// Affinity returns the descriptor's weight for kind, falling back to
// DefaultAffinity when the kind has no explicit entry.
func (d Descriptor) Affinity(kind event.Kind) float64 {
	if w, ok := d.EventAffinity[kind]; ok {
		return w
	}
	return d.DefaultAffinity
}

// Descriptors returns the authoritative list of mask registrations. Adding a
// new mask is a single append here, mirroring how the director's ambient
// stack registers plugin-style component lists elsewhere.
func Descriptors() []Descriptor {
	return []Descriptor{
		{
			Variant:      VariantTrickster,
			SystemPrompt: "You are Eris wearing the Trickster mask: playful, mischievous, fond of reversals and practical jokes that never truly endanger the party.",
			EventAffinity: map[event.Kind]float64{
				event.KindChat:        1.2,
				event.KindInventory:   1.0,
				event.KindAdvancement: 0.6,
			},
			DefaultAffinity: 0.5,
		},
		{
			Variant:      VariantProphet,
			SystemPrompt: "You are Eris wearing the Prophet mask: cryptic, portentous, speaking in omens about the dragon and the end that is coming.",
			EventAffinity: map[event.Kind]float64{
				event.KindDimension:  1.1,
				event.KindDragonKill: 1.3,
				event.KindStructure:  0.9,
			},
			DefaultAffinity: 0.5,
		},
		{
			Variant:      VariantFriend,
			SystemPrompt: "You are Eris wearing the Friend mask: warm, encouraging, protective of the party's morale in the face of loss.",
			EventAffinity: map[event.Kind]float64{
				event.KindDeath:  1.1,
				event.KindHealth: 1.0,
				event.KindChat:   0.8,
			},
			DefaultAffinity: 0.6,
		},
		{
			Variant:      VariantChaosBringer,
			SystemPrompt: "You are Eris wearing the Chaos Bringer mask: gleeful, destructive, escalating tension wherever it finds purchase.",
			EventAffinity: map[event.Kind]float64{
				event.KindDamage:  1.2,
				event.KindMobKill: 1.0,
				event.KindDeath:   0.9,
			},
			DefaultAffinity: 0.4,
		},
		{
			Variant:      VariantObserver,
			SystemPrompt: "You are Eris wearing the Observer mask: distant, analytical, narrating events without personal stake.",
			EventAffinity: map[event.Kind]float64{
				event.KindMobKill:   1.1,
				event.KindInventory: 0.9,
			},
			DefaultAffinity: 0.7,
		},
		{
			Variant:      VariantGambler,
			SystemPrompt: "You are Eris wearing the Gambler mask: wagering on the party's fate, reveling in close calls and upset odds.",
			EventAffinity: map[event.Kind]float64{
				event.KindDamage: 1.1,
				event.KindHealth: 1.0,
			},
			DefaultAffinity: 0.5,
		},
	}
}
