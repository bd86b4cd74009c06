package world

// FieldChange is one field-level before/after pair recorded on a Diff.
type FieldChange struct {
	Field string
	Old   any
	New   any
}

// Source distinguishes what produced a Diff.
type Source string

const (
	SourceEvent    Source = "event"
	SourceToolCall Source = "tool_call"
)

// Diff is an immutable record of one state transition, mirroring the
// spec's WorldDiff: source, source name, affected subject, field-level
// changes, and the three terminal flags. Once returned from an Apply
// function a Diff is never mutated.
type Diff struct {
	Source    Source
	Name      string
	Subject   string
	Changes   []FieldChange
	Succeeded bool
	Reason    string

	CausedDeath          bool
	CausedVictory        bool
	TriggeredPhaseChange bool
}

func newDiff(source Source, name, subject string) Diff {
	return Diff{Source: source, Name: name, Subject: subject, Succeeded: true}
}

func (d *Diff) record(field string, old, new any) {
	d.Changes = append(d.Changes, FieldChange{Field: field, Old: old, New: new})
}
