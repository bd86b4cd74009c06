// Package pipeline orchestrates one event through the director's linear
// decision pipeline: classify, optionally fast-path on chat, check
// fracture, enrich, select a mask, decide, act, validate, and execute. The
// pipeline is a linear state machine — the only deliberate branch is the
// FAST_RESPONSE path, and it still terminates at EXECUTE.
package pipeline

// Stage names the pipeline's nodes. Process runs the nodes as a fixed
// sequence of method calls (fracture check before enrich) and does not
// read, record or route on Stage values.
type Stage string

const (
	StageClassify      Stage = "CLASSIFY"
	StageFastResponse  Stage = "FAST_RESPONSE"
	StageEnrich        Stage = "ENRICH"
	StageFractureCheck Stage = "FRACTURE_CHECK"
	StageMaskSelect    Stage = "MASK_SELECT"
	StageDecide        Stage = "DECIDE"
	StageSilent        Stage = "SILENT"
	StageAction        Stage = "ACTION"
	StageProtect       Stage = "PROTECT"
	StageExecute       Stage = "EXECUTE"
	StageDone          Stage = "DONE"
)
