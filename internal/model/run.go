package model

import "time"

// RunKind distinguishes the two pipeline kinds recorded in run history.
type RunKind string

const (
	RunKindDiscover RunKind = "discover"
	RunKindEnrich   RunKind = "enrich"
)

// RunStatus represents the state of a pipeline run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusComplete  RunStatus = "complete"
	RunStatusCancelled RunStatus = "cancelled"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one recorded discovery or enrichment run.
type Run struct {
	ID        string      `json:"id"`
	Kind      RunKind     `json:"kind"`
	Params    string      `json:"params,omitempty"` // human-readable run parameters
	Status    RunStatus   `json:"status"`
	Summary   *RunSummary `json:"summary,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// RunSummary holds the final counters of a run.
type RunSummary struct {
	Total      int `json:"total"`                // input records or combinations
	Completed  int `json:"completed"`            // tasks/combinations finished
	Discovered int `json:"discovered,omitempty"` // post-dedup candidates (discovery)
	Kept       int `json:"kept,omitempty"`
	Primary    int `json:"primary,omitempty"`
	Fallback   int `json:"fallback,omitempty"`
}
