// Package engine runs the enrichment and discovery pipelines and streams
// typed progress events to a single consumer.
package engine

import (
	"sync/atomic"

	"github.com/Kathail/NorthScrape/internal/model"
)

// EventKind tags a progress event.
type EventKind string

const (
	// EventStatus carries a human-readable status line.
	EventStatus EventKind = "status"
	// EventProgress carries a completion percentage (0-100).
	EventProgress EventKind = "progress"
	// EventResult carries one partial result; never batched.
	EventResult EventKind = "result"
	// EventCompleted is the final event of a run.
	EventCompleted EventKind = "completed"
)

// TaskResult is one emitted record with its original input index, so the
// consumer can reconcile out-of-order completions.
type TaskResult struct {
	Index int
	Lead  model.LeadRecord
}

// Event is the tagged union flowing over the progress queue. Only the fields
// relevant to Kind are set.
type Event struct {
	Kind    EventKind
	Message string
	Percent float64
	Result  *TaskResult
	Summary *model.RunSummary
}

// State tracks an engine's lifecycle. Once terminal, an engine never returns
// to Running.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

type stateMachine struct {
	v atomic.Int32
}

func (m *stateMachine) start() bool {
	return m.v.CompareAndSwap(int32(StateIdle), int32(StateRunning))
}

func (m *stateMachine) finish(cancelled bool) {
	if cancelled {
		m.v.Store(int32(StateCancelled))
		return
	}
	m.v.Store(int32(StateCompleted))
}

func (m *stateMachine) state() State {
	return State(m.v.Load())
}
