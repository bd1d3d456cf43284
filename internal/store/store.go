// Package store persists run history and discovered leads so that a later
// enrichment pass can pick up where discovery left off.
package store

import (
	"context"

	"github.com/Kathail/NorthScrape/internal/model"
)

// Store is the persistence interface for runs and leads.
type Store interface {
	Migrate(ctx context.Context) error
	Close() error

	CreateRun(ctx context.Context, kind model.RunKind, params string) (*model.Run, error)
	CompleteRun(ctx context.Context, runID string, status model.RunStatus, summary *model.RunSummary) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	InsertLeads(ctx context.Context, runID string, leads []model.LeadRecord) error
	LeadsByRun(ctx context.Context, runID string) ([]model.LeadRecord, error)
	LatestLeads(ctx context.Context, kind model.RunKind) ([]model.LeadRecord, error)
}
