package menulens

import (
	"context"
	"time"
)

// Run represents one completed extraction of a store page snapshot.
type Run struct {
	ID           string    `json:"id"`
	StoreURL     string    `json:"storeUrl"`
	SnapshotHash string    `json:"snapshotHash"`
	RecordCount  int       `json:"recordCount"`
	ImageCount   int       `json:"imageCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.SnapshotHash == "" {
		return Errorf(EINVALID, "run snapshot hash required")
	}
	if r.RecordCount < 0 {
		return Errorf(EINVALID, "run record count cannot be negative")
	}
	return nil
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID       *string `json:"id"`
	StoreURL *string `json:"storeUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RunService represents a service for persisting extraction runs.
type RunService interface {
	// CreateRun stores a run together with its extracted records.
	CreateRun(ctx context.Context, run *Run, records []Record) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FindRecordsByRun retrieves the stored records of a run in their
	// original row order.
	FindRecordsByRun(ctx context.Context, runID string) ([]Record, error)

	// DeleteRun permanently removes a run and its records.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}
