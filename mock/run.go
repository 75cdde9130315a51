package mock

import (
	"context"

	"menulens"
)

var _ menulens.RunService = (*RunService)(nil)

// RunService is a mock implementation of menulens.RunService.
type RunService struct {
	CreateRunFn        func(ctx context.Context, run *menulens.Run, records []menulens.Record) error
	FindRunByIDFn      func(ctx context.Context, id string) (*menulens.Run, error)
	FindRunsFn         func(ctx context.Context, filter menulens.RunFilter) ([]*menulens.Run, error)
	FindRecordsByRunFn func(ctx context.Context, runID string) ([]menulens.Record, error)
	DeleteRunFn        func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, run *menulens.Run, records []menulens.Record) error {
	return s.CreateRunFn(ctx, run, records)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*menulens.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter menulens.RunFilter) ([]*menulens.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) FindRecordsByRun(ctx context.Context, runID string) ([]menulens.Record, error) {
	return s.FindRecordsByRunFn(ctx, runID)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}
