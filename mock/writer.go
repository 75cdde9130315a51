package mock

import (
	"context"

	"menulens"
)

var _ menulens.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of menulens.RecordWriter.
type RecordWriter struct {
	WriteRecordsFn func(ctx context.Context, records []menulens.Record) error
}

func (w *RecordWriter) WriteRecords(ctx context.Context, records []menulens.Record) error {
	return w.WriteRecordsFn(ctx, records)
}
