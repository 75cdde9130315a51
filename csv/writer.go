// Package csv writes extracted catalog records as CSV.
package csv

import (
	"context"
	"encoding/csv"
	"io"

	"menulens"
)

// Ensure Writer implements menulens.RecordWriter at compile time.
var _ menulens.RecordWriter = (*Writer)(nil)

// Writer writes records to an io.Writer in CSV form. The header row is
// written once, before the first record batch.
type Writer struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewWriter creates a new Writer targeting w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

// WriteRecords appends records to the output, preserving their order.
func (w *Writer) WriteRecords(ctx context.Context, records []menulens.Record) error {
	if !w.wroteHeader {
		if err := w.w.Write(menulens.RecordColumns); err != nil {
			return err
		}
		w.wroteHeader = true
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.w.Write(rec.Fields()); err != nil {
			return err
		}
	}

	w.w.Flush()
	return w.w.Error()
}
