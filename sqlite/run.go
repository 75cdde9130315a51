package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"menulens"
)

// Compile-time interface verification.
var _ menulens.RunService = (*RunService)(nil)

// RunService implements menulens.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores a run together with its extracted records. The run and
// its records are written in one transaction.
func (s *RunService) CreateRun(ctx context.Context, run *menulens.Run, records []menulens.Record) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.RecordCount = len(records)
	run.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, store_url, snapshot_hash, record_count, image_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.StoreURL, run.SnapshotHash, run.RecordCount, run.ImageCount,
		run.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, rec := range records {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO records (run_id, position, category, name, description, price, image_url)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, run.ID, i, rec.Category, rec.Name, rec.Description, rec.Price, rec.ImageURL)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*menulens.Run, error) {
	var run menulens.Run
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, store_url, snapshot_hash, record_count, image_count, created_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.StoreURL, &run.SnapshotHash, &run.RecordCount, &run.ImageCount,
		&createdAt)

	if err == sql.ErrNoRows {
		return nil, menulens.Errorf(menulens.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter menulens.RunFilter) ([]*menulens.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, store_url, snapshot_hash, record_count, image_count, created_at FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.StoreURL != nil {
		query.WriteString(" AND store_url = ?")
		args = append(args, *filter.StoreURL)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*menulens.Run
	for rows.Next() {
		var run menulens.Run
		var createdAt string

		if err := rows.Scan(&run.ID, &run.StoreURL, &run.SnapshotHash, &run.RecordCount,
			&run.ImageCount, &createdAt); err != nil {
			return nil, err
		}

		run.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// FindRecordsByRun retrieves the stored records of a run in their original
// row order.
func (s *RunService) FindRecordsByRun(ctx context.Context, runID string) ([]menulens.Record, error) {
	// Distinguish a missing run from a run with zero records.
	if _, err := s.FindRunByID(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, name, description, price, image_url
		FROM records
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []menulens.Record
	for rows.Next() {
		var rec menulens.Record
		if err := rows.Scan(&rec.Category, &rec.Name, &rec.Description, &rec.Price, &rec.ImageURL); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// DeleteRun permanently removes a run and its records.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return menulens.Errorf(menulens.ENOTFOUND, "run not found")
	}

	return nil
}
