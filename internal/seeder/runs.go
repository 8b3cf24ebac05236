package seeder

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/rowseed/internal/database"
	"github.com/Lumos-Labs-HQ/rowseed/internal/types"
)

const RunsTable = "_rowseed_runs"

// Fixed-width so timestamps sort correctly as text.
const runTimeLayout = "2006-01-02T15:04:05.000000Z07:00"

var runsTable = types.SchemaTable{
	Name: RunsTable,
	Columns: []types.SchemaColumn{
		{Name: "id", Type: types.TypeText},
		{Name: "table_name", Type: types.TypeText},
		{Name: "profile", Type: types.TypeText},
		{Name: "rows_inserted", Type: types.TypeInteger},
		{Name: "started_at", Type: types.TypeText},
		{Name: "finished_at", Type: types.TypeText},
	},
	Indexes: []types.SchemaIndex{
		{Name: types.IndexName(RunsTable, "id"), Columns: []string{"id"}, Unique: true},
	},
}

func (s *Seeder) ensureRunsTable(ctx context.Context) error {
	if err := s.ensureTable(ctx, runsTable); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	return nil
}

func (s *Seeder) recordRun(ctx context.Context, tx *sql.Tx, run types.SeedRun) error {
	q := s.adapter.QuoteIdentifier
	query, args, err := s.adapter.Builder().
		Insert(q(RunsTable)).
		Columns(q("id"), q("table_name"), q("profile"), q("rows_inserted"), q("started_at"), q("finished_at")).
		Values(run.ID, run.TableName, run.Profile, run.RowsInserted,
			run.StartedAt.Format(runTimeLayout), run.FinishedAt.Format(runTimeLayout)).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record seed run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first. A database that never
// recorded a run yields an empty list.
func ListRuns(ctx context.Context, adapter database.DatabaseAdapter, limit int) ([]types.SeedRun, error) {
	exists, err := adapter.CheckTableExists(ctx, RunsTable)
	if err != nil {
		return nil, fmt.Errorf("failed to check runs table: %w", err)
	}
	if !exists {
		return nil, nil
	}

	q := adapter.QuoteIdentifier
	builder := adapter.Builder().
		Select(q("id"), q("table_name"), q("profile"), q("rows_inserted"), q("started_at"), q("finished_at")).
		From(q(RunsTable)).
		OrderBy(q("started_at") + " DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := adapter.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []types.SeedRun
	for rows.Next() {
		var run types.SeedRun
		var startedAt, finishedAt string
		if err := rows.Scan(&run.ID, &run.TableName, &run.Profile, &run.RowsInserted, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(runTimeLayout, startedAt)
		run.FinishedAt, _ = time.Parse(runTimeLayout, finishedAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
