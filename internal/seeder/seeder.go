package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/rowseed/internal/database"
	"github.com/Lumos-Labs-HQ/rowseed/internal/types"
	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Seeder owns a connected adapter for the length of one run and closes it
// in Close.
type Seeder struct {
	adapter    database.DatabaseAdapter
	generator  *DataGenerator
	seedConfig SeedConfig
}

func New(adapter database.DatabaseAdapter, seedConfig SeedConfig) (*Seeder, error) {
	generator, err := NewDataGenerator(seedConfig.Generator, seedConfig.Strict)
	if err != nil {
		return nil, fmt.Errorf("failed to create data generator: %w", err)
	}
	if seedConfig.Rows < 0 {
		return nil, fmt.Errorf("row count cannot be negative: %d", seedConfig.Rows)
	}

	return &Seeder{
		adapter:    adapter,
		generator:  generator,
		seedConfig: seedConfig,
	}, nil
}

func (s *Seeder) Close() error {
	return s.adapter.Close()
}

// checkTypeTags returns the columns that will be written as NULL, or an
// error in strict mode.
func (s *Seeder) checkTypeTags() ([]string, error) {
	var unknown []string
	for _, col := range s.seedConfig.Table.Columns {
		if col.Type.Known() {
			continue
		}
		if s.seedConfig.Strict {
			return nil, fmt.Errorf("column %s: %w: %q", col.Name, ErrUnknownTypeTag, string(col.Type))
		}
		unknown = append(unknown, col.Name)
	}
	return unknown, nil
}

// EnsureTable creates the table, and its declared indexes, when absent.
func (s *Seeder) EnsureTable(ctx context.Context) error {
	if _, err := s.checkTypeTags(); err != nil {
		return err
	}
	return s.ensureTable(ctx, s.seedConfig.Table)
}

func (s *Seeder) ensureTable(ctx context.Context, table types.SchemaTable) error {
	for _, index := range table.Indexes {
		for _, col := range index.Columns {
			if !table.HasColumn(col) {
				return fmt.Errorf("index column %s is not part of table %s", col, table.Name)
			}
		}
	}

	if err := s.adapter.CreateTable(ctx, table); err != nil {
		return err
	}

	for _, index := range table.Indexes {
		index.Table = table.Name
		if err := s.adapter.CreateIndex(ctx, index); err != nil {
			return err
		}
	}
	return nil
}

// Seed ensures the table, appends Rows generated rows in a single
// transaction and commits once. Nothing from the run persists on error.
func (s *Seeder) Seed(ctx context.Context) (*Result, error) {
	start := time.Now()
	table := s.seedConfig.Table

	nullColumns, err := s.checkTypeTags()
	if err != nil {
		return nil, err
	}
	for _, col := range nullColumns {
		s.warn("⚠️  Column %s has no generator for its type; writing NULL", col)
	}

	if err := s.EnsureTable(ctx); err != nil {
		return nil, err
	}
	s.info("📋 Table %s ready", table.Name)

	if s.seedConfig.RecordRuns {
		if err := s.ensureRunsTable(ctx); err != nil {
			return nil, err
		}
	}

	before, err := s.adapter.GetTableRowCount(ctx, table.Name)
	if err != nil {
		return nil, err
	}

	run := types.SeedRun{
		ID:        uuid.NewString(),
		TableName: table.Name,
		Profile:   s.seedConfig.Profile,
		StartedAt: start.UTC(),
	}

	inserted, err := s.insertRows(ctx, &run)
	if err != nil {
		return nil, err
	}

	after, err := s.adapter.GetTableRowCount(ctx, table.Name)
	if err != nil {
		return nil, err
	}

	return &Result{
		RunID:        run.ID,
		Table:        table.Name,
		RowsInserted: inserted,
		RowsBefore:   before,
		RowsAfter:    after,
		NullColumns:  nullColumns,
		Duration:     time.Since(start),
	}, nil
}

func (s *Seeder) insertRows(ctx context.Context, run *types.SeedRun) (int, error) {
	table := s.seedConfig.Table
	count := s.seedConfig.Rows

	query, err := s.insertSQL(table)
	if err != nil {
		return 0, err
	}

	tx, err := s.adapter.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	s.info("📝 Seeding %s (%d records)...", table.Name, count)

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("seeding interrupted after %d rows: %w", i, err)
		}

		row, err := s.generator.Row(table.Columns)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, fmt.Errorf("failed to insert row %d: %w", i+1, err)
		}

		if every := s.seedConfig.ProgressEvery; every > 0 && (i+1)%every == 0 {
			s.info("  … %d/%d rows", i+1, count)
		}
	}

	if s.seedConfig.RecordRuns {
		run.RowsInserted = count
		run.FinishedAt = time.Now().UTC()
		if err := s.recordRun(ctx, tx, *run); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true

	return count, nil
}

// insertSQL builds the parameterized insert with one placeholder per column,
// in schema order.
func (s *Seeder) insertSQL(table types.SchemaTable) (string, error) {
	columns := make([]string, len(table.Columns))
	placeholders := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		columns[i] = s.adapter.QuoteIdentifier(col.Name)
	}

	query, _, err := s.adapter.Builder().
		Insert(s.adapter.QuoteIdentifier(table.Name)).
		Columns(columns...).
		Values(placeholders...).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build insert statement: %w", err)
	}
	return query, nil
}

func (s *Seeder) info(format string, args ...interface{}) {
	if !s.seedConfig.Quiet {
		color.Cyan(format, args...)
	}
}

func (s *Seeder) warn(format string, args ...interface{}) {
	if !s.seedConfig.Quiet {
		color.Yellow(format, args...)
	}
}
