package seeder

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/Lumos-Labs-HQ/rowseed/internal/config"
	"github.com/Lumos-Labs-HQ/rowseed/internal/database"
	"github.com/Lumos-Labs-HQ/rowseed/internal/database/sqlite"
	"github.com/Lumos-Labs-HQ/rowseed/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var namePattern = regexp.MustCompile(`^[A-Z0-9]{5}$`)

func testSeedConfig(rows int) SeedConfig {
	return SeedConfig{
		Table: types.SchemaTable{
			Name:    "RandomData",
			Columns: types.DefaultSchema(),
			Indexes: []types.SchemaIndex{
				{Name: types.IndexName("RandomData", "name"), Columns: []string{"name"}},
			},
		},
		Rows:    rows,
		Profile: "default",
		Quiet:   true,
		Generator: GeneratorOptions{
			IntMin:     10,
			IntMax:     100,
			TextLength: 5,
			Alphabet:   config.DefaultAlphabet,
			Seed:       42,
		},
	}
}

func openSQLite(t *testing.T, path string) database.DatabaseAdapter {
	t.Helper()
	adapter := sqlite.New()
	require.NoError(t, adapter.Connect(context.Background(), path))
	return adapter
}

func runSeed(t *testing.T, path string, cfg SeedConfig) *Result {
	t.Helper()
	s, err := New(openSQLite(t, path), cfg)
	require.NoError(t, err)
	defer s.Close()

	result, err := s.Seed(context.Background())
	require.NoError(t, err)
	return result
}

func toInt(t *testing.T, v interface{}) int {
	t.Helper()
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	default:
		t.Fatalf("expected integer value, got %T (%v)", v, v)
		return 0
	}
}

func TestSeedEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.db")

	result := runSeed(t, path, testSeedConfig(10))
	assert.Equal(t, 10, result.RowsInserted)
	assert.Equal(t, 0, result.RowsBefore)
	assert.Equal(t, 10, result.RowsAfter)
	assert.NotEmpty(t, result.RunID)

	adapter := openSQLite(t, path)
	defer adapter.Close()

	data, err := adapter.GetTableData(context.Background(), "RandomData", 0)
	require.NoError(t, err)
	require.Len(t, data.Rows, 10)
	assert.Equal(t, []string{"id", "name", "age"}, data.Columns)

	for _, row := range data.Rows {
		id := toInt(t, row["id"])
		age := toInt(t, row["age"])
		assert.True(t, id >= 10 && id <= 100, "id %d out of range", id)
		assert.True(t, age >= 10 && age <= 100, "age %d out of range", age)

		name, ok := row["name"].(string)
		require.True(t, ok, "name is %T", row["name"])
		assert.Regexp(t, namePattern, name)
	}
}

func TestSeedTwiceAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.db")

	first := testSeedConfig(5)
	runSeed(t, path, first)

	second := testSeedConfig(5)
	second.Generator.Seed = 43
	result := runSeed(t, path, second)

	assert.Equal(t, 5, result.RowsBefore)
	assert.Equal(t, 10, result.RowsAfter)

	adapter := openSQLite(t, path)
	defer adapter.Close()

	columns, err := adapter.GetTableColumns(context.Background(), "RandomData")
	require.NoError(t, err)
	require.Len(t, columns, 3)
	assert.Equal(t, "id", columns[0].Name)
	assert.Equal(t, "INTEGER", columns[0].Type)
	assert.Equal(t, "name", columns[1].Name)
	assert.Equal(t, "TEXT", columns[1].Type)
	assert.Equal(t, "age", columns[2].Name)
	assert.Equal(t, "INTEGER", columns[2].Type)
}

func TestSeedZeroRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.db")

	result := runSeed(t, path, testSeedConfig(0))
	assert.Equal(t, 0, result.RowsInserted)
	assert.Equal(t, 0, result.RowsAfter)

	adapter := openSQLite(t, path)
	defer adapter.Close()

	exists, err := adapter.CheckTableExists(context.Background(), "RandomData")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestEnsureTableIdempotent(t *testing.T) {
	ctx := context.Background()
	adapter := openSQLite(t, filepath.Join(t.TempDir(), "sample.db"))
	s, err := New(adapter, testSeedConfig(0))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.EnsureTable(ctx))
	before, err := adapter.GetTableColumns(ctx, "RandomData")
	require.NoError(t, err)

	require.NoError(t, s.EnsureTable(ctx))
	after, err := adapter.GetTableColumns(ctx, "RandomData")
	require.NoError(t, err)

	assert.Equal(t, before, after)
}

func indexExists(t *testing.T, adapter database.DatabaseAdapter, name string) bool {
	t.Helper()
	rows, err := adapter.Query(context.Background(),
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = ?", name)
	require.NoError(t, err)
	defer rows.Close()

	var count int
	require.True(t, rows.Next())
	require.NoError(t, rows.Scan(&count))
	return count > 0
}

func TestIndexFollowsConfig(t *testing.T) {
	withIndex := filepath.Join(t.TempDir(), "indexed.db")
	runSeed(t, withIndex, testSeedConfig(3))

	adapter := openSQLite(t, withIndex)
	assert.True(t, indexExists(t, adapter, "idx_RandomData_name"))
	adapter.Close()

	withoutIndex := filepath.Join(t.TempDir(), "bulk.db")
	cfg := testSeedConfig(3)
	cfg.Table.Indexes = nil
	runSeed(t, withoutIndex, cfg)

	adapter = openSQLite(t, withoutIndex)
	assert.False(t, indexExists(t, adapter, "idx_RandomData_name"))
	adapter.Close()
}

func TestIndexOnMissingColumn(t *testing.T) {
	cfg := testSeedConfig(1)
	cfg.Table.Indexes = []types.SchemaIndex{{Name: "idx_RandomData_email", Columns: []string{"email"}}}

	s, err := New(openSQLite(t, filepath.Join(t.TempDir(), "sample.db")), cfg)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Seed(context.Background())
	assert.Error(t, err)

	exists, err := s.adapter.CheckTableExists(context.Background(), "RandomData")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStrictModeRejectsUnknownType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.db")
	cfg := testSeedConfig(5)
	cfg.Strict = true
	cfg.Table.Columns = append(cfg.Table.Columns, types.SchemaColumn{Name: "payload", Type: "BLOB"})

	s, err := New(openSQLite(t, path), cfg)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Seed(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTypeTag))

	exists, err := s.adapter.CheckTableExists(context.Background(), "RandomData")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPermissiveModeWritesNull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.db")
	cfg := testSeedConfig(4)
	cfg.Table.Columns = append(cfg.Table.Columns, types.SchemaColumn{Name: "payload", Type: "BLOB"})

	result := runSeed(t, path, cfg)
	assert.Equal(t, []string{"payload"}, result.NullColumns)

	adapter := openSQLite(t, path)
	defer adapter.Close()

	data, err := adapter.GetTableData(context.Background(), "RandomData", 0)
	require.NoError(t, err)
	require.Len(t, data.Rows, 4)
	for _, row := range data.Rows {
		assert.Nil(t, row["payload"])
	}
}

func TestFailedInsertRollsBackEverything(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sample.db")

	adapter := openSQLite(t, path)
	_, err := adapter.Exec(ctx, `CREATE TABLE "RandomData" ("id" INTEGER CHECK ("id" < 50), "name" TEXT, "age" INTEGER)`)
	require.NoError(t, err)
	adapter.Close()

	s, err := New(openSQLite(t, path), testSeedConfig(1000))
	require.NoError(t, err)
	_, err = s.Seed(ctx)
	require.Error(t, err)
	s.Close()

	adapter = openSQLite(t, path)
	defer adapter.Close()
	count, err := adapter.GetTableRowCount(ctx, "RandomData")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := New(openSQLite(t, filepath.Join(t.TempDir(), "sample.db")), testSeedConfig(10))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Seed(ctx)
	assert.Error(t, err)
}

func TestRecordRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.db")
	cfg := testSeedConfig(6)
	cfg.RecordRuns = true

	first := runSeed(t, path, cfg)
	second := runSeed(t, path, cfg)

	adapter := openSQLite(t, path)
	defer adapter.Close()

	assert.True(t, indexExists(t, adapter, "idx__rowseed_runs_id"))

	runs, err := ListRuns(context.Background(), adapter, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.RunID, runs[0].ID)
	assert.Equal(t, first.RunID, runs[1].ID)
	for _, run := range runs {
		assert.Equal(t, "RandomData", run.TableName)
		assert.Equal(t, 6, run.RowsInserted)
		assert.Equal(t, "default", run.Profile)
		assert.False(t, run.FinishedAt.Before(run.StartedAt))
	}
}

func TestListRunsWithoutLedger(t *testing.T) {
	adapter := openSQLite(t, filepath.Join(t.TempDir(), "sample.db"))
	defer adapter.Close()

	runs, err := ListRuns(context.Background(), adapter, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestNewRejectsNegativeRows(t *testing.T) {
	adapter := openSQLite(t, filepath.Join(t.TempDir(), "sample.db"))
	defer adapter.Close()

	_, err := New(adapter, testSeedConfig(-1))
	assert.Error(t, err)
}
