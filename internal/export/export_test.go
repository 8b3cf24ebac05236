package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Lumos-Labs-HQ/rowseed/internal/database"
	"github.com/Lumos-Labs-HQ/rowseed/internal/database/sqlite"
	"github.com/Lumos-Labs-HQ/rowseed/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func seededAdapter(t *testing.T) database.DatabaseAdapter {
	t.Helper()
	ctx := context.Background()

	adapter := sqlite.New()
	require.NoError(t, adapter.Connect(ctx, filepath.Join(t.TempDir(), "sample.db")))
	t.Cleanup(func() { adapter.Close() })

	require.NoError(t, adapter.CreateTable(ctx, types.SchemaTable{Name: "RandomData", Columns: types.DefaultSchema()}))
	_, err := adapter.Exec(ctx, `INSERT INTO "RandomData" VALUES (12, 'QW3RT', 55), (99, NULL, 10)`)
	require.NoError(t, err)
	return adapter
}

func TestExportJSON(t *testing.T) {
	adapter := seededAdapter(t)
	out := t.TempDir()

	path, err := PerformExport(context.Background(), adapter, "RandomData", out, "json")
	require.NoError(t, err)
	assert.Equal(t, ".json", filepath.Ext(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var data types.ExportData
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Equal(t, "RandomData", data.Table)
	assert.Equal(t, []string{"id", "name", "age"}, data.Columns)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []interface{}{float64(12), "QW3RT", float64(55)}, data.Rows[0])
	assert.Equal(t, []interface{}{float64(99), nil, float64(10)}, data.Rows[1])
}

func TestExportKeepsColumnOrder(t *testing.T) {
	ctx := context.Background()
	adapter := sqlite.New()
	require.NoError(t, adapter.Connect(ctx, filepath.Join(t.TempDir(), "sample.db")))
	defer adapter.Close()

	columns := []types.SchemaColumn{{Name: "zeta", Type: types.TypeText}, {Name: "alpha", Type: types.TypeInteger}}
	require.NoError(t, adapter.CreateTable(ctx, types.SchemaTable{Name: "Ordered", Columns: columns}))
	_, err := adapter.Exec(ctx, `INSERT INTO "Ordered" VALUES ('Z', 1)`)
	require.NoError(t, err)

	path, err := PerformExport(ctx, adapter, "Ordered", t.TempDir(), "json")
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"columns": [
    "zeta",
    "alpha"
  ]`)
	assert.Contains(t, string(raw), `[
      "Z",
      1
    ]`)
}

func TestExportSameInstantDoesNotOverwrite(t *testing.T) {
	adapter := seededAdapter(t)
	out := t.TempDir()

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		path, err := PerformExport(context.Background(), adapter, "RandomData", out, "csv")
		require.NoError(t, err)
		assert.False(t, seen[path], "export %d reused %s", i, path)
		seen[path] = true
	}

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestExportCSV(t *testing.T) {
	adapter := seededAdapter(t)

	path, err := PerformExport(context.Background(), adapter, "RandomData", t.TempDir(), "csv")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"id", "name", "age"},
		{"12", "QW3RT", "55"},
		{"99", "", "10"},
	}, records)
}

func TestExportYAML(t *testing.T) {
	adapter := seededAdapter(t)

	path, err := PerformExport(context.Background(), adapter, "RandomData", t.TempDir(), "yaml")
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var data types.ExportData
	require.NoError(t, yaml.Unmarshal(raw, &data))
	assert.Equal(t, "RandomData", data.Table)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []interface{}{12, "QW3RT", 55}, data.Rows[0])
}

func TestExportErrors(t *testing.T) {
	adapter := seededAdapter(t)
	ctx := context.Background()

	_, err := PerformExport(ctx, adapter, "RandomData", t.TempDir(), "xml")
	assert.Error(t, err)

	_, err = PerformExport(ctx, adapter, "Missing", t.TempDir(), "json")
	assert.Error(t, err)
}
