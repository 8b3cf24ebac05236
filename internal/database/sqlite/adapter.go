package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lumos-Labs-HQ/rowseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/rowseed/internal/types"
	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

var typeMap = map[string]string{
	"varchar": "TEXT", "text": "TEXT", "char": "TEXT",
	"int": "INTEGER", "integer": "INTEGER", "bigint": "INTEGER", "smallint": "INTEGER", "tinyint": "INTEGER",
	"real": "REAL", "double": "REAL", "float": "REAL",
	"blob": "BLOB", "numeric": "NUMERIC", "decimal": "NUMERIC",
	"boolean": "INTEGER", "bool": "INTEGER",
}

type dialect struct {
	name   string
	driver string
	// busy timeout parameter, spelled the way each driver expects it
	busyParam string
}

// New returns an adapter backed by the cgo mattn/go-sqlite3 driver.
func New() *common.SQLAdapter {
	return common.NewSQLAdapter(dialect{
		name:      "sqlite",
		driver:    "sqlite3",
		busyParam: "_busy_timeout=5000",
	})
}

// NewPure returns an adapter backed by the pure-Go modernc.org/sqlite driver.
func NewPure() *common.SQLAdapter {
	return common.NewSQLAdapter(dialect{
		name:      "sqlite-pure",
		driver:    "sqlite",
		busyParam: "_pragma=busy_timeout(5000)",
	})
}

func (d dialect) Name() string       { return d.name }
func (d dialect) DriverName() string { return d.driver }

func (d dialect) PlaceholderFormat() squirrel.PlaceholderFormat {
	return squirrel.Question
}

// DSN strips an optional sqlite:// prefix and makes sure the parent
// directory of the database file exists.
func (d dialect) DSN(url string) (string, error) {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	if dbPath == "" {
		return "", fmt.Errorf("sqlite database path is empty")
	}

	filePath := strings.TrimPrefix(dbPath, "file:")
	if idx := strings.Index(filePath, "?"); idx >= 0 {
		filePath = filePath[:idx]
	}
	if filePath != ":memory:" && filePath != "" {
		if dir := filepath.Dir(filePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	if !strings.Contains(dbPath, "?") {
		dbPath += "?" + d.busyParam
	}
	return dbPath, nil
}

func (d dialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// MapColumnType keeps unknown tags verbatim: SQLite accepts any declared type.
func (d dialect) MapColumnType(tag types.TypeTag) string {
	t := tag.Normalize()
	if mapped, exists := typeMap[strings.ToLower(string(t))]; exists {
		return mapped
	}
	return string(t)
}

func (d dialect) TableExistsQuery() string {
	return "SELECT COUNT(*) > 0 FROM sqlite_master WHERE type = 'table' AND name = ?"
}

func (d dialect) IndexExistsQuery() string {
	return ""
}

func (d dialect) TableColumns(ctx context.Context, db *sql.DB, table string) ([]types.ColumnInfo, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", d.QuoteIdentifier(table)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []types.ColumnInfo
	for rows.Next() {
		var cid int
		var name, dataType string
		var notNull int
		var defaultValue sql.NullString
		var pk int

		if err := rows.Scan(&cid, &name, &dataType, &notNull, &defaultValue, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column info: %w", err)
		}
		columns = append(columns, types.ColumnInfo{
			Name:     name,
			Type:     dataType,
			Nullable: notNull == 0,
		})
	}
	return columns, rows.Err()
}
