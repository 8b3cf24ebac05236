package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/rowseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/rowseed/internal/types"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

var typeMap = map[string]string{
	"int": "INTEGER", "integer": "INTEGER", "bigint": "BIGINT", "smallint": "SMALLINT",
	"text": "TEXT", "varchar": "VARCHAR", "char": "CHAR",
	"real": "REAL", "double": "DOUBLE PRECISION", "float": "DOUBLE PRECISION",
	"boolean": "BOOLEAN", "bool": "BOOLEAN",
}

type dialect struct{}

func New() *common.SQLAdapter {
	return common.NewSQLAdapter(dialect{})
}

func (dialect) Name() string { return "postgresql" }

// DriverName is the driver registered by pgx/v5/stdlib.
func (dialect) DriverName() string { return "pgx" }

func (dialect) PlaceholderFormat() squirrel.PlaceholderFormat {
	return squirrel.Dollar
}

// DSN parses the URL with pgx and registers the resulting config with the
// stdlib driver, so exec mode settings survive database/sql.
func (dialect) DSN(url string) (string, error) {
	config, err := pgx.ParseConfig(url)
	if err != nil {
		return "", fmt.Errorf("failed to parse connection URL: %w", err)
	}
	config.DefaultQueryExecMode = pgx.QueryExecModeExec
	return stdlib.RegisterConnConfig(config), nil
}

func (dialect) QuoteIdentifier(name string) string {
	return pq.QuoteIdentifier(name)
}

func (dialect) MapColumnType(tag types.TypeTag) string {
	t := tag.Normalize()
	if mapped, exists := typeMap[strings.ToLower(string(t))]; exists {
		return mapped
	}
	return string(t)
}

func (dialect) TableExistsQuery() string {
	return `SELECT EXISTS (
		SELECT 1 FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name = $1
	)`
}

func (dialect) IndexExistsQuery() string {
	return ""
}

func (dialect) TableColumns(ctx context.Context, db *sql.DB, table string) ([]types.ColumnInfo, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
		ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return common.ScanInformationSchemaColumns(rows)
}
