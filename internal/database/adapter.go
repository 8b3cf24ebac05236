package database

import (
	"context"
	"database/sql"

	"github.com/Lumos-Labs-HQ/rowseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/rowseed/internal/types"
	"github.com/Masterminds/squirrel"
)

type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error
	Provider() string

	// Statement building and raw access
	Builder() squirrel.StatementBuilderType
	BeginTx(ctx context.Context) (*sql.Tx, error)
	Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)

	// Schema operations
	CreateTable(ctx context.Context, table types.SchemaTable) error
	CreateIndex(ctx context.Context, index types.SchemaIndex) error
	CheckTableExists(ctx context.Context, tableName string) (bool, error)
	GetTableColumns(ctx context.Context, tableName string) ([]types.ColumnInfo, error)
	DropTable(ctx context.Context, tableName string) error

	// Data operations
	GetTableRowCount(ctx context.Context, tableName string) (int, error)
	GetTableData(ctx context.Context, tableName string, limit int) (*common.QueryResult, error)

	// SQL generation
	GenerateCreateTableSQL(table types.SchemaTable) string
	GenerateAddIndexSQL(index types.SchemaIndex) string
	QuoteIdentifier(name string) string
	MapColumnType(tag types.TypeTag) string
}

var SupportedProviders = []string{"sqlite", "sqlite3", "sqlite-pure", "postgresql", "postgres", "mysql"}

func IsSupportedProvider(provider string) bool {
	for _, p := range SupportedProviders {
		if p == provider {
			return true
		}
	}
	return false
}
