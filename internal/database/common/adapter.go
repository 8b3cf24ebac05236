package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/rowseed/internal/types"
	"github.com/Masterminds/squirrel"
)

var ErrNotConnected = errors.New("database connection is not open")

// Dialect holds everything that differs between providers. The shared
// SQLAdapter does the rest through database/sql.
type Dialect interface {
	Name() string
	DriverName() string
	DSN(url string) (string, error)
	PlaceholderFormat() squirrel.PlaceholderFormat
	QuoteIdentifier(name string) string
	MapColumnType(tag types.TypeTag) string

	// TableExistsQuery takes the table name as its only argument.
	TableExistsQuery() string
	// IndexExistsQuery takes (table, index). Empty when the provider
	// understands CREATE INDEX IF NOT EXISTS.
	IndexExistsQuery() string
	TableColumns(ctx context.Context, db *sql.DB, table string) ([]types.ColumnInfo, error)
}

type SQLAdapter struct {
	db      *sql.DB
	qb      squirrel.StatementBuilderType
	dialect Dialect
}

func NewSQLAdapter(d Dialect) *SQLAdapter {
	return &SQLAdapter{
		qb:      squirrel.StatementBuilder.PlaceholderFormat(d.PlaceholderFormat()),
		dialect: d,
	}
}

func (a *SQLAdapter) Connect(ctx context.Context, url string) error {
	dsn, err := a.dialect.DSN(url)
	if err != nil {
		return err
	}

	db, err := sql.Open(a.dialect.DriverName(), dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s connection: %w", a.dialect.Name(), err)
	}

	// One exclusively owned connection for the whole run.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to open %s database: %w", a.dialect.Name(), err)
	}

	a.db = db
	return nil
}

func (a *SQLAdapter) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *SQLAdapter) Ping(ctx context.Context) error {
	if a.db == nil {
		return ErrNotConnected
	}
	return a.db.PingContext(ctx)
}

func (a *SQLAdapter) Provider() string {
	return a.dialect.Name()
}

func (a *SQLAdapter) Builder() squirrel.StatementBuilderType {
	return a.qb
}

func (a *SQLAdapter) BeginTx(ctx context.Context) (*sql.Tx, error) {
	if a.db == nil {
		return nil, ErrNotConnected
	}
	return a.db.BeginTx(ctx, nil)
}

func (a *SQLAdapter) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	if a.db == nil {
		return nil, ErrNotConnected
	}
	return a.db.ExecContext(ctx, query, args...)
}

func (a *SQLAdapter) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	if a.db == nil {
		return nil, ErrNotConnected
	}
	return a.db.QueryContext(ctx, query, args...)
}

func (a *SQLAdapter) QuoteIdentifier(name string) string {
	return a.dialect.QuoteIdentifier(name)
}

func (a *SQLAdapter) MapColumnType(tag types.TypeTag) string {
	return a.dialect.MapColumnType(tag)
}

func (a *SQLAdapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	defs := make([]string, 0, len(table.Columns))
	for _, col := range table.Columns {
		def := a.QuoteIdentifier(col.Name)
		if colType := a.MapColumnType(col.Type); colType != "" {
			def += " " + colType
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		a.QuoteIdentifier(table.Name), strings.Join(defs, ", "))
}

func (a *SQLAdapter) GenerateAddIndexSQL(index types.SchemaIndex) string {
	unique := ""
	if index.Unique {
		unique = "UNIQUE "
	}
	ifNotExists := ""
	if a.dialect.IndexExistsQuery() == "" {
		ifNotExists = "IF NOT EXISTS "
	}

	cols := make([]string, len(index.Columns))
	for i, col := range index.Columns {
		cols[i] = a.QuoteIdentifier(col)
	}
	return fmt.Sprintf("CREATE %sINDEX %s%s ON %s (%s)",
		unique, ifNotExists, a.QuoteIdentifier(index.Name),
		a.QuoteIdentifier(index.Table), strings.Join(cols, ", "))
}

func (a *SQLAdapter) CreateTable(ctx context.Context, table types.SchemaTable) error {
	if err := ValidateIdentifier("table", table.Name); err != nil {
		return err
	}
	if len(table.Columns) == 0 {
		return fmt.Errorf("table %s has no columns", table.Name)
	}
	for _, col := range table.Columns {
		if err := ValidateIdentifier("column", col.Name); err != nil {
			return err
		}
		if err := ValidateTypeName(col.Name, a.MapColumnType(col.Type)); err != nil {
			return err
		}
	}

	if _, err := a.Exec(ctx, a.GenerateCreateTableSQL(table)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table.Name, err)
	}
	return nil
}

func (a *SQLAdapter) CreateIndex(ctx context.Context, index types.SchemaIndex) error {
	for _, name := range append([]string{index.Name, index.Table}, index.Columns...) {
		if err := ValidateIdentifier("index", name); err != nil {
			return err
		}
	}

	if q := a.dialect.IndexExistsQuery(); q != "" {
		if a.db == nil {
			return ErrNotConnected
		}
		var exists bool
		if err := a.db.QueryRowContext(ctx, q, index.Table, index.Name).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check index %s: %w", index.Name, err)
		}
		if exists {
			return nil
		}
	}

	if _, err := a.Exec(ctx, a.GenerateAddIndexSQL(index)); err != nil {
		return fmt.Errorf("failed to create index %s: %w", index.Name, err)
	}
	return nil
}

func (a *SQLAdapter) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	if a.db == nil {
		return false, ErrNotConnected
	}
	var exists bool
	err := a.db.QueryRowContext(ctx, a.dialect.TableExistsQuery(), tableName).Scan(&exists)
	return exists, err
}

func (a *SQLAdapter) GetTableColumns(ctx context.Context, tableName string) ([]types.ColumnInfo, error) {
	if err := ValidateIdentifier("table", tableName); err != nil {
		return nil, err
	}
	if a.db == nil {
		return nil, ErrNotConnected
	}
	return a.dialect.TableColumns(ctx, a.db, tableName)
}

func (a *SQLAdapter) GetTableRowCount(ctx context.Context, tableName string) (int, error) {
	if err := ValidateIdentifier("table", tableName); err != nil {
		return 0, err
	}
	if a.db == nil {
		return 0, ErrNotConnected
	}

	query, args, err := a.qb.Select("COUNT(*)").From(a.QuoteIdentifier(tableName)).ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := a.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in table %s: %w", tableName, err)
	}
	return count, nil
}

// GetTableData returns up to limit rows (all rows when limit <= 0).
func (a *SQLAdapter) GetTableData(ctx context.Context, tableName string, limit int) (*QueryResult, error) {
	if err := ValidateIdentifier("table", tableName); err != nil {
		return nil, err
	}

	q := a.qb.Select("*").From(a.QuoteIdentifier(tableName))
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := a.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", tableName, err)
	}
	defer rows.Close()

	return ScanRows(rows)
}

func (a *SQLAdapter) DropTable(ctx context.Context, tableName string) error {
	if err := ValidateIdentifier("table", tableName); err != nil {
		return err
	}
	_, err := a.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", a.QuoteIdentifier(tableName)))
	return err
}
