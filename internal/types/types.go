package types

import (
	"strings"
	"time"
)

// TypeTag is the declared type of a schema column. It decides both the
// column declaration and how a random value is produced for it.
type TypeTag string

const (
	TypeInteger TypeTag = "INTEGER"
	TypeText    TypeTag = "TEXT"
)

// Normalize upper-cases and trims the tag so "integer" and " INTEGER" match.
func (t TypeTag) Normalize() TypeTag {
	return TypeTag(strings.ToUpper(strings.TrimSpace(string(t))))
}

// Known reports whether the generator has a rule for this tag.
func (t TypeTag) Known() bool {
	switch t.Normalize() {
	case TypeInteger, TypeText:
		return true
	}
	return false
}

type SchemaColumn struct {
	Name string  `json:"name" yaml:"name" mapstructure:"name"`
	Type TypeTag `json:"type" yaml:"type" mapstructure:"type"`
}

type SchemaTable struct {
	Name    string
	Columns []SchemaColumn
	Indexes []SchemaIndex
}

type SchemaIndex struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
}

// DefaultSchema is the id/name/age layout of the RandomData table.
func DefaultSchema() []SchemaColumn {
	return []SchemaColumn{
		{Name: "id", Type: TypeInteger},
		{Name: "name", Type: TypeText},
		{Name: "age", Type: TypeInteger},
	}
}

// ColumnNames returns the column names in schema order.
func (t SchemaTable) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// HasColumn reports whether the table declares a column with that name.
func (t SchemaTable) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col.Name == name {
			return true
		}
	}
	return false
}

// IndexName builds the conventional idx_<table>_<column> name.
func IndexName(table, column string) string {
	return "idx_" + table + "_" + column
}

// ColumnInfo is a column as reported back by the database.
type ColumnInfo struct {
	Name     string
	Type     string
	Nullable bool
}

type SeedRun struct {
	ID           string    `json:"id" yaml:"id"`
	TableName    string    `json:"table_name" yaml:"table_name"`
	Profile      string    `json:"profile" yaml:"profile"`
	RowsInserted int       `json:"rows_inserted" yaml:"rows_inserted"`
	StartedAt    time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt   time.Time `json:"finished_at" yaml:"finished_at"`
}

// ExportData is the dumped table. Each row lists its values in Columns order.
type ExportData struct {
	Timestamp string          `json:"timestamp" yaml:"timestamp"`
	Version   string          `json:"version" yaml:"version"`
	Table     string          `json:"table" yaml:"table"`
	Columns   []string        `json:"columns" yaml:"columns"`
	Rows      [][]interface{} `json:"rows" yaml:"rows"`
}
