package common

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/Lumos-Labs-HQ/rowseed/internal/types"
)

// validIdentifier guards every table/column/index name that is spliced into SQL.
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validTypeName guards column type declarations: words with an optional
// length or precision, e.g. VARCHAR(255), DOUBLE PRECISION, DECIMAL(10,2).
var validTypeName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_ ]*(\(\d+(,\s*\d+)?\))?$`)

type QueryResult struct {
	Columns []string
	Rows    []map[string]interface{}
}

func IsValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

func ValidateIdentifier(kind, name string) error {
	if !IsValidIdentifier(name) {
		return fmt.Errorf("invalid %s name: %q", kind, name)
	}
	return nil
}

// ValidateTypeName rejects a column type that is not a plain type name.
// An empty type is allowed and leaves the column undeclared.
func ValidateTypeName(column, typeName string) error {
	typeName = strings.TrimSpace(typeName)
	if typeName == "" {
		return nil
	}
	if !validTypeName.MatchString(typeName) {
		return fmt.Errorf("invalid type for column %s: %q", column, typeName)
	}
	return nil
}

// FormatValue converts driver values into display/export friendly values.
func FormatValue(val interface{}) interface{} {
	if val == nil {
		return nil
	}
	if b, ok := val.([]byte); ok {
		return string(b)
	}
	return val
}

// ScanRows drains rows into a QueryResult.
func ScanRows(rows *sql.Rows) (*QueryResult, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	results := make([]map[string]interface{}, 0)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range columns {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			row[col] = FormatValue(values[i])
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return &QueryResult{Columns: columns, Rows: results}, nil
}

// ScanInformationSchemaColumns reads (column_name, data_type, is_nullable) rows.
func ScanInformationSchemaColumns(rows *sql.Rows) ([]types.ColumnInfo, error) {
	var columns []types.ColumnInfo
	for rows.Next() {
		var name, dataType, nullable string
		if err := rows.Scan(&name, &dataType, &nullable); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, types.ColumnInfo{
			Name:     name,
			Type:     dataType,
			Nullable: nullable == "YES",
		})
	}
	return columns, rows.Err()
}
