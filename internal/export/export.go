package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Lumos-Labs-HQ/rowseed/internal/database"
	"github.com/Lumos-Labs-HQ/rowseed/internal/types"
	"gopkg.in/yaml.v3"
)

var Formats = []string{"json", "csv", "yaml"}

// PerformExport writes every row of tableName into exportPath and returns
// the created file. An empty table still produces a file with its header.
func PerformExport(ctx context.Context, adapter database.DatabaseAdapter, tableName, exportPath, format string) (string, error) {
	var ext string
	switch format {
	case "json":
		ext = ".json"
	case "csv":
		ext = ".csv"
	case "yaml", "yml":
		ext = ".yaml"
	default:
		return "", fmt.Errorf("unsupported export format: %s. Supported formats: %v", format, Formats)
	}

	exists, err := adapter.CheckTableExists(ctx, tableName)
	if err != nil {
		return "", fmt.Errorf("failed to check table %s: %w", tableName, err)
	}
	if !exists {
		return "", fmt.Errorf("table %s does not exist", tableName)
	}

	result, err := adapter.GetTableData(ctx, tableName, 0)
	if err != nil {
		return "", err
	}

	rows := make([][]interface{}, len(result.Rows))
	for i, row := range result.Rows {
		values := make([]interface{}, len(result.Columns))
		for j, col := range result.Columns {
			values[j] = row[col]
		}
		rows[i] = values
	}

	data := types.ExportData{
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		Version:   "1.0",
		Table:     tableName,
		Columns:   result.Columns,
		Rows:      rows,
	}

	if err := os.MkdirAll(exportPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	filePath, err := exportFileName(exportPath, tableName, ext)
	if err != nil {
		return "", err
	}

	switch ext {
	case ".json":
		return exportToJSON(data, filePath)
	case ".csv":
		return exportToCSV(data, filePath)
	default:
		return exportToYAML(data, filePath)
	}
}

// exportFileName returns <table>_<timestamp><ext> inside dir, adding a
// numeric suffix when an export from the same millisecond already exists.
func exportFileName(dir, tableName, ext string) (string, error) {
	base := filepath.Join(dir, fmt.Sprintf("%s_%s", tableName, time.Now().Format("2006-01-02_15-04-05.000")))

	candidate := base + ext
	for i := 1; ; i++ {
		_, err := os.Stat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check export file %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
	}
}

func exportToJSON(data types.ExportData, filePath string) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data: %w", err)
	}

	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filePath, nil
}

func exportToYAML(data types.ExportData, filePath string) (string, error) {
	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal data: %w", err)
	}

	if err := os.WriteFile(filePath, yamlData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filePath, nil
}

// exportToCSV keeps the table's column order; NULL becomes an empty field.
func exportToCSV(data types.ExportData, filePath string) (string, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file for %s: %w", data.Table, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(data.Columns); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	values := make([]string, len(data.Columns))
	for _, row := range data.Rows {
		for i, v := range row {
			if v != nil {
				values[i] = fmt.Sprintf("%v", v)
			} else {
				values[i] = ""
			}
		}
		if err := writer.Write(values); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	return filePath, nil
}
