package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/rowseed/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the seeded table",
	Long: `
Export every row of the configured table to a file.
Supported formats: json (default), csv, yaml

Examples:
  rowseed export
  rowseed export --format csv
  rowseed export --format yaml --out ./dumps`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := context.Background()
		adapter, err := openAdapter(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		out := cfg.Export.Path
		if exportOut != "" {
			out = exportOut
		}

		exportPath, err := export.PerformExport(ctx, adapter, cfg.Seed.Table, out, exportFormat)
		if err != nil {
			return err
		}

		fmt.Printf("✅ Export completed: %s\n", exportPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: json, csv or yaml")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output directory (default from config, ./export)")
}
