package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the seeded table and its row count",
	Long: `Show whether the configured table exists, its columns as the database
reports them, and how many rows it currently holds.`,
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

		if err := adapter.Ping(ctx); err != nil {
			return fmt.Errorf("database is not reachable: %w", err)
		}

		table := cfg.Seed.Table
		fmt.Printf("🗄️  Provider: %s (connected)\n", adapter.Provider())

		exists, err := adapter.CheckTableExists(ctx, table)
		if err != nil {
			return err
		}
		if !exists {
			color.Yellow("⚠️  Table %s does not exist yet. Run 'rowseed seed' to create it.", table)
			return nil
		}

		columns, err := adapter.GetTableColumns(ctx, table)
		if err != nil {
			return err
		}

		count, err := adapter.GetTableRowCount(ctx, table)
		if err != nil {
			return err
		}

		color.Green("📋 Table %s: %d rows", table, count)

		tw := tablewriter.NewWriter(os.Stdout)
		tw.SetHeader([]string{"Column", "Type", "Nullable"})
		tw.SetAutoFormatHeaders(false)
		for _, col := range columns {
			tw.Append([]string{col.Name, col.Type, fmt.Sprintf("%t", col.Nullable)})
		}
		tw.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
