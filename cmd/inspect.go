package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/rowseed/internal/database/common"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var inspectLimit int

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print a sample of the seeded rows",
	Args:  cobra.NoArgs,
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

		table := cfg.Seed.Table
		exists, err := adapter.CheckTableExists(ctx, table)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("table %s does not exist", table)
		}

		result, err := adapter.GetTableData(ctx, table, inspectLimit)
		if err != nil {
			return err
		}
		if len(result.Rows) == 0 {
			color.Yellow("Table %s is empty", table)
			return nil
		}

		renderRows(result)
		return nil
	},
}

func renderRows(result *common.QueryResult) {
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader(result.Columns)
	tw.SetAutoFormatHeaders(false)

	for _, row := range result.Rows {
		line := make([]string, len(result.Columns))
		for i, col := range result.Columns {
			if v := row[col]; v != nil {
				line[i] = fmt.Sprintf("%v", v)
			} else {
				line[i] = "NULL"
			}
		}
		tw.Append(line)
	}
	tw.Render()
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().IntVarP(&inspectLimit, "limit", "l", 10, "Number of rows to show (0 shows all)")
}
