package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/Lumos-Labs-HQ/rowseed/internal/seeder"
	"github.com/Lumos-Labs-HQ/rowseed/internal/utils"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded seed runs",
	Long: `List the runs recorded in the _rowseed_runs table, newest first.
Runs are only recorded when seeding with --record or seed.record_runs.`,
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

		runs, err := seeder.ListRuns(ctx, adapter, historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			color.Yellow("No recorded runs. Seed with --record to keep a history.")
			return nil
		}

		tw := tablewriter.NewWriter(os.Stdout)
		tw.SetHeader([]string{"Run", "Table", "Profile", "Rows", "Started", "Took"})
		tw.SetAutoFormatHeaders(false)
		for _, run := range runs {
			tw.Append([]string{
				run.ID,
				run.TableName,
				run.Profile,
				strconv.Itoa(run.RowsInserted),
				run.StartedAt.Local().Format("2006-01-02 15:04:05"),
				utils.FormatDuration(run.FinishedAt.Sub(run.StartedAt)),
			})
		}
		tw.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Number of runs to show (0 shows all)")
}
