package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lumos-Labs-HQ/rowseed/internal/config"
	"github.com/Lumos-Labs-HQ/rowseed/internal/seeder"
	"github.com/Lumos-Labs-HQ/rowseed/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// seedFlagKeys maps command line flags onto config keys. A flag only
// overrides the config when it was passed explicitly.
var seedFlagKeys = map[string]string{
	"db":       "database.path",
	"provider": "database.provider",
	"table":    "seed.table",
	"rows":     "seed.rows",
	"profile":  "seed.profile",
	"min":      "seed.int_min",
	"max":      "seed.int_max",
	"index":    "seed.index_column",
	"strict":   "seed.strict",
	"seed":     "seed.random_seed",
	"record":   "seed.record_runs",
	"quiet":    "seed.quiet",
	"progress": "seed.progress_every",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Append random rows to the table",
	Long: `
Create the table (and its index) when missing, then append generated rows in a
single transaction. Either every row of the run is committed or none is.

Profiles:
  default  10000 rows, integers in [10,100], index on name
  bulk     100000 rows, integers in [6,100], no index, no output

--profile applies every value of the named profile, including over values
written in rowseed.config.json. Flags given next to it still win.

Examples:
  rowseed seed
  rowseed seed --profile bulk
  rowseed seed --rows 500 --db ./data/test.db --no-index`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applySeedFlags(cmd); err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		quiet := cfg.Seed.Quiet

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		adapter, err := openAdapter(ctx, cfg)
		if err != nil {
			return err
		}
		if !quiet {
			color.Green("Opened database successfully")
		}

		s, err := seeder.New(adapter, seeder.NewSeedConfig(cfg))
		if err != nil {
			adapter.Close()
			return err
		}
		defer s.Close()

		result, err := s.Seed(ctx)
		if err != nil {
			return err
		}

		if !quiet {
			color.Green("Seeded database successfully")
			color.Cyan("   %d rows added to %s (%d total) in %s",
				result.RowsInserted, result.Table, result.RowsAfter, utils.FormatDuration(result.Duration))
		}
		return nil
	},
}

func applySeedFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()

	// An explicit --profile replaces the profile values a config file spelled
	// out, but not the ones passed as flags alongside it.
	if flags.Changed("profile") {
		passed := make(map[string]bool)
		for flag, key := range seedFlagKeys {
			if flags.Changed(flag) {
				passed[key] = true
			}
		}
		if flags.Changed("no-index") {
			passed["seed.index_column"] = true
		}

		name, _ := flags.GetString("profile")
		keep := func(key string) bool { return passed[key] }
		if err := config.ApplyProfile(viper.GetViper(), name, keep); err != nil {
			return err
		}
	}

	for flag, key := range seedFlagKeys {
		if !flags.Changed(flag) {
			continue
		}
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}

	if noIndex, _ := flags.GetBool("no-index"); noIndex {
		viper.Set("seed.index_column", "")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("db", "", "SQLite database file (default ./sample.db)")
	seedCmd.Flags().String("provider", "", "Database provider: sqlite, sqlite-pure, postgresql, mysql")
	seedCmd.Flags().StringP("table", "t", "", "Table to seed (default RandomData)")
	seedCmd.Flags().IntP("rows", "n", 0, "Rows to append")
	seedCmd.Flags().StringP("profile", "p", "", "Seed profile: default or bulk")
	seedCmd.Flags().Int("min", 0, "Smallest generated integer")
	seedCmd.Flags().Int("max", 0, "Largest generated integer")
	seedCmd.Flags().String("index", "", "Column to index")
	seedCmd.Flags().Bool("no-index", false, "Do not create a secondary index")
	seedCmd.Flags().Bool("strict", false, "Fail on columns with an unknown type instead of writing NULL")
	seedCmd.Flags().Int64("seed", 0, "Random seed for reproducible data (0 uses the clock)")
	seedCmd.Flags().Bool("record", false, "Record the run in the _rowseed_runs table")
	seedCmd.Flags().BoolP("quiet", "q", false, "Suppress console output")
	seedCmd.Flags().Int("progress", 0, "Print progress every N rows")

	seedCmd.MarkFlagsMutuallyExclusive("index", "no-index")
}
