package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/rowseed/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var dropForce bool

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the seeded table",
	Long: `Drop the configured table and every row in it. The index goes with it.
Asks for confirmation unless --force is given.`,
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

		table := cfg.Seed.Table
		exists, err := adapter.CheckTableExists(ctx, table)
		if err != nil {
			return err
		}
		if !exists {
			color.Yellow("Table %s does not exist, nothing to drop", table)
			return nil
		}

		count, err := adapter.GetTableRowCount(ctx, table)
		if err != nil {
			return err
		}

		color.Yellow("⚠️  This will permanently delete table %s (%d rows).", table, count)
		if !utils.NewInputUtils().AskConfirmation("Are you sure you want to continue?", dropForce) {
			fmt.Println("❌ Drop cancelled")
			return nil
		}

		if err := adapter.DropTable(ctx, table); err != nil {
			return err
		}
		color.Green("✅ Dropped table %s", table)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dropCmd)

	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "Skip confirmation")
}
