package cmd

import (
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/rowseed/internal/config"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.0.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔════════════════════════════════════════════════╗",
		"║   ██████╗  ██████╗ ██╗    ██╗                  ║",
		"║   ██╔══██╗██╔═══██╗██║    ██║                  ║",
		"║   ██████╔╝██║   ██║██║ █╗ ██║  s e e d         ║",
		"║   ██╔══██╗██║   ██║██║███╗██║                  ║",
		"║   ██║  ██║╚██████╔╝╚███╔███╔╝                  ║",
		"║   ╚═╝  ╚═╝ ╚═════╝  ╚══╝╚══╝                   ║",
		"║                                                ║",
		"║     🌱 Random rows for SQL tables, fast 🌱     ║",
		"╚════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("              ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "rowseed",
	Short: "Fill a database table with randomly generated rows",
	Long: `
rowseed creates a table from a declared schema when it is missing and appends
randomly generated rows to it inside a single transaction.

Database Support:
- SQLite (mattn/go-sqlite3, or the pure Go driver with provider "sqlite-pure")
- PostgreSQL
- MySQL`,
	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("rowseed version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./rowseed.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName(config.DefaultConfigName)
	}

	config.ConfigureEnv(viper.GetViper())

	// A missing config file is fine; every key has a default.
	viper.ReadInConfig()
}
