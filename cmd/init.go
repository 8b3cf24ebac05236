package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Lumos-Labs-HQ/rowseed/internal/config"
	"github.com/Lumos-Labs-HQ/rowseed/template"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	initProvider string
	initProfile  string
	initForce    bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a rowseed.config.json for the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbType, err := template.ValidateDatabaseType(initProvider)
		if err != nil {
			return err
		}

		tmpl := template.NewProjectTemplate(dbType, initProfile)
		content, err := tmpl.GetConfig()
		if err != nil {
			return err
		}

		configFile := config.DefaultConfigName + ".json"
		if _, err := os.Stat(configFile); err == nil && !initForce {
			return fmt.Errorf("%s already exists, use --force to overwrite it", configFile)
		}
		if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to create file %s: %w", configFile, err)
		}

		if env := tmpl.GetEnvTemplate(); env != "" {
			if err := handleEnvFile(env); err != nil {
				return fmt.Errorf("failed to handle .env file: %w", err)
			}
		}

		color.Green("✅ Created %s for %s (%s profile)", configFile, dbType, tmpl.Profile)
		return nil
	},
}

// handleEnvFile appends the template's variables to .env, leaving any that
// are already defined untouched.
func handleEnvFile(envTemplate string) error {
	existing, err := os.ReadFile(".env")
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	var missing []string
	for _, line := range strings.Split(strings.TrimSpace(envTemplate), "\n") {
		key, _, _ := strings.Cut(line, "=")
		if !strings.Contains(string(existing), key+"=") {
			missing = append(missing, line)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	f, err := os.OpenFile(".env", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return err
		}
	}
	_, err = f.WriteString(strings.Join(missing, "\n") + "\n")
	return err
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initProvider, "provider", "sqlite", "Database provider: sqlite, postgresql or mysql")
	initCmd.Flags().StringVarP(&initProfile, "profile", "p", "default", "Seed profile to write out: default or bulk")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
}
