// Package cli implements tripctl, a command-line companion to the trip
// planner API for poking at upstream providers and managing the schema.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/pkordes/tripplanner/internal/app"
	"github.com/pkordes/tripplanner/internal/config"
)

var (
	// Global flags
	jsonOutput bool

	// newProviders builds the provider clients. Tests replace it with fakes.
	newProviders = func() (app.Providers, config.Providers, error) {
		cfg, err := config.LoadProviders()
		if err != nil {
			return app.Providers{}, config.Providers{}, err
		}
		return app.NewProviders(cfg), cfg, nil
	}
)

// rootCmd is the root command for tripctl.
var rootCmd = &cobra.Command{
	Use:     "tripctl",
	Version: "dev",
	Short:   "Trip planner command-line tools",
	Long: `tripctl queries the same geocoding, places, photo and encyclopedia
providers the trip planner API uses, and applies the database migrations.

Provider settings are read from the environment (and .env) exactly as the
API server reads them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv()
	},
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// SetVersion overrides the version printed by --version.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "lookup",
		Title: "Provider Lookups:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "database",
		Title: "Database:",
	})

	rootCmd.AddCommand(geocodeCmd, placesCmd, photosCmd, summaryCmd)
	rootCmd.AddCommand(migrateCmd)
}
