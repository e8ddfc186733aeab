package main

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/oxidelab/ferrolens/pkg/config"
)

var (
	cfgFile string
	verbose bool
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "ferrolens",
	Short: "Structural cohesion and coupling metrics for Rust code",
	Long: `Ferrolens extracts a structural model of the structs in a Rust
codebase and computes LCOM (lack of cohesion), CBO (coupling between
objects) and WMC (weighted methods per class) for each of them.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(charmlog.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (TOML, YAML, or JSON)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
}

// loadConfig loads the config named by --config, falling back to the
// standard locations.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadOrDefault(), nil
}
