// =============================================================================
// Ordemtex - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// (import, report, timeline, version) are attached to it.
//
// CLI STRUCTURE:
//   rootCmd (ordemtex)
//   ├── importCmd   (ordemtex import)
//   ├── reportCmd   (ordemtex report)
//   ├── timelineCmd (ordemtex timeline)
//   └── versionCmd  (ordemtex version)
//
// The root command owns the global flags (--config, --verbose), loads the
// configuration and sets up the logger before any subcommand runs.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jmtavares/ordemtex/internal/config"
)

// cfgFile holds the path to the configuration file.
// Overridden with the --config flag.
var cfgFile string

// verbose enables debug logging when set.
var verbose bool

// appConfig is the loaded configuration, available to all subcommands.
var appConfig *config.Config

// logger is the application logger, configured in initConfig.
var logger zerolog.Logger

// rootCmd represents the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "ordemtex",
	Short: "Production order tracker for textile ERP exports",
	Long: `Ordemtex ingests the per-order spreadsheet export of a textile ERP and
derives each order's position in the six-stage production chain
(tecelagem, felpo cru, tinturaria, confecção, embalagem, stock), its
delay status, and the dashboard aggregates built on top of them.

The export is a flat snapshot: the current stage is never stored, it is
reconstructed from which per-sector dates and quantities are populated.

Example Usage:
  ordemtex import encomendas.xls             # Parse and report row errors
  ordemtex report encomendas.xls --json      # KPIs, sector load, clients
  ordemtex timeline encomendas.xlsx --days 60`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
// Called once, by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug output",
	)
}

// initConfig loads the configuration file and configures the logger.
// Runs before any subcommand's RunE.
func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	appConfig = cfg

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
