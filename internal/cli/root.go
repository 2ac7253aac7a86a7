package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"optionlab/internal/config"
	"optionlab/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.DataStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	dataStore, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, persistence is unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Str("path", cfg.Store.Path).Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "optionlab",
		Short: "optionlab - option Greeks and delta-neutrality CLI",
		Long: `optionlab prices option sensitivities with the Black-Scholes model
and analyzes multi-leg strategies for delta neutrality.

Use 'optionlab help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/optionlab)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGreeksCmd(app))
	rootCmd.AddCommand(newLadderCmd(app))
	rootCmd.AddCommand(newDeltaCmd(app))
	rootCmd.AddCommand(newStrategyCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("optionlab v%s\n", Version)
			}
		},
	}
}
