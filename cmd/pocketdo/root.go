package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pocketdo/pocketdo/internal/config"
	"github.com/pocketdo/pocketdo/internal/domain"
	"github.com/pocketdo/pocketdo/internal/service"
	"github.com/pocketdo/pocketdo/internal/storage"
	"github.com/pocketdo/pocketdo/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "pocketdo",
	Short: "pocketdo todo manager",
	Long:  `A local todo manager with search, filters, and completion tracking.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, store, svc := mustSetup()
		defer store.Close()

		if err := ui.Run(svc, cfg.Debounce(), cfg.DefaultFilter); err != nil {
			handleError(err)
		}
	},
}

// Global flags
var (
	jsonOutput bool
	dbFlag     string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Path to the database file (overrides config)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitGeneralError)
	}
}

// mustSetup loads the configuration and opens the store, exiting on failure.
// The --db flag takes precedence over the configured path.
func mustSetup() (*config.Config, *storage.SQLiteStore, *service.TodoService) {
	cfg, err := config.Load()
	if err != nil {
		handleError(err)
	}

	path := cfg.DBPath
	if dbFlag != "" {
		path = dbFlag
	}

	store, err := storage.Open(path)
	if err != nil {
		handleError(domain.NewStorageInitError(err))
	}

	return cfg, store, service.NewTodoService(store)
}

// handleError prints an error and exits with the appropriate code.
func handleError(err error) {
	printError(os.Stderr, err, jsonOutput)
	os.Exit(exitCodeFor(err))
}
