package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"powerrank/internal/approval"
	"powerrank/internal/config"
	"powerrank/internal/dataset"
	"powerrank/internal/logging"
	"powerrank/internal/sources"
	"powerrank/internal/teams"
)

var (
	cfg config.Config
	log *logging.Logger
	yes bool
)

var rootCmd = &cobra.Command{
	Use:   "powerrank",
	Short: "powerrank collects weekly NBA power rankings into a versioned CSV dataset.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		cfg, err = config.Load()
		must(err)
		log = logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogJSON)
		logging.SetDefault(log)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "Approve every write without prompting.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func mustResolver() *teams.Resolver {
	reg, err := teams.Open(cfg.TeamsCSV)
	must(err)
	return teams.NewResolver(reg)
}

func newEngine() *dataset.Engine {
	must(cfg.Require("POWERRANK_GENERATIONS_DIR", cfg.GenerationsDir))
	if !yes && !approval.Interactive() {
		log.Warn("stdin is not a terminal and --yes was not given; nothing will be written")
	}
	return dataset.NewEngine(cfg.GenerationsDir,
		dataset.WithApprover(approval.ForCLI(yes)),
		dataset.WithLogger(log.Named("dataset")),
	)
}

func newFetcher() *sources.Client {
	return sources.NewClient(sources.OptionsFromConfig(cfg))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
