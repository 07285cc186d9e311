package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"feedboard/internal/app"
	"feedboard/internal/config"
	"feedboard/internal/observability/logging"
)

var (
	feedsFile string
	timeout   time.Duration
	verbose   bool

	cfg    *config.AppConfig
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "feedctl",
	Short: "Crypto news feed aggregator",
	Long: `feedctl fetches the configured crypto news, on-chain and research feeds,
merges them newest-first and reports the feeds that could not be loaded.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var warnings []string
		cfg, warnings = config.Load(nil)

		// フラグは環境変数より優先
		if cmd.Flags().Changed("feeds-file") {
			cfg.FeedsFile = feedsFile
		}
		if cmd.Flags().Changed("timeout") {
			cfg.FetchTimeout = timeout
		}

		var out io.Writer = io.Discard
		if verbose {
			out = os.Stderr
		}
		logger = logging.New(logging.Options{Level: cfg.LogLevel, Format: "text", Output: out})
		for _, w := range warnings {
			logger.Warn("configuration fallback", slog.String("warning", w))
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&feedsFile, "feeds-file", "", "YAML feed list (default: built-in list)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", config.DefaultFetchTimeout, "per-attempt fetch timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log transport attempts to stderr")
}

func build() (*app.Components, error) {
	return app.Build(cfg, logger)
}
