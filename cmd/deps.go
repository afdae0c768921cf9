package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/naka-gawa/gitview/internal/config"
	"github.com/naka-gawa/gitview/internal/gateway"
	"github.com/spf13/cobra"
)

// newLogger creates the application logger. Only warnings and errors are
// shown unless --verbose is set.
func newLogger(cmd *cobra.Command, w io.Writer) *log.Logger {
	level := log.WarnLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// newFetcher loads the configuration and builds the GitHub gateway from it.
func newFetcher(logger *log.Logger) (gateway.Fetcher, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Configuration loaded", "api", cfg.APIURL, "timeout", cfg.HTTPTimeout, "concurrency", cfg.Concurrency)
	fetcher, err := gateway.NewGitHubGateway(cfg.APIURL, cfg.HTTPTimeout, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	return fetcher, cfg, nil
}

func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
