package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/naka-gawa/gitview/internal/domain"
	"github.com/naka-gawa/gitview/internal/gateway"
	"github.com/naka-gawa/gitview/internal/render"
	"github.com/naka-gawa/gitview/internal/usecase"
	"github.com/spf13/cobra"
)

// profileReport is the --json output of the profile command.
type profileReport struct {
	Result         domain.QueryResult     `json:"result"`
	Summary        *domain.Summary        `json:"summary,omitempty"`
	Languages      []domain.LanguageShare `json:"languages,omitempty"`
	LanguagesError string                 `json:"languages_error,omitempty"`
}

var profileCmd = &cobra.Command{
	Use:   "profile <username>",
	Short: "Shows a GitHub user's profile, repositories and language statistics",
	Long: `Fetches the public profile and the 100 most recently updated repositories of
a GitHub user and prints them with summary statistics. Language shares are
computed from the byte counts of every original repository, which costs one
extra request per repository; use --no-languages to skip them.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd, os.Stderr)

		asJSON, _ := cmd.Flags().GetBool("json")
		noLanguages, _ := cmd.Flags().GetBool("no-languages")
		noColor, _ := cmd.Flags().GetBool("no-color")

		// Inject dependencies.
		fetcher, cfg, err := newFetcher(logger)
		if err != nil {
			exitWithError("Error: %v", err)
		}
		session := usecase.NewSession(fetcher, logger)
		aggregator := usecase.NewLanguageAggregator(fetcher, logger, cfg.Concurrency)

		result, started := session.Search(ctx, args[0])
		if !started {
			exitWithError("Error: username must not be empty")
		}

		var shares []domain.LanguageShare
		var langErr error
		if result.State == domain.StateSuccess && !noLanguages {
			shares, langErr = aggregator.Aggregate(ctx, result.Username)
			if langErr != nil {
				logger.Warn("Language aggregation failed", "user", result.Username, "err", gateway.Cause(langErr))
			}
		}

		if asJSON {
			report := profileReport{Result: result, Languages: shares}
			if result.State == domain.StateSuccess {
				summary := usecase.Summarize(result.Repositories)
				report.Summary = &summary
			}
			if langErr != nil {
				report.LanguagesError = langErr.Error()
			}
			// Marshal the report into a pretty-printed JSON string.
			jsonData, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				exitWithError("Failed to marshal results to JSON: %v", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			if result.State == domain.StateFailure {
				os.Exit(1)
			}
			return
		}

		dashboard := render.NewDashboard(cmd.OutOrStdout(), noColor)
		if result.State == domain.StateFailure {
			dashboard.Error(result.Reason)
			os.Exit(1)
		}
		dashboard.Profile(*result.Profile, usecase.Summarize(result.Repositories))
		switch {
		case noLanguages:
		case langErr != nil:
			dashboard.Warning(langErr.Error())
		default:
			dashboard.Languages(shares)
		}
		dashboard.Repositories(result.Repositories)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().Bool("json", false, "Print the result as JSON")
	profileCmd.Flags().Bool("no-languages", false, "Skip the per-repository language aggregation")
}
