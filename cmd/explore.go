package cmd

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"sync"

	"github.com/naka-gawa/gitview/internal/domain"
	"github.com/naka-gawa/gitview/internal/render"
	"github.com/naka-gawa/gitview/internal/usecase"
	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactively looks up GitHub users read from standard input",
	Long: `Reads one username per line from standard input and shows each user's
profile and repositories. Entering a new name while a lookup is still running
replaces it: only the latest lookup is shown. Blank lines are ignored.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		logger := newLogger(cmd, os.Stderr)
		noColor, _ := cmd.Flags().GetBool("no-color")

		fetcher, _, err := newFetcher(logger)
		if err != nil {
			exitWithError("Error: %v", err)
		}

		dashboard := render.NewDashboard(cmd.OutOrStdout(), noColor)
		session := usecase.NewSession(fetcher, logger, usecase.WithObserver(func(r domain.QueryResult) {
			dashboard.Result(r)
		}))
		dashboard.Result(session.Result())

		var wg sync.WaitGroup
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if ctx.Err() != nil {
				break
			}
			session.SetInput(scanner.Text())
			// Begin runs here so that lines supersede each other in input order.
			pending, ok := session.Begin(ctx, session.Input())
			if !ok {
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				pending.Wait()
			}()
		}
		if err := scanner.Err(); err != nil {
			logger.Error("Failed to read input", "err", err)
		}
		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}
