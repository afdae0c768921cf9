// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/naka-gawa/gitview/internal/domain"
	"github.com/naka-gawa/gitview/internal/gateway"
	"golang.org/x/sync/errgroup"
)

// PageSize is the number of repositories requested per listing.
const PageSize = 100

// DefaultConcurrency bounds the per-repository language fetches.
const DefaultConcurrency = 4

// LanguageAggregator is the use case for computing a user's language shares.
// It fans out one language fetch per original repository and joins the results.
type LanguageAggregator struct {
	fetcher     gateway.Fetcher
	logger      *log.Logger
	concurrency int
}

// NewLanguageAggregator creates a new LanguageAggregator instance.
// A concurrency below one falls back to DefaultConcurrency.
func NewLanguageAggregator(fetcher gateway.Fetcher, logger *log.Logger, concurrency int) *LanguageAggregator {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &LanguageAggregator{
		fetcher:     fetcher,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Aggregate lists the user's repositories, drops forks and archived ones, and
// sums the language bytes of the rest into percentage shares.
// If any language fetch fails the whole aggregation fails with ErrPartialData;
// no partial totals are returned. A failed listing keeps its own error kind.
func (a *LanguageAggregator) Aggregate(ctx context.Context, username string) ([]domain.LanguageShare, error) {
	a.logger.Debug("Usecase: Starting language aggregation...", "user", username)

	repos, err := a.fetcher.FetchRepositories(ctx, username, PageSize)
	if err != nil {
		// Nothing was aggregated yet, so the listing's own kind is kept.
		return nil, &gateway.FetchError{
			Kind:    gateway.KindOf(err),
			Message: gateway.MsgLanguagesIncomplete,
			Err:     err,
		}
	}
	originals := FilterOriginal(repos)

	perRepo := make([]domain.LanguageBytes, len(originals))

	// Use an errgroup to fetch all language maps concurrently.
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(a.concurrency)
	for i, repo := range originals {
		i, repo := i, repo
		eg.Go(func() error {
			langs, err := a.fetcher.FetchLanguageBytes(egCtx, repo)
			if err != nil {
				return err
			}
			perRepo[i] = langs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, partialData(err)
	}
	a.logger.Debug("Usecase: All language data fetched.", "repositories", len(originals))

	shares := SharesFromBytes(perRepo...)
	a.logger.Debug("Usecase: Aggregation complete.", "languages", len(shares))
	return shares, nil
}

// SharesFromBytes merges per-repository byte counts in the order given and
// converts the totals to percentages, sorted descending. Languages with equal
// shares keep the order in which they were first seen. A zero total yields an
// empty slice.
func SharesFromBytes(perRepo ...domain.LanguageBytes) []domain.LanguageShare {
	totals := make(map[string]int64)
	var order []string
	var total int64
	for _, langs := range perRepo {
		for _, c := range langs {
			if _, seen := totals[c.Language]; !seen {
				order = append(order, c.Language)
			}
			totals[c.Language] += c.Bytes
			total += c.Bytes
		}
	}
	if total == 0 {
		return []domain.LanguageShare{}
	}

	shares := make([]domain.LanguageShare, 0, len(order))
	for _, lang := range order {
		shares = append(shares, domain.LanguageShare{
			Language:   lang,
			Percentage: float64(totals[lang]) / float64(total) * 100,
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Percentage > shares[j].Percentage
	})
	return shares
}

func partialData(err error) error {
	return &gateway.FetchError{
		Kind:    gateway.ErrPartialData,
		Message: gateway.MsgLanguagesIncomplete,
		Err:     err,
	}
}
