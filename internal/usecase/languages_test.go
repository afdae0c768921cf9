package usecase

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/naka-gawa/gitview/internal/domain"
	"github.com/naka-gawa/gitview/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchProfile(ctx context.Context, username string) (*domain.UserProfile, error) {
	args := m.Called(ctx, username)
	// We need to handle the case where the returned value is nil (e.g., when an error occurs).
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *mockFetcher) FetchRepositories(ctx context.Context, username string, pageSize int) ([]domain.Repository, error) {
	args := m.Called(ctx, username, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repository), args.Error(1)
}

func (m *mockFetcher) FetchLanguageBytes(ctx context.Context, repo domain.Repository) (domain.LanguageBytes, error) {
	args := m.Called(ctx, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.LanguageBytes), args.Error(1)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestLanguageAggregator_Aggregate(t *testing.T) {
	goRepo := domain.Repository{ID: 1, Name: "go-repo"}
	cRepo := domain.Repository{ID: 2, Name: "c-repo"}
	forked := domain.Repository{ID: 3, Name: "forked", Fork: true}
	archived := domain.Repository{ID: 4, Name: "archived", Archived: true}

	testCases := []struct {
		name           string
		mockRepos      []domain.Repository
		mockReposErr   error
		mockLanguages  map[int64]domain.LanguageBytes
		mockLangErr    map[int64]error
		expectedResult []domain.LanguageShare
		expectedKind   error
	}{
		{
			name:      "happy path - sums bytes across original repositories only",
			mockRepos: []domain.Repository{goRepo, forked, cRepo, archived},
			mockLanguages: map[int64]domain.LanguageBytes{
				1: {{Language: "Go", Bytes: 600}, {Language: "Shell", Bytes: 100}},
				2: {{Language: "C", Bytes: 200}, {Language: "Shell", Bytes: 100}},
			},
			expectedResult: []domain.LanguageShare{
				{Language: "Go", Percentage: 60},
				{Language: "Shell", Percentage: 20},
				{Language: "C", Percentage: 20},
			},
		},
		{
			name:      "empty case - repositories without language bytes",
			mockRepos: []domain.Repository{goRepo},
			mockLanguages: map[int64]domain.LanguageBytes{
				1: {},
			},
			expectedResult: []domain.LanguageShare{},
		},
		{
			name:           "empty case - only forks and archived repositories",
			mockRepos:      []domain.Repository{forked, archived},
			expectedResult: []domain.LanguageShare{},
		},
		{
			name:         "error case - repository listing fails with its own kind",
			mockReposErr: &gateway.FetchError{Kind: gateway.ErrRateLimited, Message: gateway.MsgReposFetchFailed},
			expectedKind: gateway.ErrRateLimited,
		},
		{
			name:      "error case - one language fetch fails the whole aggregation",
			mockRepos: []domain.Repository{goRepo, cRepo},
			mockLanguages: map[int64]domain.LanguageBytes{
				1: {{Language: "Go", Bytes: 600}},
			},
			mockLangErr: map[int64]error{
				2: errors.New("github api error"),
			},
			expectedKind: gateway.ErrPartialData,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			fetcher := new(mockFetcher)
			fetcher.On("FetchRepositories", mock.Anything, "any-user", PageSize).Return(tc.mockRepos, tc.mockReposErr)
			for _, repo := range FilterOriginal(tc.mockRepos) {
				if err, ok := tc.mockLangErr[repo.ID]; ok {
					fetcher.On("FetchLanguageBytes", mock.Anything, repo).Return(nil, err).Maybe()
					continue
				}
				fetcher.On("FetchLanguageBytes", mock.Anything, repo).Return(tc.mockLanguages[repo.ID], nil).Maybe()
			}

			aggregator := NewLanguageAggregator(fetcher, discardLogger(), 2)

			// --- Act ---
			results, err := aggregator.Aggregate(context.Background(), "any-user")

			// --- Assert ---
			if tc.expectedKind != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedKind)
				if tc.expectedKind != gateway.ErrPartialData {
					assert.NotErrorIs(t, err, gateway.ErrPartialData)
				}
				assert.Equal(t, gateway.MsgLanguagesIncomplete, err.Error())
				assert.Nil(t, results)
			} else {
				require.NoError(t, err)
				require.Len(t, results, len(tc.expectedResult))
				for i, want := range tc.expectedResult {
					assert.Equal(t, want.Language, results[i].Language)
					assert.InDelta(t, want.Percentage, results[i].Percentage, 1e-9)
				}
			}
			fetcher.AssertNotCalled(t, "FetchLanguageBytes", mock.Anything, forked)
			fetcher.AssertNotCalled(t, "FetchLanguageBytes", mock.Anything, archived)
		})
	}
}

func TestSharesFromBytes(t *testing.T) {
	t.Run("percentages sum to 100", func(t *testing.T) {
		shares := SharesFromBytes(
			domain.LanguageBytes{{Language: "Go", Bytes: 12345}, {Language: "Rust", Bytes: 777}},
			domain.LanguageBytes{{Language: "Python", Bytes: 3}, {Language: "Go", Bytes: 1}},
			domain.LanguageBytes{{Language: "Makefile", Bytes: 99}},
		)
		var sum float64
		for _, s := range shares {
			sum += s.Percentage
			assert.GreaterOrEqual(t, s.Percentage, 0.0)
			assert.LessOrEqual(t, s.Percentage, 100.0)
		}
		assert.InEpsilon(t, 100.0, sum, 1e-6)
	})

	t.Run("sorted descending with first-seen tie order", func(t *testing.T) {
		shares := SharesFromBytes(
			domain.LanguageBytes{{Language: "Shell", Bytes: 10}, {Language: "Go", Bytes: 80}},
			domain.LanguageBytes{{Language: "C", Bytes: 10}},
		)
		require.Len(t, shares, 3)
		assert.Equal(t, []string{"Go", "Shell", "C"}, languagesOf(shares))
		for i := 1; i < len(shares); i++ {
			assert.GreaterOrEqual(t, shares[i-1].Percentage, shares[i].Percentage)
		}
	})

	t.Run("zero total yields empty", func(t *testing.T) {
		assert.Empty(t, SharesFromBytes())
		assert.Empty(t, SharesFromBytes(domain.LanguageBytes{{Language: "Go", Bytes: 0}}))
	})

	t.Run("shares are exact ratios of the byte totals", func(t *testing.T) {
		shares := SharesFromBytes(
			domain.LanguageBytes{{Language: "Go", Bytes: 1 << 40}},
			domain.LanguageBytes{{Language: "Go", Bytes: 1 << 40}, {Language: "Rust", Bytes: 1 << 40}},
			domain.LanguageBytes{{Language: "Rust", Bytes: 0}, {Language: "C", Bytes: 1 << 41}},
		)
		assert.Equal(t, []domain.LanguageShare{
			{Language: "Go", Percentage: 40},
			{Language: "C", Percentage: 40},
			{Language: "Rust", Percentage: 20},
		}, shares)
	})

	t.Run("single language is 100 percent", func(t *testing.T) {
		shares := SharesFromBytes(domain.LanguageBytes{{Language: "Go", Bytes: math.MaxInt32}})
		require.Len(t, shares, 1)
		assert.InDelta(t, 100.0, shares[0].Percentage, 1e-9)
	})
}

func languagesOf(shares []domain.LanguageShare) []string {
	out := make([]string, 0, len(shares))
	for _, s := range shares {
		out = append(out, s.Language)
	}
	return out
}
