package usecase

import (
	"testing"

	"github.com/naka-gawa/gitview/internal/domain"
	"github.com/stretchr/testify/assert"
)

func octocatRepos() []domain.Repository {
	return []domain.Repository{
		{Name: "Hello-World", StargazersCount: 50, ForksCount: 10, Language: "C"},
		{Name: "fork-repo", StargazersCount: 5, Fork: true, Language: "C"},
	}
}

func TestTotalStars(t *testing.T) {
	testCases := []struct {
		name     string
		repos    []domain.Repository
		expected int
	}{
		{name: "empty list", repos: nil, expected: 0},
		{name: "forks are counted", repos: octocatRepos(), expected: 55},
		{
			name: "archived are counted",
			repos: []domain.Repository{
				{StargazersCount: 1},
				{StargazersCount: 2, Archived: true},
				{StargazersCount: 0},
			},
			expected: 3,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TotalStars(tc.repos))
		})
	}
}

func TestTopLanguagesByCount(t *testing.T) {
	testCases := []struct {
		name     string
		repos    []domain.Repository
		n        int
		expected []domain.LanguageCount
	}{
		{
			name:     "octocat listing",
			repos:    octocatRepos(),
			n:        TopLanguageLimit,
			expected: []domain.LanguageCount{{Language: "C", Count: 2}},
		},
		{
			name:     "empty list",
			repos:    nil,
			n:        TopLanguageLimit,
			expected: []domain.LanguageCount{},
		},
		{
			name: "missing language contributes nothing",
			repos: []domain.Repository{
				{Language: ""},
				{Language: "Go"},
			},
			n:        TopLanguageLimit,
			expected: []domain.LanguageCount{{Language: "Go", Count: 1}},
		},
		{
			name: "ties keep first-seen order and the list is truncated",
			repos: []domain.Repository{
				{Language: "Ruby"},
				{Language: "Go"},
				{Language: "Python"},
				{Language: "Go"},
				{Language: "Rust"},
				{Language: "Java"},
				{Language: "C"},
			},
			n: 3,
			expected: []domain.LanguageCount{
				{Language: "Go", Count: 2},
				{Language: "Ruby", Count: 1},
				{Language: "Python", Count: 1},
			},
		},
		{
			name:     "non-positive n",
			repos:    octocatRepos(),
			n:        0,
			expected: []domain.LanguageCount{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := TopLanguagesByCount(tc.repos, tc.n)
			assert.Equal(t, tc.expected, got)
			assert.LessOrEqual(t, len(got), max(tc.n, 0))
			for i := 1; i < len(got); i++ {
				assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(octocatRepos())
	assert.Equal(t, domain.Summary{
		TotalStars:   55,
		MedianStars:  27.5,
		TopLanguages: []domain.LanguageCount{{Language: "C", Count: 2}},
	}, summary)
}

func TestMedianStars(t *testing.T) {
	testCases := []struct {
		name     string
		repos    []domain.Repository
		expected float64
	}{
		{name: "empty list", repos: nil, expected: 0},
		{name: "even count averages the middle pair", repos: octocatRepos(), expected: 27.5},
		{
			name: "odd count ignores outliers",
			repos: []domain.Repository{
				{StargazersCount: 9000},
				{StargazersCount: 1},
				{StargazersCount: 4},
			},
			expected: 4,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MedianStars(tc.repos))
		})
	}
}

func TestFilterOriginal(t *testing.T) {
	repos := []domain.Repository{
		{Name: "a"},
		{Name: "b", Fork: true},
		{Name: "c", Archived: true},
		{Name: "d", Fork: true, Archived: true},
		{Name: "e"},
	}

	filtered := FilterOriginal(repos)
	assert.Equal(t, []domain.Repository{{Name: "a"}, {Name: "e"}}, filtered)
	assert.Equal(t, filtered, FilterOriginal(filtered), "filtering must be idempotent")
	assert.Len(t, repos, 5, "input must not be modified")
	assert.Empty(t, FilterOriginal(nil))
}
