package usecase

import (
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/gitview/internal/domain"
)

// TopLanguageLimit is the default number of entries in TopLanguagesByCount.
const TopLanguageLimit = 5

// TotalStars sums the star counts of every repository, forks and archived ones included.
func TotalStars(repos []domain.Repository) int {
	total := 0
	for _, r := range repos {
		total += r.StargazersCount
	}
	return total
}

// MedianStars returns the median star count per repository, or 0 for an empty list.
func MedianStars(repos []domain.Repository) float64 {
	stars := make(stats.Float64Data, 0, len(repos))
	for _, r := range repos {
		stars = append(stars, float64(r.StargazersCount))
	}
	median, err := stars.Median()
	if err != nil {
		return 0
	}
	return median
}

// TopLanguagesByCount counts repositories per primary language and returns
// the n most common, most frequent first. Ties keep first-seen order.
// Repositories without a primary language are ignored.
func TopLanguagesByCount(repos []domain.Repository, n int) []domain.LanguageCount {
	if n <= 0 {
		return []domain.LanguageCount{}
	}
	index := make(map[string]int)
	counts := []domain.LanguageCount{}
	for _, r := range repos {
		if r.Language == "" {
			continue
		}
		i, ok := index[r.Language]
		if !ok {
			i = len(counts)
			index[r.Language] = i
			counts = append(counts, domain.LanguageCount{Language: r.Language})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// Summarize computes the summary statistics shown next to a profile.
func Summarize(repos []domain.Repository) domain.Summary {
	return domain.Summary{
		TotalStars:   TotalStars(repos),
		MedianStars:  MedianStars(repos),
		TopLanguages: TopLanguagesByCount(repos, TopLanguageLimit),
	}
}
