package usecase

import "github.com/naka-gawa/gitview/internal/domain"

// FilterOriginal returns the repositories that are neither forks nor archived,
// in their original order. The input slice is not modified.
func FilterOriginal(repos []domain.Repository) []domain.Repository {
	out := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		if !r.Fork && !r.Archived {
			out = append(out, r)
		}
	}
	return out
}
