// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying client library.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/gitview/internal/domain"
)

// DefaultBaseURL is the public GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com/"

// MaxPageSize is the largest page the repository listing endpoint serves.
const MaxPageSize = 100

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchProfile(ctx context.Context, username string) (*domain.UserProfile, error)
	// FetchRepositories returns the first page of the user's repositories, most recently
	// updated first. The result may be a prefix of the full set.
	FetchRepositories(ctx context.Context, username string, pageSize int) ([]domain.Repository, error)
	FetchLanguageBytes(ctx context.Context, repo domain.Repository) (domain.LanguageBytes, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// Requests are unauthenticated and bounded by timeout; baseURL may point at a
// GitHub Enterprise or test server.
func NewGitHubGateway(baseURL string, timeout time.Duration, logger *log.Logger) (Fetcher, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse API base URL %q: %w", baseURL, err)
	}
	client := github.NewClient(&http.Client{Timeout: timeout})
	client.BaseURL = parsed
	client.UserAgent = "gitview"
	return &GitHubGateway{
		restClient: client,
		logger:     logger,
	}, nil
}

func (g *GitHubGateway) FetchProfile(ctx context.Context, username string) (*domain.UserProfile, error) {
	g.logger.Debug("Fetching profile", "user", username)
	if username == "" {
		return nil, &FetchError{Kind: ErrNotFound, Message: MsgUserNotFound}
	}
	user, _, err := g.restClient.Users.Get(ctx, username)
	if err != nil {
		kind := classify(err)
		msg := MsgUserFetchFailed
		if kind == ErrNotFound {
			msg = MsgUserNotFound
		}
		g.logger.Debug("Profile fetch failed", "user", username, "err", err)
		return nil, &FetchError{Kind: kind, Message: msg, Err: err}
	}
	return &domain.UserProfile{
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		AvatarURL:   user.GetAvatarURL(),
		Bio:         user.GetBio(),
		Location:    user.GetLocation(),
		Blog:        user.GetBlog(),
		PublicRepos: user.GetPublicRepos(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
	}, nil
}

func (g *GitHubGateway) FetchRepositories(ctx context.Context, username string, pageSize int) ([]domain.Repository, error) {
	pageSize = min(max(pageSize, 1), MaxPageSize)
	g.logger.Debug("Fetching repositories", "user", username, "per_page", pageSize)
	opts := &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: pageSize},
	}
	// Only the first page is read.
	repos, _, err := g.restClient.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		g.logger.Debug("Repository fetch failed", "user", username, "err", err)
		return nil, &FetchError{Kind: classify(err), Message: MsgReposFetchFailed, Err: err}
	}
	result := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		result = append(result, domain.Repository{
			ID:              r.GetID(),
			Name:            r.GetName(),
			Description:     r.GetDescription(),
			Language:        r.GetLanguage(),
			StargazersCount: r.GetStargazersCount(),
			ForksCount:      r.GetForksCount(),
			HTMLURL:         r.GetHTMLURL(),
			UpdatedAt:       r.GetUpdatedAt().Time,
			Fork:            r.GetFork(),
			Archived:        r.GetArchived(),
			LanguagesURL:    r.GetLanguagesURL(),
		})
	}
	g.logger.Debug("Completed fetching repositories", "user", username, "count", len(result))
	return result, nil
}

func (g *GitHubGateway) FetchLanguageBytes(ctx context.Context, repo domain.Repository) (domain.LanguageBytes, error) {
	if repo.LanguagesURL == "" {
		return nil, &FetchError{
			Kind:    ErrNetwork,
			Message: MsgLanguagesIncomplete,
			Err:     fmt.Errorf("repository %q has no languages URL", repo.Name),
		}
	}
	req, err := g.restClient.NewRequest(http.MethodGet, repo.LanguagesURL, nil)
	if err != nil {
		return nil, &FetchError{Kind: ErrNetwork, Message: MsgLanguagesIncomplete, Err: err}
	}
	// Decoded by hand so that the upstream key order survives.
	var raw json.RawMessage
	if _, err := g.restClient.Do(ctx, req, &raw); err != nil {
		return nil, &FetchError{Kind: classify(err), Message: MsgLanguagesIncomplete, Err: err}
	}
	langs, err := decodeLanguageBytes(raw)
	if err != nil {
		return nil, &FetchError{
			Kind:    ErrNetwork,
			Message: MsgLanguagesIncomplete,
			Err:     fmt.Errorf("failed to decode languages of %s: %w", repo.Name, err),
		}
	}
	g.logger.Debug("Fetched languages", "repo", repo.Name, "languages", len(langs), "bytes", langs.Total())
	return langs, nil
}

// decodeLanguageBytes parses a {"Go": 1234, ...} document, keeping key order.
func decodeLanguageBytes(raw []byte) (domain.LanguageBytes, error) {
	out := domain.LanguageBytes{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		lang, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", tok)
		}
		var n int64
		if err := dec.Decode(&n); err != nil {
			return nil, fmt.Errorf("byte count for %s: %w", lang, err)
		}
		out = append(out, domain.LanguageByteCount{Language: lang, Bytes: n})
	}
	return out, nil
}
