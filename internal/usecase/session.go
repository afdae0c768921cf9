package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/naka-gawa/gitview/internal/domain"
	"github.com/naka-gawa/gitview/internal/gateway"
)

// Observer is notified of every QueryResult a Session commits.
type Observer func(domain.QueryResult)

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithObserver registers fn to be called after every state transition.
// fn runs on the goroutine that caused the transition, outside the session lock.
func WithObserver(fn Observer) SessionOption {
	return func(s *Session) {
		s.observer = fn
	}
}

// Session owns the input text and the single QueryResult of one dashboard.
// A new search supersedes any search still in flight: the older one is
// canceled and its outcome is discarded.
type Session struct {
	fetcher  gateway.Fetcher
	logger   *log.Logger
	observer Observer
	notifyMu sync.Mutex

	mu         sync.Mutex
	input      string
	result     domain.QueryResult
	generation uint64
	cancel     context.CancelFunc
}

// NewSession creates a Session in the NotStarted state.
func NewSession(fetcher gateway.Fetcher, logger *log.Logger, opts ...SessionOption) *Session {
	s := &Session{
		fetcher: fetcher,
		logger:  logger,
		result:  domain.NotStarted(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetInput replaces the input text. It does not start a search.
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

// Input returns the current input text.
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// Result returns the current QueryResult.
func (s *Session) Result() domain.QueryResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Submit searches for the current input text.
func (s *Session) Submit(ctx context.Context) (domain.QueryResult, bool) {
	return s.Search(ctx, s.Input())
}

// Search loads the profile and repositories of username and blocks until the
// query resolves. A blank username is ignored and reported with false.
// The returned QueryResult is the session's state after this query finished,
// which belongs to a newer query if this one was superseded meanwhile.
func (s *Session) Search(ctx context.Context, username string) (domain.QueryResult, bool) {
	pending, ok := s.Begin(ctx, username)
	if !ok {
		return s.Result(), false
	}
	return pending.Wait(), true
}

// Pending is a search that has entered Loading but has not loaded yet.
type Pending struct {
	session  *Session
	ctx      context.Context
	cancel   context.CancelFunc
	gen      uint64
	username string
}

// Begin starts a search for username without fetching anything: it cancels
// the search in flight, moves the session to Loading and makes this search
// the newest one. Searches therefore supersede each other in the order Begin
// is called, no matter which goroutine later calls Wait.
// A blank username is ignored and reported with false.
func (s *Session) Begin(ctx context.Context, username string) (*Pending, bool) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, false
	}

	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	s.cancel = cancel
	s.result = domain.Loading(username)
	s.mu.Unlock()
	s.notify(gen, domain.Loading(username))

	return &Pending{session: s, ctx: ctx, cancel: cancel, gen: gen, username: username}, true
}

// Wait fetches the profile and repositories and commits the outcome unless a
// newer search has begun. It returns the session's state afterwards.
func (p *Pending) Wait() domain.QueryResult {
	s := p.session
	defer p.cancel()

	s.logger.Debug("Usecase: Starting search...", "user", p.username)
	outcome := s.load(p.ctx, p.username)

	s.mu.Lock()
	if p.gen != s.generation {
		current := s.result
		s.mu.Unlock()
		s.logger.Debug("Usecase: Discarding superseded search.", "user", p.username)
		return current
	}
	s.result = outcome
	s.cancel = nil
	s.mu.Unlock()
	s.notify(p.gen, outcome)

	s.logger.Debug("Usecase: Search complete.", "user", p.username, "state", outcome.State)
	return outcome
}

// load runs the profile and repository fetches in order, stopping at the first failure.
func (s *Session) load(ctx context.Context, username string) domain.QueryResult {
	profile, err := s.fetcher.FetchProfile(ctx, username)
	if err != nil {
		return domain.Failure(err.Error())
	}
	if profile == nil {
		s.logger.Warn("Usecase: Fetcher returned no profile and no error.", "user", username)
		return domain.Failure(gateway.MsgUserNotFound)
	}
	repos, err := s.fetcher.FetchRepositories(ctx, username, PageSize)
	if err != nil {
		return domain.Failure(err.Error())
	}
	return domain.Success(profile, repos)
}

// notify delivers r unless a newer search has started since it was committed.
// Deliveries are serialized so the observer never sees an older state after a newer one.
func (s *Session) notify(gen uint64, r domain.QueryResult) {
	if s.observer == nil {
		return
	}
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.mu.Lock()
	stale := gen != s.generation
	s.mu.Unlock()
	if stale {
		return
	}
	s.observer(r)
}
