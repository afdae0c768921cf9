package domain

import "encoding/json"

// QueryState identifies which variant of a QueryResult is active.
type QueryState int

const (
	StateNotStarted QueryState = iota
	StateLoading
	StateSuccess
	StateFailure
)

func (s QueryState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// QueryResult is the outcome of the latest search. Exactly one state is
// active; build values with the constructors below so that Profile and
// Repositories are only set on success and Reason only on failure.
type QueryResult struct {
	State        QueryState
	Username     string
	Profile      *UserProfile
	Repositories []Repository
	Reason       string
}

// NotStarted is the result of a session before any search.
func NotStarted() QueryResult {
	return QueryResult{State: StateNotStarted}
}

// Loading is the result while the search for username is in flight.
func Loading(username string) QueryResult {
	return QueryResult{State: StateLoading, Username: username}
}

// Success is the result of a search whose profile and repository fetches both succeeded.
func Success(profile *UserProfile, repos []Repository) QueryResult {
	if repos == nil {
		repos = []Repository{}
	}
	result := QueryResult{
		State:        StateSuccess,
		Profile:      profile,
		Repositories: repos,
	}
	if profile != nil {
		result.Username = profile.Login
	}
	return result
}

// Failure is the result of a search that failed with reason.
func Failure(reason string) QueryResult {
	if reason == "" {
		reason = "Unknown error"
	}
	return QueryResult{State: StateFailure, Reason: reason}
}

// MarshalJSON encodes only the fields of the active variant.
func (r QueryResult) MarshalJSON() ([]byte, error) {
	out := struct {
		State        string       `json:"state"`
		Username     string       `json:"username,omitempty"`
		Profile      *UserProfile `json:"profile,omitempty"`
		Repositories []Repository `json:"repositories,omitempty"`
		Reason       string       `json:"reason,omitempty"`
	}{
		State:    r.State.String(),
		Username: r.Username,
		Reason:   r.Reason,
	}
	if r.State == StateSuccess {
		out.Profile = r.Profile
		out.Repositories = r.Repositories
	}
	return json.Marshal(out)
}
