package gateway

import (
	"errors"
	"net/http"

	"github.com/google/go-github/v62/github"
)

// Error kinds returned by the gateway and the use cases built on it.
// Test for them with errors.Is.
var (
	ErrNotFound    = errors.New("not found")
	ErrRateLimited = errors.New("rate limited or transient upstream failure")
	ErrNetwork     = errors.New("network error")
	ErrPartialData = errors.New("partial language data")
)

// User-facing messages. The not-found message must stay distinct from the others.
const (
	MsgUserNotFound        = "User not found"
	MsgUserFetchFailed     = "Failed to fetch user data, As Api is rate limited. Please try again later."
	MsgReposFetchFailed    = "Failed to fetch repositories"
	MsgLanguagesIncomplete = "Failed to fetch language statistics"
)

// FetchError carries a human-readable message for the presentation layer
// together with its kind and the underlying cause.
type FetchError struct {
	Kind    error
	Message string
	Err     error
}

// Error returns the user-facing message.
func (e *FetchError) Error() string {
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// classify maps a go-github error to one of the gateway kinds.
// Anything without an HTTP status, including context cancellation, is a network error.
func classify(err error) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var respErr *github.ErrorResponse
	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		return ErrRateLimited
	case errors.As(err, &respErr):
		if respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound {
			return ErrNotFound
		}
		return ErrRateLimited
	default:
		return ErrNetwork
	}
}

// Cause returns the innermost error behind any FetchError layers, for logging.
func Cause(err error) error {
	var fe *FetchError
	for errors.As(err, &fe) && fe.Err != nil {
		err = fe.Err
	}
	return err
}

// KindOf returns the kind of the outermost FetchError in err's chain.
// Errors that carry no kind are network errors.
func KindOf(err error) error {
	var fe *FetchError
	if errors.As(err, &fe) && fe.Kind != nil {
		return fe.Kind
	}
	return ErrNetwork
}
