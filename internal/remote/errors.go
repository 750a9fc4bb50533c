package remote

import "errors"

var (
	// ErrRemoteUnavailable indicates the document store is unreachable or
	// refused the call. Non-critical checks degrade gracefully on this;
	// a final submission fails and is retried only by explicit user
	// action.
	ErrRemoteUnavailable = errors.New("remote document store unavailable")

	// ErrTimeout indicates the remote call exceeded its deadline.
	ErrTimeout = errors.New("remote request timed out")
)
