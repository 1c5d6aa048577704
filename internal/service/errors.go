package service

import "errors"

// Failure taxonomy for the detection pipeline. Handlers map these onto HTTP
// status codes with errors.Is; infrastructure failures are never folded into a
// "no match" result, so an outage cannot masquerade as a safe conversation.
var (
	// ErrEmptyInput means the caller sent empty or whitespace-only
	// conversation text. User-correctable.
	ErrEmptyInput = errors.New("conversation text is empty")

	// ErrEncoding means the embedding service is unavailable or returned an
	// unusable vector. Fatal for the current call, not retried here.
	ErrEncoding = errors.New("text encoding failed")

	// ErrStoreUnavailable means the similarity store is unreachable or the
	// index is missing unexpectedly.
	ErrStoreUnavailable = errors.New("similarity store unavailable")

	// ErrTimeout means a dependency call exceeded its configured bound.
	// Transient; the caller may retry.
	ErrTimeout = errors.New("dependency call timed out")
)
