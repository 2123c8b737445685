package db

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a Error by the layer and condition that produced it,
// letting callers branch on failure mode with errors.Is/errors.As instead
// of string-matching messages.
type ErrorKind string

const (
	// NotCached means the requested data has never been downloaded and
	// Offline mode prevents fetching it.
	NotCached ErrorKind = "not_cached"
	// DownloadFailed means a CDN fetch failed (network error, non-200, timeout).
	DownloadFailed ErrorKind = "download_failed"
	// CorruptCache means a cached file failed to decompress or parse and
	// has been deleted so the next attempt re-downloads it.
	CorruptCache ErrorKind = "corrupt_cache"
	// QueryError means DuckDB rejected or failed to execute a query.
	QueryError ErrorKind = "query_error"
	// InvalidArgument means a caller-supplied value (limit, offset, sample
	// count, identifier type, SKU/product ID, ...) failed validation before
	// reaching the query layer.
	InvalidArgument ErrorKind = "invalid_argument"
	// NotConnected means an operation was attempted on a closed Connection.
	NotConnected ErrorKind = "not_connected"
	// FeatureUnavailable means an optional engine capability is not available
	// (e.g. the driver connection cannot export results as Arrow).
	FeatureUnavailable ErrorKind = "feature_unavailable"
)

// Error is the error type returned across the db and queries packages.
// Wrap a cause with NewError so callers can recover the ErrorKind via
// errors.As, while %v/%s still prints a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("mtgjson: %s: %v", e.Message, e.Cause)
	}
	return "mtgjson: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is supports errors.Is(err, db.ErrNotCached) style checks by comparing Kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// NewError constructs an *Error of the given kind wrapping cause (may be nil).
func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Sentinel instances usable directly with errors.Is when no extra message
// or wrapped cause is needed.
var (
	ErrNotCached          = &Error{Kind: NotCached, Message: "data not cached and offline mode is enabled"}
	ErrDownloadFailed     = &Error{Kind: DownloadFailed, Message: "download failed"}
	ErrCorruptCache       = &Error{Kind: CorruptCache, Message: "cached file is corrupt"}
	ErrQuery              = &Error{Kind: QueryError, Message: "query failed"}
	ErrInvalidArgument    = &Error{Kind: InvalidArgument, Message: "invalid argument"}
	ErrNotConnected       = &Error{Kind: NotConnected, Message: "connection is closed"}
	ErrFeatureUnavailable = &Error{Kind: FeatureUnavailable, Message: "feature data unavailable"}
)
