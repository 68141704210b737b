// ABOUTME: Domain-level sentinel errors for the newsforge pipelines
// ABOUTME: These errors are used with errors.Is() for error type checking
package domain

import "errors"

// Model-call errors
var (
	// ErrMissingAPIKey indicates live mode was requested without credentials
	ErrMissingAPIKey = errors.New("LLM API key is not configured")

	// ErrUnexpectedShape indicates the model response had no usable text segment
	ErrUnexpectedShape = errors.New("model response has unexpected shape")
)

// Trend-scrape errors
var (
	// ErrHotListStatus indicates the aggregator answered with a non-success status
	ErrHotListStatus = errors.New("hot list fetch returned non-success status")

	// ErrNoItems indicates the aggregator page parsed to zero usable items
	ErrNoItems = errors.New("hot list contained no items")
)
