package models

import (
	"errors"
	"fmt"
)

// ErrNoResults signals that the search fan-out produced zero hits. It is a
// hard stop for the discovery pipeline: matching against an empty corpus
// hallucinates, so the caller should broaden the input rather than retry.
var ErrNoResults = errors.New("no search results found")

// ConfigError reports a missing key or model selection. It is fatal to the
// specific action, not to the process.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// UpstreamError wraps a failed search or LLM call after the retry budget
// was exhausted. Per-item callers convert it into a soft failure.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// UnparseableError means the LLM output did not match the expected shape
// even after repair. Raw carries the original text for manual inspection.
type UnparseableError struct {
	Op  string
	Raw string
	Err error
}

func (e *UnparseableError) Error() string {
	return fmt.Sprintf("unparseable %s response: %v", e.Op, e.Err)
}

func (e *UnparseableError) Unwrap() error { return e.Err }
