package core

import "fmt"

// ErrorKind classifies a data-source failure into the taxonomy the
// fallback engine and tool façades reason about. It mirrors the
// exception hierarchy the system was distilled from, flattened into a
// Go-idiomatic sum type instead of a class tree.
type ErrorKind string

const (
	KindTimeout   ErrorKind = "timeout"
	KindRateLimit ErrorKind = "rate_limit"
	KindAuth      ErrorKind = "auth"
	KindNotFound  ErrorKind = "not_found"
	KindTransport ErrorKind = "transport"
	KindDecode    ErrorKind = "decode"
)

// DataSourceError is one adapter's failure. It is caught and collected
// by the fallback engine, never propagated raw to a tool façade.
type DataSourceError struct {
	Source  string
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Source, e.Kind, e.Message)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// NewDataSourceError builds a DataSourceError, wrapping a cause when
// present.
func NewDataSourceError(source string, kind ErrorKind, message string, cause error) *DataSourceError {
	return &DataSourceError{Source: source, Kind: kind, Message: message, Err: cause}
}

// AllSourcesFailedError means a fallback chain is exhausted. The tool
// façade catches this and converts it into an envelope warning; it does
// not propagate to a transport as a hard failure.
type AllSourcesFailedError struct {
	Capability string
	Errors     map[string]string // source name -> reason
}

func (e *AllSourcesFailedError) Error() string {
	msg := fmt.Sprintf("all sources failed for %s:", e.Capability)
	for source, reason := range e.Errors {
		msg += fmt.Sprintf("\n  - %s: %s", source, reason)
	}
	return msg
}

// NewAllSourcesFailedError builds the error a fallback engine returns
// when every adapter in a chain declined or failed.
func NewAllSourcesFailedError(capability string, errs map[string]string) *AllSourcesFailedError {
	return &AllSourcesFailedError{Capability: capability, Errors: errs}
}

// AmbiguousSymbolError means the input did not disambiguate a
// multi-chain symbol. It surfaces as a warning unless the tool cannot
// proceed at all without disambiguation.
type AmbiguousSymbolError struct {
	Symbol  string
	Matches []string
}

func (e *AmbiguousSymbolError) Error() string {
	return fmt.Sprintf(
		"ambiguous symbol %q: multiple matches found %v; specify chain or token_address",
		e.Symbol, e.Matches,
	)
}

// ConfigurationError is a missing or malformed configuration value,
// fatal at startup.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return "configuration error: " + e.Message }

// CacheError means the cache backend is unreachable. Callers log and
// degrade silently to a cache miss; this type is never returned from a
// tool façade.
type CacheError struct {
	Op      string
	Message string
	Err     error
}

func (e *CacheError) Error() string { return fmt.Sprintf("cache %s: %s", e.Op, e.Message) }
func (e *CacheError) Unwrap() error { return e.Err }

// ValidationError means input did not satisfy a tool's declared schema.
// It is not caught by the core; transports map it to HTTP 422.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}
