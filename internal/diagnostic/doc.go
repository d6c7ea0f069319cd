// Package diagnostic defines the failure vocabulary of the composition
// engine. Every failure is a one-shot, non-retryable error naming the
// offending type or rendered constructor text; categories are sentinel
// errors so callers can classify with errors.Is. "No matching resolver"
// diagnostics optionally carry nearest-name suggestions.
package diagnostic
