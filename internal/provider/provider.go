// Package provider wraps the closed set of generation backends behind a
// single capability interface. The execution graph picks a variant from
// the selection table using the router's tier; it never inspects
// concrete types at runtime.
package provider

// #region imports
import (
	"context"
)

// #endregion

// #region request

// Request is one logical "generate given context" call.
type Request struct {
	Prompt      string
	System      string  // optional system/instruction text
	MaxTokens   int     // 0 = provider default
	Temperature float64 // <0 = provider default
}

// #endregion

// #region result

// Status is the typed outcome of a generation call. Fallback logic
// branches on it explicitly instead of driving control flow through
// errors.
type Status string

const (
	StatusSuccess       Status = "success"
	StatusEmpty         Status = "empty"          // provider answered with nothing usable
	StatusProviderError Status = "provider_error" // transport or backend failure
)

// Result carries the outcome of one generation call. Err is set only
// when Status is StatusProviderError.
type Result struct {
	Status Status
	Text   string
	Err    error
}

// Ok reports whether the result carries usable text.
func (r Result) Ok() bool {
	return r.Status == StatusSuccess
}

// #endregion

// #region interface

// Provider is the capability interface every backend variant implements.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) Result
}

// #endregion
