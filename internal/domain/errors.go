package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures returned to callers.
type ErrorKind string

const (
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindNotFound   ErrorKind = "not_found"
	ErrorKindUpstream   ErrorKind = "upstream"
	ErrorKindAnalysis   ErrorKind = "analysis"
)

// Sentinels matched through errors.Is against any *Error of the same kind.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream failure")
	ErrAnalysis   = errors.New("analysis failed")
)

// ErrCacheMiss indicates no live cached entry was found.
var ErrCacheMiss = errors.New("cache miss")

// Error is the typed failure every orchestrated request surfaces.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the same kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == ErrorKindValidation
	case ErrNotFound:
		return e.Kind == ErrorKindNotFound
	case ErrUpstream:
		return e.Kind == ErrorKindUpstream
	case ErrAnalysis:
		return e.Kind == ErrorKindAnalysis
	}
	return false
}

// ValidationError reports bad input. No external call has been made.
func ValidationError(op, format string, args ...any) error {
	return &Error{Kind: ErrorKindValidation, Op: op, Err: fmt.Errorf(format, args...)}
}

// NotFoundError reports a referenced entity that does not exist.
func NotFoundError(op string, err error) error {
	return &Error{Kind: ErrorKindNotFound, Op: op, Err: err}
}

// UpstreamError wraps a collaborator failure, timeouts included.
func UpstreamError(op string, err error) error {
	return &Error{Kind: ErrorKindUpstream, Op: op, Err: err}
}

// AnalysisError reports an LLM response that does not match the declared schema.
func AnalysisError(op string, err error) error {
	return &Error{Kind: ErrorKindAnalysis, Op: op, Err: err}
}

// KindOf returns the error kind, or an empty kind for nil.
// Errors that are not *Error are reported as upstream.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ErrorKindUpstream
}

// classify guarantees callers only ever see an *Error.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return UpstreamError(op, err)
}
