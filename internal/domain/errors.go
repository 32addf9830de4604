package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind is the closed set of failure categories surfaced by the core.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindStore
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStore:
		return "store"
	case KindUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// Violation is a single broken input rule.
type Violation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (v Violation) String() string {
	return v.Field + " " + v.Rule
}

// ValidationError reports every rule a candidate failed.
type ValidationError struct {
	Violations []Violation
	Err        error // decoding cause, nil for rule failures
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "invalid favorite"
	}
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.String())
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Fields returns field -> rule, for clients that prefer a map.
func (e *ValidationError) Fields() map[string]string {
	fields := make(map[string]string, len(e.Violations))
	for _, v := range e.Violations {
		fields[v.Field] = v.Rule
	}
	return fields
}

// NewValidationError builds a ValidationError with a single violation.
func NewValidationError(field, rule string) *ValidationError {
	return &ValidationError{Violations: []Violation{{Field: field, Rule: rule}}}
}

// StoreError is returned when the favorites store is unreachable or rejects an operation.
type StoreError struct {
	Op  string // insert, list, ping
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("favorites store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError wraps err as a StoreError, unless it already is one.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// UpstreamError is returned when a catalog fetch fails.
type UpstreamError struct {
	Resource string // films, people
	Status   int    // upstream HTTP status, 0 when no response was received
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("catalog %s: status %d: %v", e.Resource, e.Status, e.Err)
	}
	return fmt.Sprintf("catalog %s: %v", e.Resource, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Timeout reports whether the upstream call ran out of time.
func (e *UpstreamError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// KindOf classifies err.
func KindOf(err error) Kind {
	var (
		ve *ValidationError
		se *StoreError
		ue *UpstreamError
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &ve):
		return KindValidation
	case errors.As(err, &se):
		return KindStore
	case errors.As(err, &ue):
		return KindUpstream
	default:
		return KindUnknown
	}
}
