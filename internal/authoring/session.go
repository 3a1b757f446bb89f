// Package authoring drives one create or edit dialog from draft to
// submission: validate everything, send exactly one request, and fold any
// server field errors back into the same ErrorMap.
package authoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gigaversity/gigaadmin/internal/api"
	"github.com/gigaversity/gigaadmin/internal/form"
)

// State is the position of a session in its lifecycle.
type State int

const (
	Editing State = iota
	Validating
	Submitting
	Closed
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("submission already in progress")
	// ErrClosed is returned once the session succeeded or was cancelled.
	ErrClosed = errors.New("authoring session is closed")
)

// InvalidError reports a draft that failed validation. Err is nil when the
// draft was rejected locally and holds the API error when the server
// rejected it.
type InvalidError struct {
	Fields form.ErrorMap
	Err    error
}

func (e *InvalidError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("server rejected %d field(s): %v", len(e.Fields), e.Err)
	}
	return fmt.Sprintf("form has %d invalid field(s)", len(e.Fields))
}

func (e *InvalidError) Unwrap() error { return e.Err }

// ValidateFunc checks a whole draft in one pass.
type ValidateFunc[D any] func(D) form.ErrorMap

// SubmitFunc sends a valid draft and returns the stored entity.
type SubmitFunc[D, R any] func(ctx context.Context, draft D) (R, error)

// Session is one authoring dialog. It is safe for concurrent use: a
// second Submit while one is in flight fails with ErrBusy.
type Session[D, R any] struct {
	name     string
	validate ValidateFunc[D]
	submit   SubmitFunc[D, R]
	busy     atomic.Bool

	mu     sync.Mutex
	state  State
	errors form.ErrorMap
}

// New creates a session in the Editing state. name is used in logs.
func New[D, R any](name string, validate ValidateFunc[D], submit SubmitFunc[D, R]) *Session[D, R] {
	return &Session[D, R]{
		name:     name,
		validate: validate,
		submit:   submit,
		errors:   form.ErrorMap{},
	}
}

// State returns the current state.
func (s *Session[D, R]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Errors returns a copy of the current ErrorMap.
func (s *Session[D, R]) Errors() form.ErrorMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(form.ErrorMap, len(s.errors))
	out.Merge(s.errors)
	return out
}

// Touch clears the errors of path and everything under it, the way a
// field's message disappears once it is edited.
func (s *Session[D, R]) Touch(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors.ClearPrefix(path)
}

// Check validates draft without sending it and records the result, as a
// form does when a field loses focus. It holds the busy flag like Submit,
// so the two never overlap.
func (s *Session[D, R]) Check(draft D) (form.ErrorMap, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.busy.Store(false)

	if !s.transition(Validating) {
		return nil, ErrClosed
	}
	errs := s.validate(draft)
	s.finish(Editing, errs)
	return s.Errors(), nil
}

// Submit validates draft and, when it is valid, dispatches it once.
func (s *Session[D, R]) Submit(ctx context.Context, draft D) (R, error) {
	var zero R
	if !s.busy.CompareAndSwap(false, true) {
		return zero, ErrBusy
	}
	defer s.busy.Store(false)

	if !s.transition(Validating) {
		return zero, ErrClosed
	}

	errs := s.validate(draft)
	if !errs.Valid() {
		s.finish(Editing, errs)
		slog.Debug("draft invalid", "form", s.name, "errors", len(errs))
		return zero, &InvalidError{Fields: errs}
	}

	s.finish(Submitting, form.ErrorMap{})
	result, err := s.submit(ctx, draft)
	if err != nil {
		if fields := api.FieldErrors(err); fields != nil {
			s.finish(Editing, fields)
			slog.Info("server rejected draft", "form", s.name, "errors", len(fields))
			return zero, &InvalidError{Fields: fields, Err: err}
		}
		s.finish(Editing, form.ErrorMap{})
		slog.Warn("submit failed", "form", s.name, "error", err)
		return zero, fmt.Errorf("submitting %s: %w", s.name, err)
	}

	s.finish(Closed, form.ErrorMap{})
	slog.Info("draft submitted", "form", s.name)
	return result, nil
}

// Cancel discards the dialog. Cancelling twice is harmless.
func (s *Session[D, R]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Closed
	s.errors = form.ErrorMap{}
}

func (s *Session[D, R]) transition(to State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Closed {
		return false
	}
	s.state = to
	return true
}

func (s *Session[D, R]) finish(to State, errs form.ErrorMap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Closed {
		return
	}
	s.state = to
	s.errors = errs
}
