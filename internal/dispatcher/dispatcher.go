// Package dispatcher runs user actions against the EDUCA API: it resolves the
// bearer credential, validates the payload, issues the request and applies
// the local change only once the server agrees. Deletes can be applied
// optimistically and are rolled back if the server explicitly refuses them.
package dispatcher

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/internal/client"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/registry"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

// Kind classifies an action.
type Kind string

const (
	KindCreate     Kind = "create"
	KindUpdate     Kind = "update"
	KindDelete     Kind = "delete"
	KindTransition Kind = "transition"
)

// Outcomes reported to the observer.
const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomePending   = "pending"
	OutcomeInvalid   = "invalid"
	OutcomeNoSession = "no_credential"
)

// TokenSource resolves the bearer credential of a session.
type TokenSource interface {
	Token(ctx context.Context, sid string) (string, error)
}

// Validator checks a payload before anything is sent.
type Validator interface {
	Struct(form any) error
}

// Observer counts dispatched actions.
type Observer interface {
	ObserveAction(kind, name, outcome string)
}

// Action is one mutation requested by the user.
type Action struct {
	Kind Kind
	Name string
	// Payload is validated before Do runs when non-nil.
	Payload any
	// Do issues the request and returns the server message.
	Do func(ctx context.Context, token string) (string, error)
	// Apply updates local state after the server accepted the change.
	Apply func()
	// Optimistic applies the change before the request and returns its undo.
	Optimistic func() (undo func())
	// Success is shown when the server answers without a message.
	Success string
	// Failure replaces the server message on error when set.
	Failure string
}

// Result reports what happened to an action.
type Result struct {
	OpID    string
	Message string
	Notice  *models.Notice
	Pending bool
	Err     error
}

// Dispatcher executes actions.
type Dispatcher struct {
	tokens    TokenSource
	validator Validator
	log       *Log
	observer  Observer
	logger    *zap.Logger
	pdf       PDFSource
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithObserver records action outcomes.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) { d.observer = o }
}

// WithLog shares a reconciliation log.
func WithLog(l *Log) Option {
	return func(d *Dispatcher) { d.log = l }
}

// WithPDFSource enables certificate downloads.
func WithPDFSource(src PDFSource) Option {
	return func(d *Dispatcher) { d.pdf = src }
}

// New constructs a Dispatcher.
func New(tokens TokenSource, validator Validator, logger *zap.Logger, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{tokens: tokens, validator: validator, logger: logger}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = NewLog(0)
	}
	return d
}

// Log exposes the reconciliation log.
func (d *Dispatcher) Log() *Log {
	return d.log
}

// Token resolves the credential of sid, logging when there is none.
func (d *Dispatcher) Token(ctx context.Context, sid, action string) (string, error) {
	token, err := d.tokens.Token(ctx, sid)
	if err != nil || token == "" {
		d.logger.Warn("action not attempted: no stored credential", zap.String("action", action))
		return "", appErrors.ErrMissingCredential
	}
	return token, nil
}

// Dispatch runs action for session sid. No request is issued when the
// session has no credential or the payload is invalid.
func (d *Dispatcher) Dispatch(ctx context.Context, sid string, action Action) Result {
	token, err := d.Token(ctx, sid, action.Name)
	if err != nil {
		d.observe(action, OutcomeNoSession)
		return Result{Err: err}
	}

	if action.Payload != nil && d.validator != nil {
		if err := d.validator.Struct(action.Payload); err != nil {
			d.observe(action, OutcomeInvalid)
			return Result{Err: err}
		}
	}

	var opID string
	if action.Optimistic != nil {
		opID = d.log.Record(action.Name, action.Optimistic())
	}

	start := time.Now()
	msg, err := action.Do(ctx, token)
	if err != nil {
		return d.fail(action, opID, err, time.Since(start))
	}

	if opID != "" {
		d.log.Confirm(opID)
	}
	if action.Apply != nil {
		action.Apply()
	}
	if msg == "" {
		msg = action.Success
	}
	d.observe(action, OutcomeSuccess)
	d.logger.Info("action completed", zap.String("action", action.Name), zap.String("kind", string(action.Kind)))
	res := Result{OpID: opID, Message: msg}
	if msg != "" {
		res.Notice = &models.Notice{Level: models.NoticeSuccess, Message: msg}
	}
	return res
}

func (d *Dispatcher) fail(action Action, opID string, err error, elapsed time.Duration) Result {
	res := Result{OpID: opID, Err: err}
	if errors.Is(err, appErrors.ErrMissingCredential) {
		if opID != "" {
			d.log.Rollback(opID)
		}
		d.observe(action, OutcomeNoSession)
		return res
	}

	switch {
	case opID == "":
		d.observe(action, OutcomeRejected)
	case client.IsServerRejection(err):
		d.log.Rollback(opID)
		d.observe(action, OutcomeRejected)
	default:
		// no answer from the server: the change stays applied but unconfirmed.
		// The undo closes over request-scoped state, so it is let go here.
		d.log.Release(opID)
		res.Pending = true
		d.observe(action, OutcomePending)
	}

	d.logger.Warn("action failed",
		zap.String("action", action.Name),
		zap.String("kind", string(action.Kind)),
		zap.Bool("pending", res.Pending),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	)
	msg := action.Failure
	if msg == "" {
		msg = appErrors.UserMessage(err)
	}
	res.Message = msg
	res.Notice = &models.Notice{Level: models.NoticeError, Message: msg}
	return res
}

func (d *Dispatcher) observe(action Action, outcome string) {
	if d.observer != nil {
		d.observer.ObserveAction(string(action.Kind), action.Name, outcome)
	}
}

// RemoveOptimistically returns an Optimistic hook that takes the item with id
// out of reg and puts it back at the same position on undo.
func RemoveOptimistically[T any](reg *registry.Registry[T], id models.ID) func() func() {
	return func() func() {
		idx, item, ok := reg.Take(id)
		if !ok {
			return nil
		}
		return func() { reg.Restore(idx, item) }
	}
}
