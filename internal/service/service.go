package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/internal/client"
	"github.com/noah-isme/educa-portal/internal/dispatcher"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/session"
	"github.com/noah-isme/educa-portal/internal/validation"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

// Deps are shared by every view service.
type Deps struct {
	API        *client.Client
	Sessions   *session.Manager
	Dispatcher *dispatcher.Dispatcher
	Validator  *validation.Validator
	Logger     *zap.Logger
}

// Outcome is the result of a mutation: the data to render plus the notice
// for the user.
type Outcome struct {
	Message string         `json:"message"`
	Data    interface{}    `json:"data,omitempty"`
	Notice  *models.Notice `json:"notice,omitempty"`
	OpID    string         `json:"opId,omitempty"`
}

type base struct {
	api       *client.Client
	sessions  *session.Manager
	dispatch  *dispatcher.Dispatcher
	validator *validation.Validator
	logger    *zap.Logger
}

func newBase(deps Deps, name string) base {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	validator := deps.Validator
	if validator == nil {
		validator = validation.New()
	}
	dispatch := deps.Dispatcher
	if dispatch == nil {
		dispatch = dispatcher.New(deps.Sessions, validator, logger, dispatcher.WithPDFSource(deps.API))
	}
	return base{
		api:       deps.API,
		sessions:  deps.Sessions,
		dispatch:  dispatch,
		validator: validator,
		logger:    logger.With(zap.String("service", name)),
	}
}

// token resolves the credential for a read; missing credentials are logged
// by the dispatcher.
func (b base) token(ctx context.Context, sid, op string) (string, error) {
	return b.dispatch.Token(ctx, sid, op)
}

// outcome turns a dispatcher result into what the handler renders.
func outcome(res dispatcher.Result, data interface{}) (*Outcome, error) {
	if res.Err != nil {
		if res.Notice == nil {
			return nil, res.Err
		}
		appErr := appErrors.FromError(res.Err)
		clone := *appErr
		clone.Message = res.Notice.Message
		return nil, &clone
	}
	return &Outcome{Message: res.Message, Data: data, Notice: res.Notice, OpID: res.OpID}, nil
}

// parallel runs independent fetches concurrently and returns the first
// error in argument order. Each fetch writes only its own result.
func parallel(fetches ...func() error) error {
	errs := make([]error, len(fetches))
	var wg sync.WaitGroup
	for i, fetch := range fetches {
		wg.Add(1)
		go func(i int, fetch func() error) {
			defer wg.Done()
			errs[i] = fetch()
		}(i, fetch)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
