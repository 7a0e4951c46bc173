package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

// Manager is the session provider. Absent, expired and unreadable records
// all mean "not authenticated".
type Manager struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewManager constructs a Manager.
func NewManager(store Store, ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, ttl: ttl, logger: logger, now: time.Now}
}

// NewID returns a fresh opaque session id.
func (m *Manager) NewID() string {
	return uuid.NewString()
}

func (m *Manager) load(ctx context.Context, sid string) (*Record, error) {
	if sid == "" {
		return nil, appErrors.ErrNoSession
	}
	rec, err := m.store.Get(ctx, sid)
	if err != nil {
		if !errors.Is(err, appErrors.ErrNoSession) {
			m.logger.Warn("session store read failed", zap.String("session", shortID(sid)), zap.Error(err))
		}
		return nil, appErrors.ErrNoSession
	}
	return rec, nil
}

// Token returns the bearer credential of the session.
func (m *Manager) Token(ctx context.Context, sid string) (string, error) {
	rec, err := m.load(ctx, sid)
	if err != nil {
		return "", appErrors.ErrMissingCredential
	}
	if rec.AccessToken == "" {
		return "", appErrors.ErrMissingCredential
	}
	return rec.AccessToken, nil
}

// Profile returns the cached user profile of the session.
func (m *Manager) Profile(ctx context.Context, sid string) (*Profile, error) {
	rec, err := m.load(ctx, sid)
	if err != nil {
		return nil, err
	}
	profile := rec.Profile
	return &profile, nil
}

// SetSession replaces whatever was stored under sid.
func (m *Manager) SetSession(ctx context.Context, sid string, rec Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = m.now().UTC()
	}
	if err := m.store.Set(ctx, sid, rec, m.ttl); err != nil {
		m.logger.Error("session store write failed", zap.String("session", shortID(sid)), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session")
	}
	return nil
}

// ClearSession forgets the session. Store failures are logged only.
func (m *Manager) ClearSession(ctx context.Context, sid string) {
	if sid == "" {
		return
	}
	if err := m.store.Delete(ctx, sid); err != nil {
		m.logger.Warn("session store delete failed", zap.String("session", shortID(sid)), zap.Error(err))
	}
}

// IDs lists every stored session id.
func (m *Manager) IDs(ctx context.Context) ([]string, error) {
	return m.store.IDs(ctx)
}

// shortID keeps session ids out of logs in full.
func shortID(sid string) string {
	if len(sid) <= 8 {
		return sid
	}
	return sid[:8]
}
