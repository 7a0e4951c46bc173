// Package guard decides whether a session may open a role-restricted view.
package guard

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/internal/client"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/session"
)

// Reason explains a denied check.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonNoCredential Reason = "no_credential"
	ReasonExpired      Reason = "expired"
	ReasonRejected     Reason = "rejected"
	ReasonUnreachable  Reason = "unreachable"
	ReasonRoleMismatch Reason = "role_mismatch"
)

// Sessions is the part of the session provider the guard needs.
type Sessions interface {
	Token(ctx context.Context, sid string) (string, error)
	Profile(ctx context.Context, sid string) (*session.Profile, error)
	ClearSession(ctx context.Context, sid string)
	IDs(ctx context.Context) ([]string, error)
}

// Verifier asks the API whether a token is still valid.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) error
}

// Observer counts check outcomes.
type Observer interface {
	ObserveSessionCheck(outcome string)
}

// Decision is the outcome of Check.
type Decision struct {
	Allowed  bool
	Reason   Reason
	Redirect string
	Profile  *session.Profile
}

// Guard runs the credential and role checks.
type Guard struct {
	sessions  Sessions
	verifier  Verifier
	loginPath string
	observer  Observer
	logger    *zap.Logger
	now       func() time.Time
}

// Option customises a Guard.
type Option func(*Guard)

// WithObserver records check outcomes.
func WithObserver(o Observer) Option {
	return func(g *Guard) { g.observer = o }
}

// WithClock replaces the clock used for the expiry pre-check.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) { g.now = now }
}

// New constructs a Guard redirecting to loginPath.
func New(sessions Sessions, verifier Verifier, loginPath string, logger *zap.Logger, opts ...Option) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loginPath == "" {
		loginPath = "/login"
	}
	g := &Guard{sessions: sessions, verifier: verifier, loginPath: loginPath, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// LoginPath is where denied requests are sent.
func (g *Guard) LoginPath() string {
	return g.loginPath
}

// Check validates the stored credential of sid and then, independently,
// that the cached user type matches required.
func (g *Guard) Check(ctx context.Context, sid string, required models.Role) Decision {
	if reason := g.Verify(ctx, sid); reason != ReasonNone {
		return g.deny(reason)
	}

	profile, err := g.sessions.Profile(ctx, sid)
	if err != nil || profile.UserType != required {
		got := ""
		if profile != nil {
			got = string(profile.UserType)
		}
		g.logger.Info("role mismatch", zap.String("required", string(required)), zap.String("userType", got))
		return g.deny(ReasonRoleMismatch)
	}
	g.observe("allowed")
	return Decision{Allowed: true, Profile: profile}
}

// Verify runs the credential checks only. Sessions whose credential is
// expired or refused by the server are cleared. When the server cannot be
// reached the request is denied but the session is kept.
func (g *Guard) Verify(ctx context.Context, sid string) Reason {
	token, err := g.sessions.Token(ctx, sid)
	if err != nil || token == "" {
		return ReasonNoCredential
	}
	if g.expired(token) {
		g.sessions.ClearSession(ctx, sid)
		return ReasonExpired
	}
	if err := g.verifier.VerifyToken(ctx, token); err != nil {
		if !client.IsServerRejection(err) {
			g.logger.Warn("token verification unavailable", zap.Error(err))
			return ReasonUnreachable
		}
		g.logger.Info("token refused", zap.Error(err))
		g.sessions.ClearSession(ctx, sid)
		return ReasonRejected
	}
	return ReasonNone
}

// expired reads exp without checking the signature; tokens that are not
// JWTs are left to the server.
func (g *Guard) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !g.now().Before(exp.Time)
}

func (g *Guard) deny(reason Reason) Decision {
	g.observe(string(reason))
	return Decision{Reason: reason, Redirect: g.loginPath}
}

func (g *Guard) observe(outcome string) {
	if g.observer != nil {
		g.observer.ObserveSessionCheck(outcome)
	}
}
