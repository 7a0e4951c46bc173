// Package session keeps the per-browser credential and cached profile. It is
// the only place that reads or writes that state; everything else goes
// through Manager.
package session

import (
	"context"
	"time"

	"github.com/noah-isme/educa-portal/internal/models"
)

// Profile is the minimal cached user profile.
type Profile struct {
	Name     string      `json:"name"`
	UserType models.Role `json:"userType"`
}

// Record is everything stored for one browser session.
type Record struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	Profile      Profile   `json:"user"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Store persists session records. Get returns ErrNoSession for unknown ids.
type Store interface {
	Get(ctx context.Context, sid string) (*Record, error)
	Set(ctx context.Context, sid string, rec Record, ttl time.Duration) error
	Delete(ctx context.Context, sid string) error
	IDs(ctx context.Context) ([]string, error)
}
