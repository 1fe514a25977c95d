// Package admin serves the key-gated response viewer.
package admin

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/rsvp"
)

var ErrEmptyKey = errors.New("empty admin key")

// Lister fetches the stored responses on behalf of whoever holds key.
type Lister interface {
	List(ctx context.Context, key string) ([]rsvp.Response, error)
}

// SessionStore persists the admin key between visits.
type SessionStore interface {
	Create(ctx context.Context, key string) (string, error)
	Get(ctx context.Context, id string) (string, bool, error)
	Delete(ctx context.Context, id string) error
}

// Gate decides who sees the response list. It never checks keys itself:
// the hosted function is the only authority.
type Gate struct {
	lister   Lister
	sessions SessionStore
}

func NewGate(l Lister, s SessionStore) *Gate {
	return &Gate{lister: l, sessions: s}
}

// Authenticate fetches the list with an explicitly entered key.
func (g *Gate) Authenticate(ctx context.Context, key string) ([]rsvp.Response, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	responses, err := g.lister.List(ctx, key)
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// Login authenticates and, only on success, remembers the key under a new session.
func (g *Gate) Login(ctx context.Context, key string) (string, []rsvp.Response, error) {
	responses, err := g.Authenticate(ctx, key)
	if err != nil {
		return "", nil, err
	}
	id, err := g.sessions.Create(ctx, key)
	if err != nil {
		return "", nil, fmt.Errorf("persisting admin session: %w", err)
	}
	return id, responses, nil
}

// Resume re-authenticates silently with the key remembered for sessionID.
// Any failure yields ok=false and is not surfaced to the user.
func (g *Gate) Resume(ctx context.Context, sessionID string) ([]rsvp.Response, bool) {
	if sessionID == "" {
		return nil, false
	}
	logger := log.WithField("session", sessionID)

	key, ok, err := g.sessions.Get(ctx, sessionID)
	if err != nil {
		logger.WithError(err).Debug("reading admin session")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	responses, err := g.Authenticate(ctx, key)
	if err != nil {
		logger.WithError(err).Debug("silent admin resume failed")
		return nil, false
	}
	return responses, true
}

// Logout forgets the remembered key. The hosted function is not contacted.
func (g *Gate) Logout(ctx context.Context, sessionID string) error {
	return g.sessions.Delete(ctx, sessionID)
}
