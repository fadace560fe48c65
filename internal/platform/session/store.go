// Package session keeps the per-dashboard API clients between requests.
// A session binds one set of credentials and one marketplace; neither
// changes for the session's lifetime.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"associates/internal/engine/paapi"
)

var ErrNotFound = errors.New("session not found or expired")

// Client is the subset of *paapi.Client the dashboard uses.
type Client interface {
	SearchItems(ctx context.Context, keywords string, itemCount int, searchIndex string) (*paapi.Response, error)
	GetItems(ctx context.Context, itemIDs []string) (*paapi.Response, error)
	Marketplace() paapi.Marketplace
}

// Factory builds the client for a new session.
type Factory func(creds paapi.Credentials, marketplace string) Client

// PAAPIFactory returns a Factory producing real marketplace clients.
func PAAPIFactory(opts ...paapi.Option) Factory {
	return func(creds paapi.Credentials, marketplace string) Client {
		return paapi.NewClient(creds, marketplace, opts...)
	}
}

type Session struct {
	ID         string
	Client     Client
	PartnerTag string
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

type Store struct {
	sessions sync.Map // map[string]*Session
	factory  Factory
	ttl      time.Duration
	clock    clockwork.Clock
}

func NewStore(factory Factory, ttl time.Duration, clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{factory: factory, ttl: ttl, clock: clock}
}

// Create validates creds and opens a session against marketplace.
func (s *Store) Create(creds paapi.Credentials, marketplace string) (*Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	sess := &Session{
		ID:         uuid.NewString(),
		Client:     s.factory(creds, marketplace),
		PartnerTag: creds.PartnerTag,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}
	s.sessions.Store(sess.ID, sess)

	log.Info().
		Str("session_id", sess.ID).
		Str("marketplace", sess.Client.Marketplace().Name).
		Msg("session opened")

	return sess, nil
}

func (s *Store) Get(id string) (*Session, error) {
	val, ok := s.sessions.Load(id)
	if !ok {
		return nil, ErrNotFound
	}
	sess := val.(*Session)
	if !s.clock.Now().Before(sess.ExpiresAt) {
		s.sessions.Delete(id)
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *Store) Delete(id string) bool {
	_, ok := s.sessions.LoadAndDelete(id)
	return ok
}

func (s *Store) Len() int {
	n := 0
	s.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.clock.Now()
	removed := 0
	s.sessions.Range(func(key, value any) bool {
		if !now.Before(value.(*Session).ExpiresAt) {
			s.sessions.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// Run sweeps on every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if n := s.Sweep(); n > 0 {
				log.Debug().Int("removed", n).Msg("expired sessions swept")
			}
		}
	}
}
