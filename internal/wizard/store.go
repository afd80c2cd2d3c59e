package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/persx/persx-sub000/internal/platform/cache"
)

const DefaultSessionTTL = 6 * time.Hour

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

type cacheStore struct {
	c   cache.Cache
	ttl time.Duration
}

// NewStore keeps sessions in c (redis or memory) under "wizard:<id>".
func NewStore(c cache.Cache, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &cacheStore{c: c, ttl: ttl}
}

func key(id string) string { return "wizard:" + id }

func (st *cacheStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := st.c.Get(ctx, key(id))
	if errors.Is(err, cache.ErrMiss) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s.Degraded == nil {
		s.Degraded = map[string]string{}
	}
	return &s, nil
}

func (st *cacheStore) Put(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return st.c.Set(ctx, key(s.ID), raw, st.ttl)
}

func (st *cacheStore) Delete(ctx context.Context, id string) error {
	return st.c.Delete(ctx, key(id))
}
