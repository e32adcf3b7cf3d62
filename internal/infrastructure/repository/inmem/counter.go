package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CounterStore covers the INCR/EXPIRE/TTL trio the rate limiter uses.
// Expired keys are dropped lazily on the next Incr. Setting Err makes every
// operation fail with it, standing in for an unreachable redis.
type CounterStore struct {
	mu sync.Mutex

	Err error

	counts map[string]int64
	expiry map[string]time.Time
}

func NewCounterStore() *CounterStore {
	return &CounterStore{
		counts: make(map[string]int64),
		expiry: make(map[string]time.Time),
	}
}

func (s *CounterStore) Incr(ctx context.Context, key string) *redis.IntCmd {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return redis.NewIntResult(0, s.Err)
	}
	if exp, ok := s.expiry[key]; ok && time.Now().After(exp) {
		delete(s.counts, key)
		delete(s.expiry, key)
	}
	s.counts[key]++
	return redis.NewIntResult(s.counts[key], nil)
}

func (s *CounterStore) Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return redis.NewBoolResult(false, s.Err)
	}
	if _, ok := s.counts[key]; !ok {
		return redis.NewBoolResult(false, nil)
	}
	s.expiry[key] = time.Now().Add(ttl)
	return redis.NewBoolResult(true, nil)
}

func (s *CounterStore) TTL(ctx context.Context, key string) *redis.DurationCmd {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return redis.NewDurationResult(0, s.Err)
	}
	exp, ok := s.expiry[key]
	if !ok {
		return redis.NewDurationResult(-1, nil)
	}
	return redis.NewDurationResult(time.Until(exp), nil)
}
