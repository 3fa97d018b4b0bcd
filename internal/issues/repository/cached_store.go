package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/domain"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/query"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	listKeyPrefix      = "issues:list:"    // issues:list:{project}:{version}:{filter}
	versionKeyPrefix   = "issues:version:" // issues:version:{project} -> counter bumped on every change
	eventChannelPrefix = "issues:events:"  // issues:events:{project}
	defaultListTTL     = 5 * time.Minute
	invalidateTimeout  = 2 * time.Second
)

// Change event actions
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ChangeEvent is published whenever an issue is created, updated or deleted
type ChangeEvent struct {
	Action  string    `json:"action"`
	Project string    `json:"project"`
	ID      string    `json:"_id"`
	At      time.Time `json:"at"`
}

// CachedStore caches Find results in Redis and publishes change events.
// Writes always go to the wrapped store; a bumped per-project version
// makes every older list entry unreachable. A project whose bump failed is
// read from the wrapped store until a later bump succeeds.
type CachedStore struct {
	next   Store
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	stale map[string]struct{}
}

// NewCachedStore wraps next with a Redis list cache
func NewCachedStore(next Store, client *redis.Client, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = defaultListTTL
	}
	return &CachedStore{
		next:   next,
		client: client,
		ttl:    ttl,
		now:    time.Now,
		stale:  make(map[string]struct{}),
	}
}

// EventChannel is the pub/sub channel carrying a project's change events.
func EventChannel(project string) string {
	return eventChannelPrefix + url.PathEscape(project)
}

func (s *CachedStore) Find(ctx context.Context, project string, f query.Filter) ([]domain.Issue, error) {
	if !f.Satisfiable() {
		return s.next.Find(ctx, project, f)
	}
	if s.isStale(project) {
		if err := s.client.Incr(ctx, s.versionKey(project)).Err(); err != nil {
			log.Printf("[cache] project still stale project=%q: %v", project, err)
			return s.next.Find(ctx, project, f)
		}
		s.clearStale(project)
	}

	version, err := s.version(ctx, project)
	if err != nil {
		log.Printf("[cache] version lookup failed project=%q: %v", project, err)
		return s.next.Find(ctx, project, f)
	}

	key := s.listKey(project, version, f)
	data, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var issues []domain.Issue
		if err := json.Unmarshal(data, &issues); err == nil {
			return issues, nil
		}
		log.Printf("[cache] dropping unreadable entry key=%s", key)
	case !errors.Is(err, redis.Nil):
		log.Printf("[cache] get failed key=%s: %v", key, err)
	}

	issues, err := s.next.Find(ctx, project, f)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(issues); err == nil {
		if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
			log.Printf("[cache] set failed key=%s: %v", key, err)
		}
	}
	return issues, nil
}

func (s *CachedStore) Append(ctx context.Context, project string, issue domain.Issue) (*domain.Issue, error) {
	stored, err := s.next.Append(ctx, project, issue)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, project, ActionCreated, stored.ID)
	return stored, nil
}

func (s *CachedStore) Update(ctx context.Context, project string, u query.Update) (bool, error) {
	ok, err := s.next.Update(ctx, project, u)
	if err != nil || !ok {
		return ok, err
	}
	s.changed(ctx, project, ActionUpdated, u.ID)
	return true, nil
}

func (s *CachedStore) Remove(ctx context.Context, project string, id uuid.UUID) (bool, error) {
	ok, err := s.next.Remove(ctx, project, id)
	if err != nil || !ok {
		return ok, err
	}
	s.changed(ctx, project, ActionDeleted, id)
	return true, nil
}

func (s *CachedStore) Stats(ctx context.Context) (Stats, error) {
	return s.next.Stats(ctx)
}

// Ping checks the Redis connection.
func (s *CachedStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// changed bumps the project version and publishes the event. The write has
// already committed, so this runs even if the caller's ctx is gone.
func (s *CachedStore) changed(ctx context.Context, project, action string, id uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateTimeout)
	defer cancel()

	event, err := json.Marshal(ChangeEvent{
		Action:  action,
		Project: project,
		ID:      id.String(),
		At:      s.now().UTC(),
	})
	if err != nil {
		log.Printf("[cache] failed to marshal change event: %v", err)
		s.markStale(project)
		return
	}

	pipe := s.client.TxPipeline()
	pipe.Incr(ctx, s.versionKey(project))
	pipe.Publish(ctx, EventChannel(project), event)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[cache] invalidation failed project=%q action=%s: %v", project, action, err)
		s.markStale(project)
	}
}

func (s *CachedStore) markStale(project string) {
	s.mu.Lock()
	s.stale[project] = struct{}{}
	s.mu.Unlock()
}

func (s *CachedStore) clearStale(project string) {
	s.mu.Lock()
	delete(s.stale, project)
	s.mu.Unlock()
}

func (s *CachedStore) isStale(project string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.stale[project]
	return ok
}

func (s *CachedStore) version(ctx context.Context, project string) (int64, error) {
	v, err := s.client.Get(ctx, s.versionKey(project)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (s *CachedStore) versionKey(project string) string {
	return versionKeyPrefix + url.PathEscape(project)
}

func (s *CachedStore) listKey(project string, version int64, f query.Filter) string {
	return fmt.Sprintf("%s%s:%d:%s", listKeyPrefix, url.PathEscape(project), version, f.Key())
}
