package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/neexbeast/petmap/internal/poi"
)

const defaultSessionTTL = time.Hour

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("map session not found")

// Session is one map view: the merged marker list and its category filter.
type Session struct {
	ID        string                `json:"id"`
	Markers   []poi.PointOfInterest `json:"markers"`
	CreatedAt time.Time             `json:"created_at"`
}

// SessionStore keeps map sessions in Redis with a sliding TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore constructs a SessionStore. A zero ttl means one hour.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func markersKey(id string) string {
	return "session:" + id + ":markers"
}

func categoriesKey(id string) string {
	return "session:" + id + ":categories"
}

// Create stores markers under a new session id with an empty filter.
func (s *SessionStore) Create(ctx context.Context, markers []poi.PointOfInterest) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		Markers:   markers,
		CreatedAt: time.Now().UTC(),
	}

	b, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("marshaling session %s: %w", sess.ID, err)
	}

	if err := s.client.Set(ctx, markersKey(sess.ID), b, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("session set for %s: %w", sess.ID, err)
	}

	return sess, nil
}

// Get returns the session, or ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	val, err := s.client.Get(ctx, markersKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("session get for %s: %w", id, err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("unmarshaling session %s: %w", id, err)
	}

	return &sess, nil
}

// Filter returns the session's active categories.
func (s *SessionStore) Filter(ctx context.Context, id string) (*poi.FilterSet, error) {
	members, err := s.client.SMembers(ctx, categoriesKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("session filter for %s: %w", id, err)
	}
	return toFilterSet(members), nil
}

// toggleScript flips ARGV[1] in the category set and slides both TTLs by
// ARGV[2] milliseconds. It returns nil for an unknown session, else the
// resulting members.
var toggleScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return false
end
if redis.call("SISMEMBER", KEYS[2], ARGV[1]) == 1 then
	redis.call("SREM", KEYS[2], ARGV[1])
else
	redis.call("SADD", KEYS[2], ARGV[1])
end
if redis.call("SCARD", KEYS[2]) > 0 then
	redis.call("PEXPIRE", KEYS[2], ARGV[2])
end
redis.call("PEXPIRE", KEYS[1], ARGV[2])
return redis.call("SMEMBERS", KEYS[2])
`)

// Toggle flips c in the session's filter and returns the new filter.
// The flip runs as one server-side script, so concurrent toggles on a
// session never overwrite each other.
func (s *SessionStore) Toggle(ctx context.Context, id string, c poi.Category) (*poi.FilterSet, error) {
	members, err := toggleScript.Run(ctx, s.client,
		[]string{markersKey(id), categoriesKey(id)},
		string(c), s.ttl.Milliseconds(),
	).StringSlice()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("session toggle for %s: %w", id, err)
	}

	return toFilterSet(members), nil
}

// Delete ends the session, dropping its markers and filter.
// It returns ErrSessionNotFound when nothing was stored under id.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, markersKey(id), categoriesKey(id)).Result()
	if err != nil {
		return fmt.Errorf("session delete for %s: %w", id, err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func toFilterSet(members []string) *poi.FilterSet {
	cats := make([]poi.Category, len(members))
	for i, m := range members {
		cats[i] = poi.Category(m)
	}
	return poi.NewFilterSet(cats...)
}
