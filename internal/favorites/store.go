package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// maxTxRetries bounds optimistic-lock retries on a contended blob.
	maxTxRetries = 50

	retryBaseDelay = 2 * time.Millisecond
	retryMaxDelay  = 100 * time.Millisecond

	lockStripes = 64
)

// ErrContention is returned when a blob keeps changing under a write.
var ErrContention = errors.New("favorites: too many concurrent writers")

// Store keeps each owner's entries as one JSON array in Redis.
// Writes for one owner are serialized within the process; WATCH covers
// writers in other processes.
type Store struct {
	client *redis.Client
	locks  [lockStripes]sync.Mutex
}

func (s *Store) lockFor(owner string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key(owner)))
	return &s.locks[h.Sum32()%lockStripes]
}

// retryDelay returns a jittered, exponentially growing pause for attempt.
func retryDelay(attempt int) time.Duration {
	d := retryBaseDelay << min(attempt, 6)
	if d > retryMaxDelay {
		d = retryMaxDelay
	}
	return d/2 + rand.N(d/2+1)
}

// NewStore constructs a Store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// key returns the Redis key for the given owner.
func key(owner string) string {
	return "favorites:" + strings.ToLower(strings.TrimSpace(owner))
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// load reads the blob. A missing key is an empty list; an unreadable blob is
// logged and treated as empty.
func load(ctx context.Context, g getter, owner string) ([]Entry, error) {
	val, err := g.Get(ctx, key(owner)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("favorites get for %s: %w", owner, err)
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(val), &entries); err != nil {
		slog.Warn("discarding unreadable favorites blob", "owner", owner, "err", err)
		return []Entry{}, nil
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// List returns owner's entries on list lt, or all entries when lt is empty.
func (s *Store) List(ctx context.Context, owner string, lt ListType) ([]Entry, error) {
	entries, err := load(ctx, s.client, owner)
	if err != nil {
		return nil, err
	}
	return Filter(entries, lt), nil
}

// Add appends e to owner's blob. It reports false when an equal entry
// was already saved; the blob is left as-is in that case.
func (s *Store) Add(ctx context.Context, owner string, e Entry) (bool, error) {
	e = e.Normalized()
	added := false
	err := s.update(ctx, owner, func(entries []Entry) ([]Entry, bool) {
		next, ok := Append(entries, e)
		added = ok
		return next, ok
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// Remove deletes the entry with key k. It reports whether one was found.
// An empty list type in k means ListFavorite.
func (s *Store) Remove(ctx context.Context, owner string, k Key) (bool, error) {
	k.ListType = k.ListType.OrDefault()
	removed := false
	err := s.update(ctx, owner, func(entries []Entry) ([]Entry, bool) {
		removed = false
		next := make([]Entry, 0, len(entries))
		for _, e := range entries {
			if e.Key() == k {
				removed = true
				continue
			}
			next = append(next, e)
		}
		return next, removed
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// update runs fn over the current blob inside WATCH/MULTI and writes the
// result back when fn reports a change.
func (s *Store) update(ctx context.Context, owner string, fn func([]Entry) ([]Entry, bool)) error {
	k := key(owner)

	mu := s.lockFor(owner)
	mu.Lock()
	defer mu.Unlock()

	txf := func(tx *redis.Tx) error {
		entries, err := load(ctx, tx, owner)
		if err != nil {
			return err
		}

		next, changed := fn(entries)
		if !changed {
			return nil
		}

		b, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshaling favorites for %s: %w", owner, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, b, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, k)
		if err == nil {
			return nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return fmt.Errorf("favorites update for %s: %w", owner, err)
		}

		t := time.NewTimer(retryDelay(i))
		select {
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("favorites update for %s: %w", owner, ctx.Err())
		case <-t.C:
		}
	}

	return ErrContention
}
