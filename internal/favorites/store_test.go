package favorites_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/petmap/internal/favorites"
	"github.com/neexbeast/petmap/internal/poi"
)

func newTestStore(t *testing.T) (*favorites.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return favorites.NewStore(client), mr
}

func sampleEntry(lt favorites.ListType) favorites.Entry {
	return favorites.Entry{
		PointOfInterest: poi.PointOfInterest{
			Name:      "Dog run festival",
			Latitude:  35.7303,
			Longitude: 139.7099,
			Category:  poi.CategoryEvent,
			Source:    poi.SourceReal,
		},
		ListType: lt,
	}
}

func TestStore_AddAndList(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	added, err := s.Add(ctx, "alice", sampleEntry(favorites.ListFavorite))
	require.NoError(t, err)
	assert.True(t, added)

	got, err := s.List(ctx, "alice", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dog run festival", got[0].Name)
	assert.Equal(t, favorites.ListFavorite, got[0].ListType)
}

func TestStore_AddDuplicateIsRejected(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "alice", sampleEntry(favorites.ListWant))
	require.NoError(t, err)

	added, err := s.Add(ctx, "alice", sampleEntry(favorites.ListWant))
	require.NoError(t, err)
	assert.False(t, added)

	got, err := s.List(ctx, "alice", "")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStore_SamePointOnDifferentLists(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, lt := range favorites.ListTypes() {
		added, err := s.Add(ctx, "alice", sampleEntry(lt))
		require.NoError(t, err)
		assert.True(t, added)
	}

	all, err := s.List(ctx, "alice", "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	plans, err := s.List(ctx, "alice", favorites.ListPlan)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, favorites.ListPlan, plans[0].ListType)
}

func TestStore_ListEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	got, err := s.List(context.Background(), "nobody", "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStore_OwnerKeyIsLowercased(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "Alice", sampleEntry(favorites.ListFavorite))
	require.NoError(t, err)

	got, err := s.List(ctx, "alice", "")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStore_UnreadableBlobIsTreatedAsEmpty(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("favorites:alice", "not-json"))

	got, err := s.List(ctx, "alice", "")
	require.NoError(t, err)
	assert.Empty(t, got)

	added, err := s.Add(ctx, "alice", sampleEntry(favorites.ListStar))
	require.NoError(t, err)
	assert.True(t, added)
}

func TestStore_BlobIsArrayOfObjects(t *testing.T) {
	s, mr := newTestStore(t)

	_, err := s.Add(context.Background(), "alice", sampleEntry(favorites.ListWant))
	require.NoError(t, err)

	raw, err := mr.Get("favorites:alice")
	require.NoError(t, err)

	var objs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &objs))
	require.Len(t, objs, 1)
	assert.Equal(t, "Dog run festival", objs[0]["name"])
	assert.Equal(t, "want", objs[0]["listType"])
	assert.Equal(t, 35.7303, objs[0]["lat"])
}

func TestStore_Remove(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	e := sampleEntry(favorites.ListFavorite)
	_, err := s.Add(ctx, "alice", e)
	require.NoError(t, err)
	_, err = s.Add(ctx, "alice", sampleEntry(favorites.ListStar))
	require.NoError(t, err)

	removed, err := s.Remove(ctx, "alice", e.Key())
	require.NoError(t, err)
	assert.True(t, removed)

	got, err := s.List(ctx, "alice", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, favorites.ListStar, got[0].ListType)
}

func TestStore_RemoveMissing(t *testing.T) {
	s, _ := newTestStore(t)

	removed, err := s.Remove(context.Background(), "alice", sampleEntry(favorites.ListFavorite).Key())
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestStore_RedisDown(t *testing.T) {
	s, mr := newTestStore(t)
	mr.Close()

	_, err := s.Add(context.Background(), "alice", sampleEntry(favorites.ListFavorite))
	require.Error(t, err)
}

func TestStore_ConcurrentAddsAreAllSaved(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := sampleEntry(favorites.ListWant)
			e.Name = fmt.Sprintf("Event %d", i)
			added, err := s.Add(ctx, "alice", e)
			if err != nil {
				errs <- err
				return
			}
			assert.True(t, added)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, err := s.List(ctx, "alice", favorites.ListWant)
	require.NoError(t, err)
	assert.Len(t, got, n)
}

func TestStore_ConcurrentAddsAcrossStores(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	// Two stores stand in for two server processes sharing one Redis.
	stores := make([]*favorites.Store, 2)
	for i := range stores {
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		stores[i] = favorites.NewStore(client)
	}

	ctx := context.Background()
	const perStore = 10
	var wg sync.WaitGroup
	errs := make(chan error, 2*perStore)
	for si, s := range stores {
		for i := range perStore {
			wg.Add(1)
			go func() {
				defer wg.Done()
				e := sampleEntry(favorites.ListPlan)
				e.Name = fmt.Sprintf("Event %d-%d", si, i)
				if _, err := s.Add(ctx, "bob", e); err != nil {
					errs <- err
				}
			}()
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, err := stores[0].List(ctx, "bob", "")
	require.NoError(t, err)
	assert.Len(t, got, 2*perStore)
}

func TestStore_AddNormalizesEntry(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	added, err := s.Add(ctx, "alice", favorites.Entry{PointOfInterest: poi.PointOfInterest{Name: "x"}})
	require.NoError(t, err)
	require.True(t, added)

	// The same point saved explicitly to the default list is a duplicate.
	added, err = s.Add(ctx, "alice", favorites.Entry{
		PointOfInterest: poi.PointOfInterest{Name: "x"},
		ListType:        favorites.ListFavorite,
	})
	require.NoError(t, err)
	assert.False(t, added)

	raw, err := mr.Get("favorites:alice")
	require.NoError(t, err)
	var blob []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &blob))
	require.Len(t, blob, 1)
	assert.Equal(t, "favorite", blob[0]["listType"])
	assert.Equal(t, "event", blob[0]["category"])

	removed, err := s.Remove(ctx, "alice", favorites.Key{Name: "x"})
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestStore_AddCanceledContext(t *testing.T) {
	s, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Add(ctx, "alice", sampleEntry(favorites.ListFavorite))
	require.ErrorIs(t, err, context.Canceled)
}
