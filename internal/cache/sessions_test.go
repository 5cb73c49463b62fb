package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/petmap/internal/cache"
	"github.com/neexbeast/petmap/internal/poi"
)

func newTestStore(t *testing.T) (*cache.SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewSessionStore(client, time.Hour), mr
}

func sampleMarkers() []poi.PointOfInterest {
	return []poi.PointOfInterest{
		{Name: "Dog festival", Latitude: 35.68, Longitude: 139.76, Category: poi.CategoryEvent, Source: poi.SourceReal},
		{Name: "Pet facility 1", Latitude: 35.73, Longitude: 139.71, Category: poi.CategoryHotel, Source: poi.SourceSynthetic},
	}
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, sampleMarkers())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Markers, 2)
	assert.Equal(t, "Dog festival", got.Markers[0].Name)
	assert.Equal(t, poi.CategoryHotel, got.Markers[1].Category)
}

func TestSessionStore_Get_Miss(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Get(context.Background(), "nonexistent")
	require.ErrorIs(t, err, cache.ErrSessionNotFound)
}

func TestSessionStore_NewSessionHasEmptyFilter(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, sampleMarkers())
	require.NoError(t, err)

	f, err := s.Filter(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, f.Len())
	assert.Equal(t, []bool{true, true}, f.VisibleMarkers(created.Markers))
}

func TestSessionStore_Toggle(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, sampleMarkers())
	require.NoError(t, err)

	f, err := s.Toggle(ctx, created.ID, poi.CategoryHotel)
	require.NoError(t, err)
	assert.Equal(t, []poi.Category{poi.CategoryHotel}, f.Active())

	f, err = s.Toggle(ctx, created.ID, poi.CategoryMuseum)
	require.NoError(t, err)
	assert.Equal(t, []poi.Category{poi.CategoryHotel, poi.CategoryMuseum}, f.Active())

	stored, err := s.Filter(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, stored.VisibleMarkers(created.Markers))
}

func TestSessionStore_ToggleTwiceClearsFilter(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, sampleMarkers())
	require.NoError(t, err)

	_, err = s.Toggle(ctx, created.ID, poi.CategoryEvent)
	require.NoError(t, err)
	f, err := s.Toggle(ctx, created.ID, poi.CategoryEvent)
	require.NoError(t, err)

	assert.Equal(t, 0, f.Len())
	assert.False(t, mr.Exists("session:"+created.ID+":categories"))
}

func TestSessionStore_Toggle_UnknownSession(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Toggle(context.Background(), "ghost", poi.CategoryHotel)
	require.ErrorIs(t, err, cache.ErrSessionNotFound)
}

func TestSessionStore_ConcurrentTogglesAllApply(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, sampleMarkers())
	require.NoError(t, err)

	cats := []poi.Category{poi.CategoryHotel, poi.CategoryMuseum, poi.CategoryActivity, poi.CategoryFacility}
	const perWorker = 8

	var wg sync.WaitGroup
	errs := make(chan error, 32*perWorker)
	for w := 0; w < 32; w++ {
		wg.Add(1)
		go func(c poi.Category) {
			defer wg.Done()
			for range perWorker {
				if _, err := s.Toggle(ctx, created.ID, c); err != nil {
					errs <- err
				}
			}
		}(cats[w%len(cats)])
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	// Each category was toggled 64 times, an even count.
	f, err := s.Filter(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, f.Active())
}

func TestSessionStore_ConcurrentTogglesOddCount(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, sampleMarkers())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 7 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Toggle(ctx, created.ID, poi.CategoryMuseum)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	f, err := s.Filter(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []poi.Category{poi.CategoryMuseum}, f.Active())
}

func TestSessionStore_TTL(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, sampleMarkers())
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = s.Get(ctx, created.ID)
	require.ErrorIs(t, err, cache.ErrSessionNotFound)
}

func TestSessionStore_ToggleExtendsTTL(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, sampleMarkers())
	require.NoError(t, err)

	mr.FastForward(45 * time.Minute)
	_, err = s.Toggle(ctx, created.ID, poi.CategoryHotel)
	require.NoError(t, err)
	mr.FastForward(45 * time.Minute)

	_, err = s.Get(ctx, created.ID)
	require.NoError(t, err)
}

func TestSessionStore_Delete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, sampleMarkers())
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, created.ID))

	_, err = s.Get(ctx, created.ID)
	require.ErrorIs(t, err, cache.ErrSessionNotFound)

	_, err = s.Toggle(ctx, created.ID, poi.CategoryHotel)
	require.ErrorIs(t, err, cache.ErrSessionNotFound)
}

func TestSessionStore_Delete_RemovesFilter(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, sampleMarkers())
	require.NoError(t, err)
	_, err = s.Toggle(ctx, created.ID, poi.CategoryHotel)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))
	assert.False(t, mr.Exists("session:"+created.ID+":categories"))
}

func TestSessionStore_Delete_Miss(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.Delete(context.Background(), "ghost")
	require.ErrorIs(t, err, cache.ErrSessionNotFound)
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := cache.Connect(context.Background(), "not-a-url", 0)
	require.Error(t, err)
}

func TestConnect_UnreachableServer(t *testing.T) {
	_, err := cache.Connect(context.Background(), "redis://localhost:19999", 0)
	require.Error(t, err)
}

func TestConnect_Miniredis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := cache.Connect(context.Background(), "redis://"+mr.Addr(), 4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	assert.Equal(t, 4, client.Options().PoolSize)
}
