package api

import (
	"context"

	"github.com/neexbeast/petmap/internal/cache"
	"github.com/neexbeast/petmap/internal/favorites"
	"github.com/neexbeast/petmap/internal/poi"
)

// EventRepo defines the catalog storage operations needed by handlers.
type EventRepo interface {
	ListEvents(ctx context.Context) ([]poi.PointOfInterest, error)
	ListEventsInBounds(ctx context.Context, b poi.Bounds) ([]poi.PointOfInterest, error)
	UpsertEvents(ctx context.Context, events []poi.PointOfInterest) (int, error)
}

// SessionCache defines the map session operations needed by handlers.
type SessionCache interface {
	Create(ctx context.Context, markers []poi.PointOfInterest) (*cache.Session, error)
	Get(ctx context.Context, id string) (*cache.Session, error)
	Filter(ctx context.Context, id string) (*poi.FilterSet, error)
	Toggle(ctx context.Context, id string, c poi.Category) (*poi.FilterSet, error)
	Delete(ctx context.Context, id string) error
}

// FavoriteStore defines the saved-list operations needed by handlers.
type FavoriteStore interface {
	List(ctx context.Context, owner string, lt favorites.ListType) ([]favorites.Entry, error)
	Add(ctx context.Context, owner string, e favorites.Entry) (bool, error)
	Remove(ctx context.Context, owner string, k favorites.Key) (bool, error)
}

// CatalogFetcher defines the event feed aggregation needed by handlers.
type CatalogFetcher interface {
	FetchAll(ctx context.Context) ([]poi.PointOfInterest, error)
}
