package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/neexbeast/petmap/internal/poi"
)

// maxConcurrentFeeds caps parallel feed downloads.
const maxConcurrentFeeds = 4

// feedFetcher is the interface satisfied by FeedClient.
type feedFetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]poi.PointOfInterest, error)
}

// Fetcher aggregates all configured event feeds in parallel.
type Fetcher struct {
	feeds []feedFetcher
}

// NewFetcher constructs a Fetcher with one FeedClient per URL.
func NewFetcher(urls []string) *Fetcher {
	feeds := make([]feedFetcher, 0, len(urls))
	for _, u := range urls {
		feeds = append(feeds, NewFeedClient(u))
	}
	return &Fetcher{feeds: feeds}
}

// NewFetcherWithClients constructs a Fetcher with injectable feeds (used in tests).
func NewFetcherWithClients(feeds ...feedFetcher) *Fetcher {
	return &Fetcher{feeds: feeds}
}

// FetchAll downloads every feed and merges the results in feed order.
// Feed failures are non-fatal: they are logged and the feed is skipped.
// Events repeated across feeds (same name and coordinates) are kept once.
func (f *Fetcher) FetchAll(ctx context.Context) ([]poi.PointOfInterest, error) {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFeeds)

	results := make([][]poi.PointOfInterest, len(f.feeds))

	for i, feed := range f.feeds {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("event feed fetch panicked", "feed", feed.Name(), "recover", r)
					err = fmt.Errorf("event feed %s panicked: %v", feed.Name(), r)
				}
			}()
			points, fetchErr := feed.Fetch(gCtx)
			if fetchErr != nil {
				slog.Warn("event feed fetch failed", "feed", feed.Name(), "err", fetchErr)
				return nil
			}
			results[i] = points
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching event feeds: %w", err)
	}

	return dedupe(results), nil
}

type eventKey struct {
	name     string
	lat, lon float64
}

func dedupe(results [][]poi.PointOfInterest) []poi.PointOfInterest {
	seen := make(map[eventKey]struct{})
	var out []poi.PointOfInterest
	for _, points := range results {
		for _, p := range points {
			k := eventKey{name: p.Name, lat: p.Latitude, lon: p.Longitude}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, p)
		}
	}
	if out == nil {
		out = []poi.PointOfInterest{}
	}
	return out
}
