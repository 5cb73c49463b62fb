package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/neexbeast/petmap/internal/poi"
)

const httpTimeout = 10 * time.Second

// newHTTPClient returns an http.Client with a 10-second timeout.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// doGet performs a GET request and decodes the JSON response into dst.
func doGet(ctx context.Context, client *http.Client, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned status %d", rawURL, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", rawURL, err)
	}

	return nil
}

// FeedClient reads one JSON event feed: an array of FeedEvent objects.
type FeedClient struct {
	url    string
	client *http.Client
}

// NewFeedClient constructs a FeedClient for the feed at url.
func NewFeedClient(url string) *FeedClient {
	return &FeedClient{url: url, client: newHTTPClient()}
}

// Name identifies the feed in logs.
func (c *FeedClient) Name() string {
	return c.url
}

// Fetch downloads the feed and returns every placeable event.
func (c *FeedClient) Fetch(ctx context.Context) ([]poi.PointOfInterest, error) {
	var raw []FeedEvent
	if err := doGet(ctx, c.client, c.url, &raw); err != nil {
		return nil, fmt.Errorf("event feed fetch: %w", err)
	}

	points := make([]poi.PointOfInterest, 0, len(raw))
	for _, e := range raw {
		p, ok := e.ToPOI()
		if !ok {
			continue
		}
		points = append(points, p)
	}

	return points, nil
}
