package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/neexbeast/petmap/internal/i18n"
	"github.com/neexbeast/petmap/internal/metrics"
	"github.com/neexbeast/petmap/internal/poi"
)

// SamplerSettings describes where synthetic facilities are placed.
type SamplerSettings struct {
	Origin     poi.GeoPoint
	RadiusKm   float64
	Bounds     poi.Bounds
	Categories []poi.Category
	Count      int
	MaxCount   int
}

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	repo      EventRepo
	sessions  SessionCache
	favorites FavoriteStore
	fetcher   CatalogFetcher
	sampler   SamplerSettings
	log       *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(repo EventRepo, sessions SessionCache, favs FavoriteStore, fetcher CatalogFetcher, sampler SamplerSettings, log *slog.Logger) *Handlers {
	return &Handlers{
		repo:      repo,
		sessions:  sessions,
		favorites: favs,
		fetcher:   fetcher,
		sampler:   sampler,
		log:       log,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// GetDictionary handles GET /api/v1/i18n/{lang}.
func (h *Handlers) GetDictionary(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "lang")
	if !i18n.IsSupported(raw) {
		writeError(w, http.StatusNotFound, "unsupported language")
		return
	}
	lang := i18n.Parse(raw)

	writeJSON(w, http.StatusOK, map[string]any{
		"lang":     lang,
		"messages": i18n.Dictionary(lang),
	})
}

// NextLanguage handles GET /api/v1/i18n/{lang}/next.
// Unknown languages cycle back to the default.
func (h *Handlers) NextLanguage(w http.ResponseWriter, r *http.Request) {
	current := i18n.Lang(chi.URLParam(r, "lang"))
	if i18n.IsSupported(string(current)) {
		current = i18n.Parse(string(current))
	}
	writeJSON(w, http.StatusOK, map[string]i18n.Lang{"lang": i18n.Next(current)})
}

var boundsParams = [4]string{"min_lat", "min_lng", "max_lat", "max_lng"}

// parseBounds reads the four bounds query parameters. It reports ok=false
// when none are present and an error when only some are, or one is not a number.
func parseBounds(r *http.Request) (b poi.Bounds, ok bool, err error) {
	q := r.URL.Query()
	var vals [4]float64
	present := 0
	for i, name := range boundsParams {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		present++
		vals[i], err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return b, false, fmt.Errorf("%s must be a number", name)
		}
	}
	switch present {
	case 0:
		return b, false, nil
	case len(boundsParams):
	default:
		return b, false, errors.New("min_lat, min_lng, max_lat and max_lng must be given together")
	}

	b = poi.Bounds{MinLat: vals[0], MinLng: vals[1], MaxLat: vals[2], MaxLng: vals[3]}
	if b.MinLat > b.MaxLat || b.MinLng > b.MaxLng {
		return b, false, errors.New("bounds minimum exceeds maximum")
	}
	return b, true, nil
}

// ListEvents handles GET /api/v1/events.
// With min_lat, min_lng, max_lat and max_lng only events inside the box are returned.
func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	b, bounded, err := parseBounds(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var events []poi.PointOfInterest
	if bounded {
		events, err = h.repo.ListEventsInBounds(r.Context(), b)
	} else {
		events, err = h.repo.ListEvents(r.Context())
	}
	if err != nil {
		h.log.Error("events list failed", "bounded", bounded, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// RefreshCatalog handles POST /api/v1/catalog/refresh.
// Fetches every event feed and upserts the merged result.
func (h *Handlers) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() { metrics.CatalogRefreshDuration.Observe(time.Since(start).Seconds()) }()

	events, err := h.fetcher.FetchAll(r.Context())
	if err != nil {
		metrics.CatalogRefreshErrors.Inc()
		h.log.Error("catalog fetch failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch event feeds")
		return
	}

	n, err := h.repo.UpsertEvents(r.Context(), events)
	if err != nil {
		metrics.CatalogRefreshErrors.Inc()
		h.log.Error("catalog upsert failed", "events", len(events), "err", err)
		writeError(w, http.StatusInternalServerError, "failed to store events")
		return
	}
	metrics.CatalogEventsIngested.Add(float64(n))

	h.log.Info("catalog refreshed", "fetched", len(events), "upserted", n)
	writeJSON(w, http.StatusOK, map[string]int{"fetched": len(events), "upserted": n})
}

type dbPinger interface {
	Ping(ctx context.Context) error
}

type redisPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlerFunc returns an http.HandlerFunc that checks db and redis connectivity.
// It responds 200 when both answer and 503 otherwise.
func HealthHandlerFunc(db dbPinger, redis redisPinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		overall := "ok"
		dbStatus := "ok"
		redisStatus := "ok"

		if err := db.Ping(ctx); err != nil {
			log.Error("health check: db ping failed", "err", err)
			dbStatus = "error"
			status = http.StatusServiceUnavailable
		}

		if err := redis.Ping(ctx); err != nil {
			log.Error("health check: redis ping failed", "err", err)
			redisStatus = "error"
			status = http.StatusServiceUnavailable
		}

		if status != http.StatusOK {
			overall = "degraded"
		}

		writeJSON(w, status, map[string]string{
			"status": overall,
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}
