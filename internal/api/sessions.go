package api

import (
	"encoding/json"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/neexbeast/petmap/internal/cache"
	"github.com/neexbeast/petmap/internal/i18n"
	"github.com/neexbeast/petmap/internal/metrics"
	"github.com/neexbeast/petmap/internal/poi"
)

type createSessionRequest struct {
	Count *int    `json:"count"`
	Seed  *uint64 `json:"seed"`
}

type createSessionResponse struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Markers   int        `json:"markers"`
	Real      int        `json:"real"`
	Synthetic int        `json:"synthetic"`
	Bounds    poi.Bounds `json:"bounds"`
}

type markerView struct {
	poi.PointOfInterest
	CategoryLabel string `json:"category_label"`
	Visible       bool   `json:"visible"`
}

type markersResponse struct {
	ID      string         `json:"id"`
	Lang    i18n.Lang      `json:"lang"`
	Active  []poi.Category `json:"active"`
	Visible int            `json:"visible"`
	Markers []markerView   `json:"markers"`
}

type toggleResponse struct {
	ID         string         `json:"id"`
	Category   poi.Category   `json:"category"`
	Active     []poi.Category `json:"active"`
	Visibility []bool         `json:"visibility"`
	Visible    int            `json:"visible"`
}

// newRand seeds a generator from seed, or from the runtime source when nil.
func newRand(seed *uint64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
}

// CreateSession handles POST /api/v1/sessions.
// The body is optional; count defaults to the configured count and is
// capped at the configured maximum.
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count := h.sampler.Count
	if req.Count != nil {
		count = *req.Count
	}
	if count < 0 {
		writeError(w, http.StatusBadRequest, "count must not be negative")
		return
	}
	if h.sampler.MaxCount > 0 && count > h.sampler.MaxCount {
		count = h.sampler.MaxCount
	}

	events, err := h.repo.ListEvents(r.Context())
	if err != nil {
		// The map still works with synthetic facilities only.
		h.log.Warn("catalog unavailable, serving synthetic markers only", "err", err)
		events = nil
	}

	sampler := poi.NewSampler(h.sampler.Origin, h.sampler.RadiusKm, h.sampler.Bounds, h.sampler.Categories, newRand(req.Seed))
	synthetic := sampler.Generate(count)
	markers := poi.Merge(events, synthetic)

	sess, err := h.sessions.Create(r.Context(), markers)
	if err != nil {
		h.log.Error("session create failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	metrics.SessionsCreated.Inc()
	metrics.MarkersGenerated.WithLabelValues(string(poi.SourceReal)).Add(float64(len(events)))
	metrics.MarkersGenerated.WithLabelValues(string(poi.SourceSynthetic)).Add(float64(len(synthetic)))

	writeJSON(w, http.StatusCreated, createSessionResponse{
		ID:        sess.ID,
		CreatedAt: sess.CreatedAt,
		Markers:   len(markers),
		Real:      len(events),
		Synthetic: len(synthetic),
		Bounds:    sampler.Bounds(),
	})
}

// GetMarkers handles GET /api/v1/sessions/{id}/markers?lang=.
func (h *Handlers) GetMarkers(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lang := i18n.Parse(r.URL.Query().Get("lang"))

	sess, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		h.sessionError(w, id, "session get failed", err)
		return
	}

	filter, err := h.sessions.Filter(r.Context(), id)
	if err != nil {
		h.sessionError(w, id, "session filter failed", err)
		return
	}

	visible := filter.VisibleMarkers(sess.Markers)
	views := make([]markerView, len(sess.Markers))
	shown := 0
	for i, m := range sess.Markers {
		views[i] = markerView{
			PointOfInterest: m,
			CategoryLabel:   i18n.CategoryLabel(lang, m.Category),
			Visible:         visible[i],
		}
		if visible[i] {
			shown++
		}
	}

	writeJSON(w, http.StatusOK, markersResponse{
		ID:      sess.ID,
		Lang:    lang,
		Active:  filter.Active(),
		Visible: shown,
		Markers: views,
	})
}

// ToggleCategory handles POST /api/v1/sessions/{id}/categories/{category}/toggle.
func (h *Handlers) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	category, ok := poi.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}

	filter, err := h.sessions.Toggle(r.Context(), id, category)
	if err != nil {
		h.sessionError(w, id, "session toggle failed", err)
		return
	}
	metrics.CategoryToggles.WithLabelValues(string(category)).Inc()

	sess, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		h.sessionError(w, id, "session get failed", err)
		return
	}

	visibility := filter.VisibleMarkers(sess.Markers)
	shown := 0
	for _, v := range visibility {
		if v {
			shown++
		}
	}

	writeJSON(w, http.StatusOK, toggleResponse{
		ID:         id,
		Category:   category,
		Active:     filter.Active(),
		Visibility: visibility,
		Visible:    shown,
	})
}

// DeleteSession handles DELETE /api/v1/sessions/{id}.
// It ends the map view, dropping its markers and filter.
func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.sessions.Delete(r.Context(), id); err != nil {
		h.sessionError(w, id, "session delete failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handlers) sessionError(w http.ResponseWriter, id, msg string, err error) {
	if errors.Is(err, cache.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	h.log.Error(msg, "session", id, "err", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
