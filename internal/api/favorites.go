package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/neexbeast/petmap/internal/favorites"
	"github.com/neexbeast/petmap/internal/i18n"
	"github.com/neexbeast/petmap/internal/metrics"
	"github.com/neexbeast/petmap/internal/poi"
)

type saveResponse struct {
	Saved   bool               `json:"saved"`
	List    favorites.ListType `json:"list"`
	Label   string             `json:"label"`
	Message string             `json:"message"`
}

// ListFavorites handles GET /api/v1/users/{user}/favorites?list=.
// Without list, entries from every list are returned.
func (h *Handlers) ListFavorites(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "user")

	var lt favorites.ListType
	if raw := r.URL.Query().Get("list"); raw != "" {
		parsed, ok := favorites.ParseListType(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown list type")
			return
		}
		lt = parsed
	}

	entries, err := h.favorites.List(r.Context(), owner, lt)
	if err != nil {
		h.log.Error("favorites list failed", "user", owner, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// SaveFavorite handles POST /api/v1/users/{user}/favorites?lang=.
// Responds 201 when the entry was added and 200 when it was already on the list.
func (h *Handlers) SaveFavorite(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "user")
	lang := i18n.Parse(r.URL.Query().Get("lang"))

	var e favorites.Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(e.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	lt, ok := favorites.ParseListType(string(e.ListType))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown list type")
		return
	}
	e.ListType = lt

	// A snapshot without a category comes from the event catalog.
	if strings.TrimSpace(string(e.Category)) == "" {
		e.Category = poi.ReservedCategory
	} else {
		category, ok := poi.ParseCategory(string(e.Category))
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown category")
			return
		}
		e.Category = category
	}

	added, err := h.favorites.Add(r.Context(), owner, e)
	if err != nil {
		h.log.Error("favorites add failed", "user", owner, "list", lt, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := saveResponse{Saved: added, List: lt, Label: i18n.Translate(lang, lt.MessageKey())}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
		resp.Message = i18n.Translate(lang, "saved_msg")
		metrics.FavoritesSaved.WithLabelValues(string(lt), "saved").Inc()
	} else {
		resp.Message = i18n.Translate(lang, "already_saved_msg")
		metrics.FavoritesSaved.WithLabelValues(string(lt), "duplicate").Inc()
	}

	writeJSON(w, status, resp)
}

// RemoveFavorite handles DELETE /api/v1/users/{user}/favorites.
// The body carries the entry key: name, lat, lon and listType.
func (h *Handlers) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "user")

	var k favorites.Key
	if err := json.NewDecoder(r.Body).Decode(&k); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	lt, ok := favorites.ParseListType(string(k.ListType))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown list type")
		return
	}
	k.ListType = lt

	removed, err := h.favorites.Remove(r.Context(), owner, k)
	if err != nil {
		h.log.Error("favorites remove failed", "user", owner, "list", lt, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}
