package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/rawtime/internal/calendar"
	"github.com/zapponejosh/rawtime/internal/database"
	"github.com/zapponejosh/rawtime/internal/instant"
)

// BookmarkResponse is a stored bookmark with its decoded instant.
type BookmarkResponse struct {
	Name    string           `json:"name"`
	Note    *string          `json:"note,omitempty"`
	Instant *InstantResponse `json:"instant"`
}

func (h *Handlers) bookmarkResponse(b *database.Bookmark, v view) (*BookmarkResponse, error) {
	i, err := b.Instant()
	if err != nil {
		return nil, err
	}
	desc, err := describe(i, v)
	if err != nil {
		return nil, err
	}
	return &BookmarkResponse{Name: b.Name, Note: b.Note, Instant: desc}, nil
}

// CreateBookmarkRequest is the body of POST /api/v1/bookmarks. The instant is
// given either as values (as for /encode) or as a stamp with a template.
type CreateBookmarkRequest struct {
	Name     string    `json:"name"`
	Note     *string   `json:"note"`
	Values   []float64 `json:"values"`
	Reverse  bool      `json:"reverse"`
	Stamp    string    `json:"stamp"`
	Template string    `json:"template"`
	Era      string    `json:"era"`
	Drift    any       `json:"drift"`
}

// CreateBookmark handles POST /api/v1/bookmarks
func (h *Handlers) CreateBookmark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateBookmarkRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Name == "" || len(req.Name) > database.MaxNameLength {
		WriteBadRequest(w, fmt.Sprintf("name must be 1 to %d bytes", database.MaxNameLength))
		return
	}

	v, err := h.viewParams(r)
	if err != nil {
		WriteEngineError(w, err)
		return
	}
	era, err := calendar.ParseEra(req.Era)
	if err != nil {
		WriteEngineError(w, err)
		return
	}
	drift, err := h.resolveDrift(req.Drift)
	if err != nil {
		WriteEngineError(w, err)
		return
	}

	var i instant.Instant
	if req.Stamp != "" {
		if req.Template == "" {
			req.Template = "y m d h mi s"
		}
		i, err = h.engine.FromStamp(req.Stamp, req.Template, era, drift)
	} else {
		i, err = h.engine.FromValues(req.Values, era, drift, req.Reverse)
	}
	if err != nil {
		h.engineError(w, r, "bookmark instant failed", err)
		return
	}

	b := database.NewBookmark(req.Name, i, req.Note)
	if err := h.db.CreateBookmark(ctx, b); err != nil {
		if !database.IsNotFound(err) && err != database.ErrDuplicate {
			h.log(ctx).Error("create bookmark failed", slog.String("name", req.Name), slog.Any("error", err))
		}
		WriteStoreError(w, err, req.Name)
		return
	}

	resp, err := h.bookmarkResponse(b, v)
	if err != nil {
		h.engineError(w, r, "bookmark projection failed", err)
		return
	}
	h.log(ctx).Info("bookmark created", slog.String("name", b.Name), slog.Int64("id", b.ID))
	WriteCreated(w, resp)
}

// GetBookmark handles GET /api/v1/bookmarks/{name}
func (h *Handlers) GetBookmark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	v, err := h.viewParams(r)
	if err != nil {
		WriteEngineError(w, err)
		return
	}

	b, err := h.db.GetBookmark(ctx, name)
	if err != nil {
		if !database.IsNotFound(err) {
			h.log(ctx).Error("get bookmark failed", slog.String("name", name), slog.Any("error", err))
		}
		WriteStoreError(w, err, name)
		return
	}

	resp, err := h.bookmarkResponse(b, v)
	if err != nil {
		h.engineError(w, r, "bookmark projection failed", err)
		return
	}
	WriteSuccess(w, resp)
}

// ListBookmarks handles GET /api/v1/bookmarks?from=&to=&limit=&offset=
// from and to are rawtime bounds.
func (h *Handlers) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	v, err := h.viewParams(r)
	if err != nil {
		WriteEngineError(w, err)
		return
	}

	var opts database.ListOptions
	for _, p := range []struct {
		key string
		dst **float64
	}{{"from", &opts.From}, {"to", &opts.To}} {
		s := q.Get(p.key)
		if s == "" {
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid %s: %s", p.key, s))
			return
		}
		*p.dst = &f
	}
	for _, p := range []struct {
		key string
		dst *int
	}{{"limit", &opts.Limit}, {"offset", &opts.Offset}} {
		s := q.Get(p.key)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			WriteBadRequest(w, fmt.Sprintf("Invalid %s: %s", p.key, s))
			return
		}
		*p.dst = n
	}

	bookmarks, err := h.db.ListBookmarks(ctx, opts)
	if err != nil {
		h.log(ctx).Error("list bookmarks failed", slog.Any("error", err))
		WriteInternalError(w, "Failed to list bookmarks")
		return
	}

	resp := make([]*BookmarkResponse, 0, len(bookmarks))
	for idx := range bookmarks {
		br, err := h.bookmarkResponse(&bookmarks[idx], v)
		if err != nil {
			h.engineError(w, r, "bookmark projection failed", err)
			return
		}
		resp = append(resp, br)
	}
	WriteSuccess(w, resp)
}

// DeleteBookmark handles DELETE /api/v1/bookmarks/{name}
func (h *Handlers) DeleteBookmark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	if err := h.db.DeleteBookmark(ctx, name); err != nil {
		if !database.IsNotFound(err) {
			h.log(ctx).Error("delete bookmark failed", slog.String("name", name), slog.Any("error", err))
		}
		WriteStoreError(w, err, name)
		return
	}

	h.log(ctx).Info("bookmark deleted", slog.String("name", name))
	WriteSuccess(w, map[string]string{"deleted": name})
}
