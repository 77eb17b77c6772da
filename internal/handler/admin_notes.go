package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/folio-cms/internal/middleware"
	"github.com/iliyamo/folio-cms/internal/model"
	"github.com/iliyamo/folio-cms/internal/queue"
	"github.com/iliyamo/folio-cms/internal/repository"
	"github.com/iliyamo/folio-cms/internal/service/notifier"
	"github.com/iliyamo/folio-cms/internal/settings"
)

// AdminNotesHandler implements the note CRUD behind the admin guards.
type AdminNotesHandler struct {
	Notes *repository.NoteRepo
	Cache *settings.Cache
}

func NewAdminNotesHandler(notes *repository.NoteRepo, cache *settings.Cache) *AdminNotesHandler {
	return &AdminNotesHandler{Notes: notes, Cache: cache}
}

type noteReq struct {
	Slug       string   `json:"slug"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Body       string   `json:"body"`
	CategoryID uint64   `json:"category_id"`
	TagIDs     []uint64 `json:"tag_ids"`
}

func noteJSON(n model.Note, tags []model.Tag) echo.Map {
	m := echo.Map{
		"id":          n.ID,
		"slug":        n.Slug,
		"title":       n.Title,
		"summary":     n.Summary,
		"body":        n.Body,
		"category_id": n.CategoryID,
		"published":   n.IsPublished,
		"created_at":  n.CreatedAt,
		"updated_at":  n.UpdatedAt,
	}
	if n.PublishedAt.Valid {
		m["published_at"] = n.PublishedAt.Time
	}
	if tags != nil {
		m["tags"] = tags
	}
	return m
}

func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// List returns every note, drafts included.
func (h *AdminNotesHandler) List(c echo.Context) error {
	items, err := h.Notes.List(c.Request().Context(), false, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "db error"})
	}
	out := make([]echo.Map, 0, len(items))
	for _, n := range items {
		out = append(out, noteJSON(n, nil))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "items": out})
}

// Get returns one note with its tags.
func (h *AdminNotesHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	n, err := h.Notes.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "note not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "db error"})
	}
	tags, _ := h.Notes.TagsFor(c.Request().Context(), id)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "note": noteJSON(n, tags)})
}

// Create inserts a new draft note.
func (h *AdminNotesHandler) Create(c echo.Context) error {
	var req noteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	req.Slug = strings.TrimSpace(req.Slug)
	req.Title = strings.TrimSpace(req.Title)
	if req.Slug == "" || req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "slug and title are required"})
	}
	n := &model.Note{Slug: req.Slug, Title: req.Title, Summary: req.Summary, Body: req.Body, CategoryID: req.CategoryID}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Notes.Create(ctx, n)
	if err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "slug already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "could not create note"})
	}
	if len(req.TagIDs) > 0 {
		if err := h.Notes.SetTags(ctx, id, req.TagIDs); err != nil {
			c.Logger().Errorf("notes: set tags failed: %v", err)
		}
	}
	created, _ := h.Notes.GetByID(ctx, id)
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "note": noteJSON(created, nil)})
}

// Update rewrites a note's editable fields and tag links.
func (h *AdminNotesHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	var req noteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	req.Slug = strings.TrimSpace(req.Slug)
	req.Title = strings.TrimSpace(req.Title)
	if req.Slug == "" || req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "slug and title are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n := &model.Note{ID: id, Slug: req.Slug, Title: req.Title, Summary: req.Summary, Body: req.Body, CategoryID: req.CategoryID}
	if err := h.Notes.Update(ctx, n); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "note not found"})
		case repository.ErrDuplicate:
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "slug already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "update failed"})
	}
	if req.TagIDs != nil {
		if err := h.Notes.SetTags(ctx, id, req.TagIDs); err != nil {
			c.Logger().Errorf("notes: set tags failed: %v", err)
		}
	}
	updated, _ := h.Notes.GetByID(ctx, id)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "note": noteJSON(updated, nil)})
}

// Delete removes a note.
func (h *AdminNotesHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	if err := h.Notes.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "note not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Publish flips a note live and emits the note.published event. Event
// publishing is best-effort: a broker outage must not fail the request.
func (h *AdminNotesHandler) Publish(c echo.Context) error {
	return h.setPublished(c, true)
}

// Unpublish takes a note back to draft.
func (h *AdminNotesHandler) Unpublish(c echo.Context) error {
	return h.setPublished(c, false)
}

func (h *AdminNotesHandler) setPublished(c echo.Context, published bool) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Notes.SetPublished(ctx, id, published, time.Now().UTC()); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "note not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "update failed"})
	}
	n, err := h.Notes.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "load note failed"})
	}

	if published && h.Cache.GetBool("notify.email_on_publish", false) {
		site := h.Cache.Site()
		by := ""
		if claims := middleware.SessionFromContext(c); claims != nil {
			by = claims.Email
		}
		ev := queue.NotePublishedEvent{
			NoteID:      n.ID,
			Slug:        n.Slug,
			Title:       n.Title,
			Summary:     n.Summary,
			URL:         strings.TrimRight(site.URL, "/") + "/notes/" + n.Slug,
			PublishedAt: time.Now().UTC().Format(time.RFC3339),
			PublishedBy: by,
			NotifyEmail: h.Cache.GetString("notify.email_to", ""),
		}
		_ = notifier.PublishNotePublished(ctx, ev)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "note": noteJSON(n, nil)})
}
