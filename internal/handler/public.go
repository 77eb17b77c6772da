package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/folio-cms/internal/model"
	"github.com/iliyamo/folio-cms/internal/repository"
	"github.com/iliyamo/folio-cms/internal/settings"
)

const publicListLimit = 50

// PublicHandler serves the read-only JSON surface under /api/public.
// Only published content leaves this handler; drafts never do.
type PublicHandler struct {
	Notes      *repository.NoteRepo
	Categories *repository.CategoryRepo
	Resume     *repository.ResumeRepo
	Cache      *settings.Cache
}

func NewPublicHandler(notes *repository.NoteRepo, cats *repository.CategoryRepo, resume *repository.ResumeRepo, cache *settings.Cache) *PublicHandler {
	return &PublicHandler{Notes: notes, Categories: cats, Resume: resume, Cache: cache}
}

func publicNoteJSON(n model.Note) echo.Map {
	m := echo.Map{
		"slug":    n.Slug,
		"title":   n.Title,
		"summary": n.Summary,
	}
	if n.PublishedAt.Valid {
		m["published_at"] = n.PublishedAt.Time
	}
	return m
}

// ListNotes returns published notes, newest first. Optional ?category= and
// ?tag= narrow the list by slug; an unknown slug reads as an empty list.
func (h *PublicHandler) ListNotes(c echo.Context) error {
	if !h.Cache.Features().Notes {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "not found"})
	}
	ctx := c.Request().Context()

	var items []model.Note
	var err error
	switch {
	case c.QueryParam("tag") != "":
		items, err = h.Notes.ListByTag(ctx, c.QueryParam("tag"))
	case c.QueryParam("category") != "":
		var cat model.Category
		cat, err = h.Categories.GetBySlug(ctx, c.QueryParam("category"))
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusOK, echo.Map{"success": true, "items": []echo.Map{}})
		}
		if err == nil {
			items, err = h.Notes.ListByCategory(ctx, cat.ID)
		}
	default:
		items, err = h.Notes.List(ctx, true, publicListLimit)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "db error"})
	}
	out := make([]echo.Map, 0, len(items))
	for _, n := range items {
		out = append(out, publicNoteJSON(n))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "items": out})
}

// GetNote returns one published note in full, with its tags.
func (h *PublicHandler) GetNote(c echo.Context) error {
	if !h.Cache.Features().Notes {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "not found"})
	}
	n, err := h.Notes.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil || !n.IsPublished {
		// A draft behaves exactly like a missing note from outside.
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "note not found"})
	}
	tags, _ := h.Notes.TagsFor(c.Request().Context(), n.ID)
	body := publicNoteJSON(n)
	body["body"] = n.Body
	if tags != nil {
		body["tags"] = tags
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "note": body})
}

// ListProjects returns the published notes filed under the "projects"
// category. The category is created by the seed and may be deleted; an
// absent category reads as an empty list, not an error.
func (h *PublicHandler) ListProjects(c echo.Context) error {
	if !h.Cache.Features().Projects {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "not found"})
	}
	ctx := c.Request().Context()
	cat, err := h.Categories.GetBySlug(ctx, "projects")
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusOK, echo.Map{"success": true, "items": []echo.Map{}})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "db error"})
	}
	items, err := h.Notes.ListByCategory(ctx, cat.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "db error"})
	}
	out := make([]echo.Map, 0, len(items))
	for _, n := range items {
		if n.IsPublished {
			out = append(out, publicNoteJSON(n))
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "items": out})
}

// GetResume returns the visible resume sections in display order.
func (h *PublicHandler) GetResume(c echo.Context) error {
	items, err := h.Resume.List(c.Request().Context(), true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "items": items})
}
