package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/folio-cms/internal/repository"
)

// AdminTaxonomyHandler covers the category and tag CRUD. Both are plain
// slug/name tables; the handlers are symmetric.
type AdminTaxonomyHandler struct {
	Categories *repository.CategoryRepo
	Tags       *repository.TagRepo
}

func NewAdminTaxonomyHandler(cat *repository.CategoryRepo, tag *repository.TagRepo) *AdminTaxonomyHandler {
	return &AdminTaxonomyHandler{Categories: cat, Tags: tag}
}

type taxonomyReq struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func (r *taxonomyReq) normalize() bool {
	r.Slug = strings.TrimSpace(strings.ToLower(r.Slug))
	r.Name = strings.TrimSpace(r.Name)
	return r.Slug != "" && r.Name != ""
}

func (h *AdminTaxonomyHandler) ListCategories(c echo.Context) error {
	items, err := h.Categories.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "items": items})
}

func (h *AdminTaxonomyHandler) CreateCategory(c echo.Context) error {
	var req taxonomyReq
	if err := c.Bind(&req); err != nil || !req.normalize() {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "slug and name are required"})
	}
	id, err := h.Categories.Create(c.Request().Context(), req.Slug, req.Name)
	if err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "category already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "could not create category"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": id})
}

func (h *AdminTaxonomyHandler) DeleteCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	if err := h.Categories.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminTaxonomyHandler) ListTags(c echo.Context) error {
	items, err := h.Tags.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "items": items})
}

func (h *AdminTaxonomyHandler) CreateTag(c echo.Context) error {
	var req taxonomyReq
	if err := c.Bind(&req); err != nil || !req.normalize() {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "slug and name are required"})
	}
	id, err := h.Tags.Create(c.Request().Context(), req.Slug, req.Name)
	if err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "tag already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "could not create tag"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": id})
}

func (h *AdminTaxonomyHandler) DeleteTag(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	if err := h.Tags.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "tag not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
