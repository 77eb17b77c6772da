package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/folio-cms/internal/model"
	"github.com/iliyamo/folio-cms/internal/repository"
)

// AdminResumeHandler edits the resume sections shown on the public page.
type AdminResumeHandler struct {
	Resume *repository.ResumeRepo
}

func NewAdminResumeHandler(resume *repository.ResumeRepo) *AdminResumeHandler {
	return &AdminResumeHandler{Resume: resume}
}

type resumeSectionReq struct {
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Position  int    `json:"position"`
	IsVisible *bool  `json:"is_visible"`
}

func (h *AdminResumeHandler) List(c echo.Context) error {
	items, err := h.Resume.List(c.Request().Context(), false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "items": items})
}

func (h *AdminResumeHandler) Create(c echo.Context) error {
	var req resumeSectionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	req.Kind = strings.TrimSpace(req.Kind)
	req.Title = strings.TrimSpace(req.Title)
	if req.Kind == "" || req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "kind and title are required"})
	}
	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}
	s := &model.ResumeSection{Kind: req.Kind, Title: req.Title, Body: req.Body, Position: req.Position, IsVisible: visible}
	id, err := h.Resume.Create(c.Request().Context(), s)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "could not create section"})
	}
	s.ID = id
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "section": s})
}

func (h *AdminResumeHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	var req resumeSectionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	req.Kind = strings.TrimSpace(req.Kind)
	req.Title = strings.TrimSpace(req.Title)
	if req.Kind == "" || req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "kind and title are required"})
	}
	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}
	s := &model.ResumeSection{ID: id, Kind: req.Kind, Title: req.Title, Body: req.Body, Position: req.Position, IsVisible: visible}
	if err := h.Resume.Update(c.Request().Context(), s); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "section not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "section": s})
}

func (h *AdminResumeHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	if err := h.Resume.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "section not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
