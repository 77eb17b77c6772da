package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/folio-cms/internal/middleware"
	"github.com/iliyamo/folio-cms/internal/model"
	"github.com/iliyamo/folio-cms/internal/repository"
	"github.com/iliyamo/folio-cms/internal/settings"
	"github.com/iliyamo/folio-cms/internal/storage"
)

// AdminMediaHandler manages the media library. Bytes go to the object
// store, metadata to the database. Upload limits come from the settings
// cache so the admin can change them without a restart.
type AdminMediaHandler struct {
	Media *repository.MediaRepo
	Store *storage.S3Store // nil -> uploads disabled
	Cache *settings.Cache
}

func NewAdminMediaHandler(media *repository.MediaRepo, store *storage.S3Store, cache *settings.Cache) *AdminMediaHandler {
	return &AdminMediaHandler{Media: media, Store: store, Cache: cache}
}

func (h *AdminMediaHandler) List(c echo.Context) error {
	items, err := h.Media.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "items": items})
}

// Upload accepts a multipart "file" field, checks it against the
// configured type and size limits, stores the object and records it.
func (h *AdminMediaHandler) Upload(c echo.Context) error {
	if h.Store == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"success": false, "error": "uploads are not configured"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "file field required"})
	}

	uploads := h.Cache.Uploads()
	contentType := fh.Header.Get("Content-Type")
	allowed := false
	for _, t := range uploads.AllowedTypes {
		if t == contentType {
			allowed = true
			break
		}
	}
	if !allowed {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"success": false, "error": "Validation failed",
			"details": echo.Map{"file": "content type not allowed: " + contentType},
		})
	}
	maxBytes := int64(uploads.MaxSizeMB * 1024 * 1024)
	if fh.Size > maxBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"success": false, "error": "file too large"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "read upload failed"})
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	key, url, err := h.Store.Put(ctx, fh.Filename, contentType, maxBytes, src)
	if err != nil {
		if err == storage.ErrTooLarge {
			return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"success": false, "error": "file too large"})
		}
		c.Logger().Errorf("media: upload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "upload failed"})
	}

	var uploadedBy uint64
	if claims := middleware.SessionFromContext(c); claims != nil {
		uploadedBy = claims.UserID
	}
	m := &model.MediaFile{
		ObjectKey:   key,
		FileName:    fh.Filename,
		ContentType: contentType,
		SizeBytes:   fh.Size,
		URL:         url,
		UploadedBy:  uploadedBy,
	}
	id, err := h.Media.Create(ctx, m)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "record upload failed"})
	}
	m.ID = id
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "media": m})
}

// Delete removes the database record and then the object. A failed object
// delete is logged, not surfaced: the record is already gone and the
// object is unreachable garbage at worst.
func (h *AdminMediaHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	m, err := h.Media.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "media not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "db error"})
	}
	if err := h.Media.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "delete failed"})
	}
	if h.Store != nil {
		if err := h.Store.Delete(c.Request().Context(), m.ObjectKey); err != nil {
			c.Logger().Errorf("media: object delete failed for %s: %v", m.ObjectKey, err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}
