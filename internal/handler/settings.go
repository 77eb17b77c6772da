package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/folio-cms/internal/settings"
)

// SettingsHandler serves the settings endpoint consumed by the admin panel
// and by the hydration cache.
type SettingsHandler struct {
	Store *settings.Store
	Cache *settings.Cache
}

func NewSettingsHandler(store *settings.Store, cache *settings.Cache) *SettingsHandler {
	return &SettingsHandler{Store: store, Cache: cache}
}

// GetSettings returns the full non-sensitive settings list. When the store
// is unreachable the handler degrades to the built-in default set instead
// of failing the page render; authentication is a different story and
// fails closed, but settings reads are not a security control.
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Store.List(ctx)
	if err != nil {
		c.Logger().Errorf("settings: list failed, serving defaults: %v", err)
		defaults := settings.DefaultRows()
		out := defaults[:0]
		for _, row := range defaults {
			if !settings.IsSensitiveKey(row.Key) {
				out = append(out, row)
			}
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "settings": out, "degraded": true})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "settings": rows})
}

// UpdateSettings applies a flat key→value map. The whole batch is
// validated first; one bad key rejects everything and nothing is written.
// The response names every offending key.
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}
	if len(body) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "no settings provided"})
	}

	// Re-encode the decoded JSON values into the stored string form. Keys
	// that fail here are collected and rejected together with whatever the
	// store-level validation finds, so the caller sees one complete list.
	changes := make(map[string]string, len(body))
	fields := map[string]string{}
	for key, raw := range body {
		def, ok := settings.DefinitionFor(key)
		if !ok {
			fields[key] = "unknown setting key"
			continue
		}
		encoded, err := settings.Encode(def.Type, raw)
		if err != nil {
			fields[key] = fmt.Sprintf("invalid %s value", def.Type)
			continue
		}
		changes[key] = encoded
	}
	if len(fields) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"success": false, "error": "Validation failed", "details": fields,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Store.Update(ctx, changes)
	if err != nil {
		if verr, ok := err.(*settings.ValidationError); ok {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"success": false, "error": "Validation failed", "details": verr.Fields,
			})
		}
		c.Logger().Errorf("settings: update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "update failed"})
	}
	// Refresh the local resolved view immediately instead of waiting for
	// the next hydration fetch.
	h.Cache.Apply(rows)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "settings": rows})
}

// ResetSettings restores the full default set atomically.
func (h *SettingsHandler) ResetSettings(c echo.Context) error {
	var body struct {
		Action string `json:"action"`
	}
	if err := c.Bind(&body); err != nil || body.Action != "reset" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "unsupported action"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Reset(ctx); err != nil {
		c.Logger().Errorf("settings: reset failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "reset failed"})
	}
	rows, err := h.Store.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "reload failed"})
	}
	h.Cache.Apply(rows)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "settings": rows})
}
