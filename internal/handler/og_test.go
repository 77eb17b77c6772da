package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/folio-cms/internal/model"
	"github.com/iliyamo/folio-cms/internal/settings"
)

func TestOGCard(t *testing.T) {
	cache := settings.NewCache("http://unused.invalid")
	cache.Apply([]model.Setting{
		{Key: "site.name", Value: "Folio <Dev>", Type: settings.TypeString},
	})
	h := NewOGHandler(cache)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/og?title=Hello+%26+Welcome", nil)
	rec := httptest.NewRecorder()
	if err := h.Card(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Card() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Hello &amp; Welcome") {
		t.Errorf("title not escaped into SVG: %s", body)
	}
	if strings.Contains(body, "<Dev>") {
		t.Error("site name not XML-escaped")
	}
}

func TestOGCardFallsBackToSiteName(t *testing.T) {
	cache := settings.NewCache("http://unused.invalid")
	cache.Apply([]model.Setting{
		{Key: "site.name", Value: "My Site", Type: settings.TypeString},
	})
	h := NewOGHandler(cache)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/og", nil)
	rec := httptest.NewRecorder()
	if err := h.Card(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Card() error = %v", err)
	}
	if !strings.Contains(rec.Body.String(), "My Site") {
		t.Error("empty title did not fall back to site name")
	}
}
