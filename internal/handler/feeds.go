package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/folio-cms/internal/repository"
	"github.com/iliyamo/folio-cms/internal/settings"
)

const feedItemLimit = 20

// FeedHandler renders the published notes as RSS, Atom and JSON Feed.
// Feed metadata comes from the settings cache so a renamed site shows up
// without a restart.
type FeedHandler struct {
	Notes *repository.NoteRepo
	Cache *settings.Cache
}

func NewFeedHandler(notes *repository.NoteRepo, cache *settings.Cache) *FeedHandler {
	return &FeedHandler{Notes: notes, Cache: cache}
}

// build assembles the feed or returns nil when feeds are disabled.
func (h *FeedHandler) build(c echo.Context) (*feeds.Feed, error) {
	if !h.Cache.Features().RSS {
		return nil, nil
	}
	site := h.Cache.Site()
	base := strings.TrimRight(site.URL, "/")

	items, err := h.Notes.List(c.Request().Context(), true, feedItemLimit)
	if err != nil {
		return nil, err
	}

	feed := &feeds.Feed{
		Title:       site.Name,
		Link:        &feeds.Link{Href: base + "/"},
		Description: site.Description,
		Author:      &feeds.Author{Name: site.Author, Email: site.Email},
		Created:     time.Now().UTC(),
	}
	for _, n := range items {
		item := &feeds.Item{
			Id:          base + "/notes/" + n.Slug,
			Title:       n.Title,
			Link:        &feeds.Link{Href: base + "/notes/" + n.Slug},
			Description: n.Summary,
		}
		if n.PublishedAt.Valid {
			item.Created = n.PublishedAt.Time
		}
		feed.Items = append(feed.Items, item)
	}
	return feed, nil
}

func (h *FeedHandler) RSS(c echo.Context) error {
	feed, err := h.build(c)
	if err != nil {
		return c.String(http.StatusInternalServerError, "feed unavailable")
	}
	if feed == nil {
		return c.String(http.StatusNotFound, "not found")
	}
	out, err := feed.ToRss()
	if err != nil {
		return c.String(http.StatusInternalServerError, "feed unavailable")
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(out))
}

func (h *FeedHandler) Atom(c echo.Context) error {
	feed, err := h.build(c)
	if err != nil {
		return c.String(http.StatusInternalServerError, "feed unavailable")
	}
	if feed == nil {
		return c.String(http.StatusNotFound, "not found")
	}
	out, err := feed.ToAtom()
	if err != nil {
		return c.String(http.StatusInternalServerError, "feed unavailable")
	}
	return c.Blob(http.StatusOK, "application/atom+xml; charset=utf-8", []byte(out))
}

func (h *FeedHandler) JSON(c echo.Context) error {
	feed, err := h.build(c)
	if err != nil {
		return c.String(http.StatusInternalServerError, "feed unavailable")
	}
	if feed == nil {
		return c.String(http.StatusNotFound, "not found")
	}
	out, err := feed.ToJSON()
	if err != nil {
		return c.String(http.StatusInternalServerError, "feed unavailable")
	}
	return c.Blob(http.StatusOK, "application/feed+json; charset=utf-8", []byte(out))
}
