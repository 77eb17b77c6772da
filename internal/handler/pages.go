package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/folio-cms/internal/settings"
)

// The HTML here is deliberately minimal. The real frontend is a separate
// deployment; these pages exist so the service is usable on its own and
// so the login redirect has somewhere to land.

var homeTemplate = template.Must(template.New("home").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Meta.MetaTitle}}</title>
<meta name="description" content="{{.Meta.MetaDescription}}">
<meta property="og:title" content="{{.Site.Name}}">
<meta property="og:image" content="/og">
{{if .Features.RSS}}<link rel="alternate" type="application/rss+xml" href="/feed/rss.xml">{{end}}
</head>
<body data-theme="{{.Look.Theme}}">
<h1>{{.Site.Name}}</h1>
<p>{{.Site.Tagline}}</p>
</body>
</html>
`))

var loginTemplate = template.Must(template.New("login").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Sign in — {{.Site.Name}}</title></head>
<body>
<h1>Sign in</h1>
<form method="post" action="/api/auth/login" data-redirect="{{.Redirect}}">
<label>Email <input type="email" name="email" required></label>
<label>Password <input type="password" name="password" required></label>
<button type="submit">Sign in</button>
</form>
</body>
</html>
`))

// PageHandler serves the built-in HTML pages.
type PageHandler struct {
	Cache *settings.Cache
}

func NewPageHandler(cache *settings.Cache) *PageHandler {
	return &PageHandler{Cache: cache}
}

func (h *PageHandler) Home(c echo.Context) error {
	data := struct {
		Site     settings.SiteIdentity
		Meta     settings.SEO
		Look     settings.Appearance
		Features settings.Features
	}{h.Cache.Site(), h.Cache.SEO(), h.Cache.Appearance(), h.Cache.Features()}

	var buf bytes.Buffer
	if err := homeTemplate.Execute(&buf, data); err != nil {
		return c.String(http.StatusInternalServerError, "render failed")
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (h *PageHandler) Login(c echo.Context) error {
	data := struct {
		Site     settings.SiteIdentity
		Redirect string
	}{h.Cache.Site(), c.QueryParam("redirect")}

	var buf bytes.Buffer
	if err := loginTemplate.Execute(&buf, data); err != nil {
		return c.String(http.StatusInternalServerError, "render failed")
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
