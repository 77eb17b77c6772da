package router // package router defines how HTTP routes are registered for the service

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/folio-cms/internal/auth"
	"github.com/iliyamo/folio-cms/internal/config"
	"github.com/iliyamo/folio-cms/internal/handler"
	"github.com/iliyamo/folio-cms/internal/middleware"
)

// Handlers bundles every handler the router wires up. main builds one of
// these after constructing the dependency graph.
type Handlers struct {
	Auth     *handler.AuthHandler
	Settings *handler.SettingsHandler
	Public   *handler.PublicHandler
	Feeds    *handler.FeedHandler
	OG       *handler.OGHandler
	Pages    *handler.PageHandler
	Notes    *handler.AdminNotesHandler
	Taxonomy *handler.AdminTaxonomyHandler
	Resume   *handler.AdminResumeHandler
	Media    *handler.AdminMediaHandler
}

// Register wires all routes. The gateway middleware runs on everything, so
// the public routes below are reachable only because their paths are on
// its allow-list; the route guards are the second, route-local layer.
func Register(e *echo.Echo, h Handlers, sessions *auth.Sessions, cfg config.Config, rdb *redis.Client) {
	e.Use(middleware.Metrics())
	e.Use(middleware.Gateway(sessions, cfg.CookiePrefix))

	// Public pages and probes.
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/", h.Pages.Home)
	e.GET("/login", h.Pages.Login)
	e.GET("/og", h.OG.Card)

	// Feeds, behind the shared response cache when Redis is around.
	feed := e.Group("/feed")
	if rdb != nil {
		feed.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}
	feed.GET("/rss.xml", h.Feeds.RSS)
	feed.GET("/atom.xml", h.Feeds.Atom)
	feed.GET("/feed.json", h.Feeds.JSON)

	// Session endpoints. Login gets the rate limiter so credential
	// stuffing burns tokens instead of bcrypt time.
	authGroup := e.Group("/api/auth")
	if rdb != nil {
		authGroup.POST("/login", h.Auth.Login, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	} else {
		authGroup.POST("/login", h.Auth.Login)
	}
	authGroup.POST("/logout", h.Auth.Logout)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.GET("/me", h.Auth.Me, middleware.RequireAuth(sessions, cfg.CookiePrefix))

	// Read-only content API, cached like the feeds.
	pub := e.Group("/api/public")
	if rdb != nil {
		pub.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}
	pub.GET("/notes", h.Public.ListNotes)
	pub.GET("/notes/:slug", h.Public.GetNote)
	pub.GET("/projects", h.Public.ListProjects)
	pub.GET("/resume", h.Public.GetResume)

	// Settings: reads are public (the hydration fetch carries no session),
	// writes take the admin guard and reset is superadmin-only.
	e.GET("/api/settings", h.Settings.GetSettings)
	e.PUT("/api/settings", h.Settings.UpdateSettings, middleware.RequireAdmin(sessions, cfg.CookiePrefix))
	e.POST("/api/settings/reset", h.Settings.ResetSettings, middleware.RequireSuperAdmin(sessions, cfg.CookiePrefix))

	// Admin surface. RequireAdmin re-validates the cookie itself, so these
	// hold even if the gateway allow-list is ever loosened.
	admin := e.Group("/api/admin", middleware.RequireAdmin(sessions, cfg.CookiePrefix))

	admin.GET("/notes", h.Notes.List)
	admin.POST("/notes", h.Notes.Create)
	admin.GET("/notes/:id", h.Notes.Get)
	admin.PUT("/notes/:id", h.Notes.Update)
	admin.DELETE("/notes/:id", h.Notes.Delete)
	admin.POST("/notes/:id/publish", h.Notes.Publish)
	admin.POST("/notes/:id/unpublish", h.Notes.Unpublish)

	admin.GET("/categories", h.Taxonomy.ListCategories)
	admin.POST("/categories", h.Taxonomy.CreateCategory)
	admin.DELETE("/categories/:id", h.Taxonomy.DeleteCategory)
	admin.GET("/tags", h.Taxonomy.ListTags)
	admin.POST("/tags", h.Taxonomy.CreateTag)
	admin.DELETE("/tags/:id", h.Taxonomy.DeleteTag)

	admin.GET("/resume", h.Resume.List)
	admin.POST("/resume", h.Resume.Create)
	admin.PUT("/resume/:id", h.Resume.Update)
	admin.DELETE("/resume/:id", h.Resume.Delete)

	admin.GET("/media", h.Media.List)
	admin.POST("/media", h.Media.Upload)
	admin.DELETE("/media/:id", h.Media.Delete)
}
