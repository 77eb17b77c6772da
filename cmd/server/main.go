package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/folio-cms/internal/auth"
	"github.com/iliyamo/folio-cms/internal/config"
	"github.com/iliyamo/folio-cms/internal/database"
	"github.com/iliyamo/folio-cms/internal/handler"
	"github.com/iliyamo/folio-cms/internal/model"
	"github.com/iliyamo/folio-cms/internal/queue"
	"github.com/iliyamo/folio-cms/internal/repository"
	"github.com/iliyamo/folio-cms/internal/router"
	"github.com/iliyamo/folio-cms/internal/settings"
	"github.com/iliyamo/folio-cms/internal/storage"
)

// revocation cleanup cadence; expired rows are harmless, just dead weight.
const cleanupInterval = time.Hour

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories.
	users := repository.NewUserRepo(db)
	revoked := repository.NewRevokedTokenRepo(db)
	settingRepo := repository.NewSettingRepo(db)
	notes := repository.NewNoteRepo(db)
	categories := repository.NewCategoryRepo(db)
	tags := repository.NewTagRepo(db)
	resume := repository.NewResumeRepo(db)
	media := repository.NewMediaRepo(db)

	// Auth stack. The sessions validator consults the revocation store on
	// every check and fails closed when it errors.
	sessions := auth.NewSessions(cfg.JWTSecret, cfg.SessionTTLMin, revoked)
	verifier := auth.NewVerifier(users)

	bootCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	seed(bootCtx, cfg, users, categories, settingRepo)
	cancel()

	settingsStore := settings.NewStore(settingRepo)

	// The settings cache is seeded straight from the database and then kept
	// fresh over the same HTTP endpoint the admin panel uses, which keeps
	// one code path for resolution regardless of where the process runs.
	cache := settings.NewCache(cfg.BaseURL + "/api/settings")
	if rows, err := settingRepo.GetAll(context.Background()); err == nil {
		cache.Seed(rows)
	} else {
		log.Printf("settings: initial load failed, using defaults: %v", err)
	}
	go func() {
		time.Sleep(2 * time.Second) // let the listener come up first
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := cache.Load(ctx); err != nil {
			log.Printf("settings: hydration fetch failed: %v", err)
		}
	}()

	// Background janitor for the revocation table.
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			n, err := revoked.CleanupExpired(ctx)
			cancel()
			if err != nil {
				log.Printf("revoked tokens: cleanup failed: %v", err)
			} else if n > 0 {
				log.Printf("revoked tokens: removed %d expired rows", n)
			}
		}
	}()

	// Publish-event consumer; reconnects on its own, no-op without a broker.
	go func() {
		if err := queue.StartPublishConsumer(); err != nil {
			log.Printf("queue: consumer stopped: %v", err)
		}
	}()

	rdb := config.NewRedisClient() // nil when Redis is absent; caching and rate limiting degrade

	s3Store, err := storage.NewS3Store(context.Background(), cfg.S3Bucket, cfg.S3Region, cfg.S3PublicURL)
	if err != nil {
		log.Printf("storage: s3 unavailable, uploads disabled: %v", err)
		s3Store = nil
	}

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, verifier, sessions, revoked),
		Settings: handler.NewSettingsHandler(settingsStore, cache),
		Public:   handler.NewPublicHandler(notes, categories, resume, cache),
		Feeds:    handler.NewFeedHandler(notes, cache),
		OG:       handler.NewOGHandler(cache),
		Pages:    handler.NewPageHandler(cache),
		Notes:    handler.NewAdminNotesHandler(notes, cache),
		Taxonomy: handler.NewAdminTaxonomyHandler(categories, tags),
		Resume:   handler.NewAdminResumeHandler(resume),
		Media:    handler.NewAdminMediaHandler(media, s3Store, cache),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, h, sessions, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// seed fills an empty deployment with the defaults it needs to be usable:
// the settings rows, the projects category and, when configured, the
// bootstrap superadmin. All inserts are idempotent or count-guarded, so
// running seed on every boot is safe.
func seed(ctx context.Context, cfg config.Config, users *repository.UserRepo, categories *repository.CategoryRepo, settingRepo *repository.SettingRepo) {
	if err := settingRepo.Seed(ctx, settings.DefaultRows()); err != nil {
		log.Printf("seed: settings: %v", err)
	}

	if _, err := categories.Create(ctx, "projects", "Projects"); err != nil && err != repository.ErrDuplicate {
		log.Printf("seed: projects category: %v", err)
	}

	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return
	}
	n, err := users.Count(ctx)
	if err != nil {
		log.Printf("seed: user count: %v", err)
		return
	}
	if n > 0 {
		return
	}
	hash, err := auth.HashPassword(cfg.SeedAdminPassword, cfg.BcryptCost)
	if err != nil {
		log.Printf("seed: hash password: %v", err)
		return
	}
	if _, err := users.Create(ctx, cfg.SeedAdminEmail, "Admin", hash, model.RoleSuperAdmin, true); err != nil {
		log.Printf("seed: admin user: %v", err)
		return
	}
	log.Printf("seed: created bootstrap superadmin %s", cfg.SeedAdminEmail)
}
