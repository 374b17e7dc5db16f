// Package folio is a personal blog and portfolio engine built with Go, Echo
// and templ. Posts and pages are markdown files with frontmatter; folio
// indexes them into SQLite, serves them with Disqus comments and Spotify
// embeds, and can export the whole site as static files.
//
// Templates are replaceable through ViewFuncs; the defaults live in the
// views package.
package folio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kolharsam/folio/content"
	"github.com/kolharsam/folio/discussion"
	"github.com/kolharsam/folio/internal/log"
	"github.com/kolharsam/folio/internal/metrics"
	"github.com/kolharsam/folio/markdown"
	"github.com/kolharsam/folio/player"
	"github.com/kolharsam/folio/views"
)

// ViewFuncs holds the templ components the engine renders pages with.
type ViewFuncs struct {
	Home           func(posts []content.Post, activeTag string, tags []string) templ.Component
	BlogSection    func(posts []content.Post, activeTag string, tags []string) templ.Component
	Post           func(post content.Post, related []content.Post, thread templ.Component) templ.Component
	PostPartial    func(post content.Post, related []content.Post, thread templ.Component) templ.Component
	Page           func(page content.Post) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(entries []content.Post, message string, csrfToken string) templ.Component
	AdminImages    func(images []views.Image, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// DefaultViews returns the built-in templates bound to cfg.
func DefaultViews(cfg SiteConfig) ViewFuncs {
	vc := cfg.viewConfig()
	return ViewFuncs{
		Home: func(posts []content.Post, activeTag string, tags []string) templ.Component {
			return views.Home(vc, posts, activeTag, tags)
		},
		BlogSection: views.BlogSection,
		Post: func(post content.Post, related []content.Post, thread templ.Component) templ.Component {
			return views.Post(vc, post, related, thread)
		},
		PostPartial: func(post content.Post, related []content.Post, thread templ.Component) templ.Component {
			return views.PostBody(vc, post, related, thread)
		},
		Page: func(page content.Post) templ.Component {
			return views.Page(vc, page)
		},
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			return views.AdminLogin(vc, showError, csrfToken)
		},
		AdminDashboard: func(entries []content.Post, message string, csrfToken string) templ.Component {
			return views.AdminDashboard(vc, entries, message, csrfToken)
		},
		AdminImages: func(images []views.Image, csrfToken string) templ.Component {
			return views.AdminImages(vc, images, csrfToken)
		},
		NotFound:    func() templ.Component { return views.NotFound(vc) },
		ServerError: func() templ.Component { return views.ServerError(vc) },
	}
}

// App is the central folio application. It wires together the content
// loader, store, cache, handlers, middleware and templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Cache    *PostCache
	Views    ViewFuncs
	Resolver *discussion.Resolver
	Presets  player.Presets

	log          zerolog.Logger
	loader       *content.Loader
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
}

// New creates a folio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	presets := player.NewPresets()
	a := &App{
		Config:   cfg,
		Echo:     echo.New(),
		Views:    DefaultViews(cfg),
		Resolver: discussion.NewResolver(cfg.URL, log.WithComponent("discussion")),
		Presets:  presets,
		log:      log.WithComponent("app"),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true
	md := markdown.NewRenderer(presets, log.WithComponent("markdown"))
	a.loader = content.NewLoader(cfg.ContentDir, md, log.WithComponent("content"))

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Open initializes the store and cache and indexes the content directory.
// Start and Export call it; calling it again is a no-op.
func (a *App) Open() error {
	if a.Store != nil {
		return nil
	}
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	if _, err := a.Sync(); err != nil {
		return fmt.Errorf("folio: index content: %w", err)
	}
	return nil
}

// Sync reloads the content directory into the store and drops the cache.
// It returns the number of indexed entries.
func (a *App) Sync() (int, error) {
	entries, err := a.loader.Load()
	if err != nil {
		return 0, err
	}
	if err := a.Store.ReplaceAll(entries); err != nil {
		return 0, err
	}
	a.Cache.Invalidate()

	counts, err := a.Store.CountEntries()
	if err != nil {
		return 0, err
	}
	for _, kind := range []content.Kind{content.KindPost, content.KindPage} {
		metrics.ContentEntries.WithLabelValues(string(kind)).Set(float64(counts[kind]))
	}
	a.log.Info().Int("posts", counts[content.KindPost]).Int("pages", counts[content.KindPage]).Str("dir", a.Config.ContentDir).Msg("content indexed")
	return len(entries), nil
}

// Start validates the config, opens the store, wires middleware and
// routes, and serves until the server stops.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return errors.New("folio: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return errors.New("folio: SessionSecret is required")
	}
	if err := a.Open(); err != nil {
		return err
	}
	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	defer a.loginLimiter.Stop()

	a.setupMiddleware()
	a.setupRoutes()

	a.log.Info().Str("addr", a.Config.Addr).Str("url", a.Config.URL).Msg("listening")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets are served first; the user's static dir fills in the rest.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	e.GET("/public/style.css", echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS)))))
	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/manifest.webmanifest", a.handleManifest)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/blog/", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/:slug/", a.handlePage)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/:slug/", a.handleAdminPost)
	e.POST("/admin/sync/", a.handleAdminSync)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.POST("/admin/images/:filename/delete/", a.handleImageDelete)

	if a.Config.MetricsEnabled {
		e.GET("/metrics", metricsHandler())
	}

	for _, fn := range a.customRoutes {
		fn(a)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}
