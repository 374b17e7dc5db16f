package folio

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/kolharsam/folio/views"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical origin (default "http://localhost:3000")
	Description string // Site description for RSS, manifest and meta tags
	Author      string // Author name for JSON-LD
	ThemeColor  string // Manifest theme color (default "#6B46C1")

	Navigation    []views.Link // Header links (default Blog, About)
	ExternalLinks []views.Link // Footer links

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/folio.db")
	ContentDir   string // Markdown root with posts/ and pages/ (default "content")
	StaticDir    string // User static assets served under /public (default "public")

	DisqusShortname   string // Comments are disabled when empty
	GoogleAnalyticsID string // gtag snippet is omitted when empty

	AdminPassword string // Required to serve: admin login password
	SessionSecret string // Required to serve: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	MetricsEnabled bool          // Serve Prometheus metrics on /metrics
	PostCacheTTL   time.Duration // Post cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimRight(c.URL, "/")
	if c.ThemeColor == "" {
		c.ThemeColor = "#6B46C1"
	}
	if c.Navigation == nil {
		c.Navigation = []views.Link{
			{Title: "Blog", URL: "/"},
			{Title: "About", URL: "/about/"},
		}
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/folio.db"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

func (c SiteConfig) viewConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:              c.Name,
		URL:               c.URL,
		Description:       c.Description,
		Author:            c.Author,
		Navigation:        c.Navigation,
		ExternalLinks:     c.ExternalLinks,
		GoogleAnalyticsID: c.GoogleAnalyticsID,
	}
}

// LoadConfig reads a SiteConfig from the environment after loading envFiles
// (default ".env") into it. Missing env files are ignored; variables already
// set in the environment win over file values.
func LoadConfig(envFiles ...string) (SiteConfig, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return SiteConfig{}, fmt.Errorf("folio: load %s: %w", f, err)
		}
	}

	cfg := SiteConfig{
		Name:              os.Getenv("SITE_NAME"),
		URL:               os.Getenv("SITE_URL"),
		Description:       os.Getenv("SITE_DESCRIPTION"),
		Author:            os.Getenv("SITE_AUTHOR"),
		ThemeColor:        os.Getenv("THEME_COLOR"),
		Addr:              os.Getenv("ADDR"),
		DatabasePath:      os.Getenv("DATABASE_PATH"),
		ContentDir:        os.Getenv("CONTENT_DIR"),
		StaticDir:         os.Getenv("STATIC_DIR"),
		DisqusShortname:   os.Getenv("DISQUS_SHORTNAME"),
		GoogleAnalyticsID: os.Getenv("GOOGLE_ANALYTICS_ID"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		SessionSecret:     os.Getenv("ADMIN_SESSION_SECRET"),
	}

	var err error
	if cfg.Navigation, err = parseLinks(os.Getenv("SITE_NAV")); err != nil {
		return SiteConfig{}, fmt.Errorf("folio: SITE_NAV: %w", err)
	}
	if cfg.ExternalLinks, err = parseLinks(os.Getenv("SITE_LINKS")); err != nil {
		return SiteConfig{}, fmt.Errorf("folio: SITE_LINKS: %w", err)
	}
	if cfg.CookieSecure, err = envBool("COOKIE_SECURE"); err != nil {
		return SiteConfig{}, err
	}
	if cfg.MetricsEnabled, err = envBool("METRICS_ENABLED"); err != nil {
		return SiteConfig{}, err
	}
	if v := os.Getenv("POST_CACHE_TTL"); v != "" {
		if cfg.PostCacheTTL, err = time.ParseDuration(v); err != nil {
			return SiteConfig{}, fmt.Errorf("folio: POST_CACHE_TTL: %w", err)
		}
	}
	cfg.setDefaults()
	return cfg, nil
}

// parseLinks parses "Title=url,Title=url". An empty string yields nil.
func parseLinks(s string) ([]views.Link, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var links []views.Link
	for _, part := range FilterEmpty(strings.Split(s, ",")) {
		title, u, ok := strings.Cut(part, "=")
		title, u = strings.TrimSpace(title), strings.TrimSpace(u)
		if !ok || title == "" || u == "" {
			return nil, fmt.Errorf("invalid link %q, want Title=url", part)
		}
		links = append(links, views.Link{Title: title, URL: u})
	}
	return links, nil
}

func envBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("folio: %s: %w", key, err)
	}
	return b, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithViews replaces the default templates.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}
