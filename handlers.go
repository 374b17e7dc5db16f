package folio

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/kolharsam/folio/content"
	"github.com/kolharsam/folio/discussion"
	"github.com/kolharsam/folio/internal/metrics"
	"github.com/kolharsam/folio/views"
)

func isPartial(c echo.Context, name string) bool {
	return c.Request().Header.Get("HX-Request") == "true" && c.QueryParam("partial") == name
}

func (a *App) handleHome(c echo.Context) error {
	tag := c.QueryParam("tag")
	posts, err := a.Cache.ListPosts(tag)
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	if isPartial(c, "blog") {
		return Render(c, a.Views.BlogSection(posts, tag, tags))
	}
	return Render(c, a.Views.Home(posts, tag, tags))
}

func (a *App) handlePost(c echo.Context) error {
	post, err := a.Cache.GetPost(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	related := views.FilterRelatedPosts(post, posts)
	thread := a.threadFor(post, discussion.Runtime(c.Request().URL.Path))
	if isPartial(c, "post") {
		return Render(c, a.Views.PostPartial(post, related, thread))
	}
	return Render(c, a.Views.Post(post, related, thread))
}

func (a *App) handlePage(c echo.Context) error {
	page, err := a.Cache.GetPage(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	return Render(c, a.Views.Page(page))
}

// threadFor builds the comment embed for post. The embed is left out when
// comments are disabled or the post has no thread key; a post without a
// resolvable URL still gets a thread keyed by its ID.
func (a *App) threadFor(post content.Post, rc discussion.RenderContext) templ.Component {
	if a.Config.DisqusShortname == "" {
		return templ.NopComponent
	}
	id, err := a.Resolver.Resolve(post.ThreadItem(), rc)
	if err != nil {
		metrics.DiscussionDegradedTotal.WithLabelValues(metrics.ReasonMissingThreadKey).Inc()
		a.log.Warn().Err(err).Str("source", post.Source).Msg("comments disabled for entry")
		return templ.NopComponent
	}
	if !id.HasURL() {
		metrics.DiscussionDegradedTotal.WithLabelValues(metrics.ReasonUnresolvedURL).Inc()
	}
	return discussion.Thread(a.Config.DisqusShortname, id)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	pages, err := a.Cache.ListPages()
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return a.writeSitemap(c.Response(), posts, pages)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return a.writeFeed(c.Response(), posts)
}

func (a *App) handleManifest(c echo.Context) error {
	data, err := a.manifest()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/manifest+json", data)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

// handleFavicon prefers the site's own favicon over the built-in one.
func (a *App) handleFavicon(c echo.Context) error {
	path := filepath.Join(a.Config.StaticDir, "favicon.svg")
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}
	data, err := EmbeddedAssets.ReadFile("embedded/favicon.svg")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/svg+xml", data)
}

func (a *App) handleRobots(c echo.Context) error {
	path := filepath.Join(a.Config.StaticDir, "robots.txt")
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}
	return c.String(http.StatusOK, a.robots())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("server error")
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
