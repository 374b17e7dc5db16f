package folio

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/kolharsam/folio/content"
	"github.com/kolharsam/folio/discussion"
	"github.com/kolharsam/folio/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

// handleAdminPost previews any entry, drafts included. The comment thread is
// resolved against the entry's public path rather than the admin URL.
func (a *App) handleAdminPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	kind := content.KindPost
	if c.QueryParam("kind") == string(content.KindPage) {
		kind = content.KindPage
	}
	entry, err := a.Store.GetEntryAny(kind, c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	if kind == content.KindPage {
		return Render(c, a.Views.Page(entry))
	}
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	thread := a.threadFor(entry, discussion.Runtime(entry.Link()))
	return Render(c, a.Views.Post(entry, views.FilterRelatedPosts(entry, posts), thread))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		a.log.Warn().Str("ip", ip).Msg("admin login rate limited")
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		a.log.Info().Str("ip", ip).Msg("admin login")
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	a.log.Warn().Str("ip", ip).Msg("admin login failed")
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleAdminSync re-reads the content directory without a restart.
func (a *App) handleAdminSync(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	n, err := a.Sync()
	if err != nil {
		a.log.Error().Err(err).Msg("content sync failed")
		return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape("Sync failed: "+err.Error()))
	}
	return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape(fmt.Sprintf("Indexed %d entries.", n)))
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	entries, err := a.Store.ListAllEntries()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(entries, msg, CsrfToken(c)))
}
