package folio

import (
	"encoding/json"
	"encoding/xml"
	"io"

	"github.com/kolharsam/folio/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) writeSitemap(w io.Writer, posts, pages []content.Post) error {
	base := a.Config.URL
	urls := make([]sitemapURL, 0, 1+len(posts)+len(pages))
	urls = append(urls, sitemapURL{Loc: base + "/"})
	for _, p := range posts {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, p.Link()), LastMod: p.Date})
	}
	for _, p := range pages {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, p.Link()), LastMod: p.Date})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(sitemap)
}

func (a *App) robots() string {
	return "User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: " + a.Config.URL + "/sitemap.xml" + "\n"
}

type manifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

type webManifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description,omitempty"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []manifestIcon `json:"icons"`
}

func (a *App) manifest() ([]byte, error) {
	return json.MarshalIndent(webManifest{
		Name:            a.Config.Name,
		ShortName:       a.Config.Name,
		Description:     a.Config.Description,
		StartURL:        "/",
		Display:         "standalone",
		BackgroundColor: "#ffffff",
		ThemeColor:      a.Config.ThemeColor,
		Icons: []manifestIcon{
			{Src: "/favicon.svg", Sizes: "any", Type: "image/svg+xml"},
		},
	}, "", "  ")
}
