package views

// SiteConfig holds the site-wide settings templates read.
type SiteConfig struct {
	Name              string
	URL               string
	Description       string
	Author            string
	Navigation        []Link
	ExternalLinks     []Link
	GoogleAnalyticsID string
}

// Link is a titled navigation or external link.
type Link struct {
	Title string
	URL   string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Image is an uploaded image listed in the admin dashboard.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}
