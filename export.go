package folio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"

	"github.com/kolharsam/folio/discussion"
	"github.com/kolharsam/folio/views"
)

// ErrExportOverlapsStatic is returned by Export when the export directory
// and the static dir overlap.
var ErrExportOverlapsStatic = errors.New("folio: export dir overlaps static dir")

// Export renders the published site into dir as static files. Comment
// threads are resolved without a request, so their URLs come from each
// entry's identifier.
func (a *App) Export(ctx context.Context, dir string) error {
	if err := checkExportDir(dir, a.Config.StaticDir); err != nil {
		return err
	}
	if err := a.Open(); err != nil {
		return err
	}
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	pages, err := a.Cache.ListPages()
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("folio: create export dir: %w", err)
	}
	if err := a.exportStatic(dir); err != nil {
		return err
	}

	if err := writeComponent(ctx, filepath.Join(dir, "index.html"), a.Views.Home(posts, "", tags)); err != nil {
		return err
	}
	for _, p := range posts {
		if err := ctx.Err(); err != nil {
			return err
		}
		thread := a.threadFor(p, discussion.Static())
		cmp := a.Views.Post(p, views.FilterRelatedPosts(p, posts), thread)
		if err := writeComponent(ctx, filepath.Join(dir, "blog", p.Slug, "index.html"), cmp); err != nil {
			return err
		}
	}
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeComponent(ctx, filepath.Join(dir, p.Slug, "index.html"), a.Views.Page(p)); err != nil {
			return err
		}
	}
	if err := writeComponent(ctx, filepath.Join(dir, "404.html"), a.Views.NotFound()); err != nil {
		return err
	}

	if err := writeWith(filepath.Join(dir, "sitemap.xml"), func(w io.Writer) error {
		return a.writeSitemap(w, posts, pages)
	}); err != nil {
		return err
	}
	if err := writeWith(filepath.Join(dir, "feed.xml"), func(w io.Writer) error {
		return a.writeFeed(w, posts)
	}); err != nil {
		return err
	}
	manifest, err := a.manifest()
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, "manifest.webmanifest"), manifest); err != nil {
		return err
	}

	a.log.Info().Int("posts", len(posts)).Int("pages", len(pages)).Str("dir", dir).Msg("site exported")
	return nil
}

// checkExportDir refuses an export whose public/ directory is, or contains,
// staticDir, and one that writes inside staticDir.
func checkExportDir(dir, staticDir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("folio: resolve export dir: %w", err)
	}
	absStatic, err := filepath.Abs(staticDir)
	if err != nil {
		return fmt.Errorf("folio: resolve static dir: %w", err)
	}
	if within(absStatic, filepath.Join(absDir, "public")) || within(absDir, absStatic) {
		return fmt.Errorf("%w: exporting to %s would overwrite %s", ErrExportOverlapsStatic, absDir, absStatic)
	}
	return nil
}

// within reports whether path is parent or lies below it.
func within(path, parent string) bool {
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// exportStatic copies the user's static dir to public/ and fills in the
// built-in assets the user did not override.
func (a *App) exportStatic(dir string) error {
	public := filepath.Join(dir, "public")
	if err := os.RemoveAll(public); err != nil {
		return err
	}
	if _, err := os.Stat(a.Config.StaticDir); err == nil {
		if err := os.CopyFS(public, os.DirFS(a.Config.StaticDir)); err != nil {
			return fmt.Errorf("folio: copy static dir: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	style, err := EmbeddedAssets.ReadFile("embedded/style.css")
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(public, "style.css"), style); err != nil {
		return err
	}

	favicon, err := os.ReadFile(filepath.Join(a.Config.StaticDir, "favicon.svg"))
	if err != nil {
		if favicon, err = EmbeddedAssets.ReadFile("embedded/favicon.svg"); err != nil {
			return err
		}
	}
	if err := writeFile(filepath.Join(dir, "favicon.svg"), favicon); err != nil {
		return err
	}

	robots, err := os.ReadFile(filepath.Join(a.Config.StaticDir, "robots.txt"))
	if err != nil {
		robots = []byte(a.robots())
	}
	return writeFile(filepath.Join(dir, "robots.txt"), robots)
}

func writeComponent(ctx context.Context, path string, cmp templ.Component) error {
	var buf bytes.Buffer
	if err := cmp.Render(ctx, &buf); err != nil {
		return fmt.Errorf("folio: render %s: %w", path, err)
	}
	return writeFile(path, buf.Bytes())
}

func writeWith(path string, fn func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return fmt.Errorf("folio: render %s: %w", path, err)
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
