package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kolharsam/folio/markdown"
)

// idNamespace seeds IDs derived from source paths for files without an
// explicit id.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/kolharsam/folio/content"))

// ErrInvalidDate is returned for frontmatter dates not in DateLayout.
var ErrInvalidDate = errors.New("content: invalid date")

type frontMatter struct {
	ID          string   `yaml:"id" toml:"id"`
	Identifier  string   `yaml:"identifier" toml:"identifier"`
	Title       string   `yaml:"title" toml:"title"`
	Slug        string   `yaml:"slug" toml:"slug"`
	Date        string   `yaml:"date" toml:"date"`
	Tags        []string `yaml:"tags" toml:"tags"`
	Description string   `yaml:"description" toml:"description"`
	Draft       bool     `yaml:"draft" toml:"draft"`
}

// Loader reads the content tree rooted at a directory.
type Loader struct {
	fsys fs.FS
	md   *markdown.Renderer
	log  zerolog.Logger
}

// NewLoader returns a Loader for the content directory root.
func NewLoader(root string, md *markdown.Renderer, logger zerolog.Logger) *Loader {
	return NewLoaderFS(os.DirFS(root), md, logger)
}

// NewLoaderFS returns a Loader reading from fsys.
func NewLoaderFS(fsys fs.FS, md *markdown.Renderer, logger zerolog.Logger) *Loader {
	return &Loader{fsys: fsys, md: md, log: logger}
}

// Load returns every post and page, posts first, each group newest first.
// A missing posts/ or pages/ directory is not an error.
func (l *Loader) Load() ([]Post, error) {
	var all []Post
	for _, dir := range []struct {
		name string
		kind Kind
	}{{"posts", KindPost}, {"pages", KindPage}} {
		entries, err := l.loadDir(dir.name, dir.kind)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Date != entries[j].Date {
				return entries[i].Date > entries[j].Date
			}
			return entries[i].Slug < entries[j].Slug
		})
		all = append(all, entries...)
	}
	if err := checkDuplicates(all); err != nil {
		return nil, err
	}
	return all, nil
}

func (l *Loader) loadDir(dir string, kind Kind) ([]Post, error) {
	var out []Post
	err := fs.WalkDir(l.fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == dir {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() || path.Ext(p) != ".md" {
			return nil
		}
		f, err := l.fsys.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		post, err := l.Parse(f, p, kind)
		if err != nil {
			return err
		}
		l.log.Debug().Str("source", p).Str("slug", post.Slug).Str("kind", string(kind)).Msg("loaded content")
		out = append(out, post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Parse reads one markdown document. source is its path relative to the
// content root; it determines the default slug and derived ID.
func (l *Loader) Parse(r io.Reader, source string, kind Kind) (Post, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(r, &fm)
	if err != nil {
		return Post{}, fmt.Errorf("%s: parse frontmatter: %w", source, err)
	}
	date := strings.TrimSpace(fm.Date)
	if date != "" {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return Post{}, fmt.Errorf("%s: %w %q, use YYYY-MM-DD", source, ErrInvalidDate, date)
		}
	}
	slug := strings.TrimSpace(fm.Slug)
	if slug == "" {
		slug = slugFromSource(source)
	}
	id := strings.TrimSpace(fm.ID)
	if id == "" {
		id = DeriveID(source)
	}
	title := strings.TrimSpace(fm.Title)
	if title == "" {
		l.log.Warn().Str("source", source).Msg("content has no title")
	}
	return Post{
		ID:         id,
		Identifier: strings.TrimSpace(fm.Identifier),
		Slug:       slug,
		Kind:       kind,
		Title:      title,
		Date:       date,
		Tags:       CleanTags(fm.Tags),
		Summary:    strings.TrimSpace(fm.Description),
		HTML:       string(l.md.Render(bytes.TrimSpace(body))),
		Published:  !fm.Draft,
		Source:     source,
	}, nil
}

// DeriveID returns the stable ID used for a source file without an
// explicit id.
func DeriveID(source string) string {
	return uuid.NewSHA1(idNamespace, []byte(path.Clean(source))).String()
}

func slugFromSource(source string) string {
	base := path.Base(source)
	if base == "index.md" {
		return path.Base(path.Dir(source))
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// CleanTags normalizes tags and drops blanks and repeats. Commas separate
// tags in storage, so a tag containing commas is split into several.
func CleanTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		for _, part := range strings.Split(t, ",") {
			n := NormalizeTag(part)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func checkDuplicates(posts []Post) error {
	seen := make(map[string]string, len(posts))
	ids := make(map[string]string, len(posts))
	for _, p := range posts {
		key := string(p.Kind) + "/" + p.Slug
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("content: %s and %s both use %s slug %q", prev, p.Source, p.Kind, p.Slug)
		}
		seen[key] = p.Source
		if prev, ok := ids[p.ID]; ok {
			return fmt.Errorf("content: %s and %s share id %q", prev, p.Source, p.ID)
		}
		ids[p.ID] = p.Source
	}
	return nil
}
