package folio

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/kolharsam/folio/content"
	"github.com/kolharsam/folio/views"
)

// Store wraps the SQLite content index and image metadata.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the exporter read while the server writes; writers wait on
	// the busy timeout instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA foreign_keys=ON;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS entries (
    kind TEXT NOT NULL,
    slug TEXT NOT NULL,
    id TEXT NOT NULL UNIQUE,
    identifier TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    summary TEXT NOT NULL,
    html TEXT NOT NULL,
    source TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1,
    PRIMARY KEY (kind, slug)
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

const entryColumns = `kind, slug, id, identifier, title, date, tags, summary, html, source, published`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (content.Post, error) {
	var p content.Post
	var kind, tags string
	var published int
	if err := row.Scan(&kind, &p.Slug, &p.ID, &p.Identifier, &p.Title, &p.Date, &tags, &p.Summary, &p.HTML, &p.Source, &published); err != nil {
		return content.Post{}, err
	}
	p.Kind = content.Kind(kind)
	p.Tags = ParseTags(tags)
	p.Published = published == 1
	return p, nil
}

func (s *Store) queryEntries(query string, args ...any) ([]content.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []content.Post
	for rows.Next() {
		p, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListPosts returns published posts ordered by date descending.
// If tag is non-empty, results are filtered to posts containing that tag.
func (s *Store) ListPosts(tag string) ([]content.Post, error) {
	if tag == "" {
		return s.queryEntries(`SELECT `+entryColumns+` FROM entries WHERE kind = ? AND published = 1 ORDER BY date DESC, slug`, content.KindPost)
	}
	return s.queryEntries(`SELECT `+entryColumns+` FROM entries WHERE kind = ? AND published = 1 AND instr(tags, ',' || ? || ',') > 0 ORDER BY date DESC, slug`,
		content.KindPost, content.NormalizeTag(tag))
}

// ListPages returns published pages ordered by slug.
func (s *Store) ListPages() ([]content.Post, error) {
	return s.queryEntries(`SELECT `+entryColumns+` FROM entries WHERE kind = ? AND published = 1 ORDER BY slug`, content.KindPage)
}

// ListTags returns a sorted, deduplicated slice of all tags from published posts.
func (s *Store) ListTags() ([]string, error) {
	rows, err := s.db.Query(`SELECT tags FROM entries WHERE kind = ? AND published = 1`, content.KindPost)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range ParseTags(tags) {
			set[t] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	result := make([]string, 0, len(set))
	for t := range set {
		result = append(result, t)
	}
	sort.Strings(result)
	return result, nil
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (content.Post, error) {
	return scanEntry(s.db.QueryRow(`SELECT `+entryColumns+` FROM entries WHERE kind = ? AND slug = ? AND published = 1`, content.KindPost, slug))
}

// GetPage returns a single published page by slug.
func (s *Store) GetPage(slug string) (content.Post, error) {
	return scanEntry(s.db.QueryRow(`SELECT `+entryColumns+` FROM entries WHERE kind = ? AND slug = ? AND published = 1`, content.KindPage, slug))
}

// GetEntryAny returns an entry regardless of published status (for admin).
func (s *Store) GetEntryAny(kind content.Kind, slug string) (content.Post, error) {
	return scanEntry(s.db.QueryRow(`SELECT `+entryColumns+` FROM entries WHERE kind = ? AND slug = ?`, kind, slug))
}

// ListAllEntries returns every entry, drafts included, posts before pages,
// newest first.
func (s *Store) ListAllEntries() ([]content.Post, error) {
	return s.queryEntries(`SELECT ` + entryColumns + ` FROM entries ORDER BY kind DESC, date DESC, slug`)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func saveEntry(db execer, p content.Post) error {
	published := 0
	if p.Published {
		published = 1
	}
	_, err := db.Exec(`INSERT OR REPLACE INTO entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Kind, p.Slug, p.ID, p.Identifier, p.Title, p.Date, encodeTags(p.Tags), p.Summary, p.HTML, p.Source, published)
	return err
}

// SaveEntry upserts an entry. Tags are normalized to lowercase.
func (s *Store) SaveEntry(p content.Post) error {
	return saveEntry(s.db, p)
}

// DeleteEntry removes an entry by kind and slug.
func (s *Store) DeleteEntry(kind content.Kind, slug string) error {
	_, err := s.db.Exec(`DELETE FROM entries WHERE kind = ? AND slug = ?`, kind, slug)
	return err
}

// ReplaceAll swaps the whole index for entries in one transaction.
func (s *Store) ReplaceAll(entries []content.Post) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return err
	}
	for _, p := range entries {
		if err := saveEntry(tx, p); err != nil {
			return fmt.Errorf("index %s: %w", p.Source, err)
		}
	}
	return tx.Commit()
}

// CountEntries returns the number of indexed entries per kind.
func (s *Store) CountEntries() (map[content.Kind]int, error) {
	rows, err := s.db.Query(`SELECT kind, COUNT(*) FROM entries GROUP BY kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[content.Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[content.Kind(kind)] = n
	}
	return counts, rows.Err()
}

// SaveImage records metadata for an uploaded image.
func (s *Store) SaveImage(img views.Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns uploaded images, newest first.
func (s *Store) ListImages() ([]views.Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC, filename`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []views.Image
	for rows.Next() {
		var img views.Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// ImageExists reports whether filename is already recorded.
func (s *Store) ImageExists(filename string) (bool, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM images WHERE filename = ?`, filename).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}

func encodeTags(tags []string) string {
	return "," + strings.Join(content.CleanTags(tags), ",") + ","
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
