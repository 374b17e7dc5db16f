package folio

import (
	"database/sql"
	"sync"
	"time"

	"github.com/kolharsam/folio/content"
)

// ErrNotFound is returned when a requested entry does not exist.
var ErrNotFound = sql.ErrNoRows

// PostCache is an in-memory TTL cache of published posts, pages and tags.
type PostCache struct {
	mu      sync.RWMutex
	snap    *snapshot
	fetched time.Time
	ttl     time.Duration
	store   *Store
	now     func() time.Time
}

type snapshot struct {
	posts []content.Post
	pages []content.Post
	tags  []string
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl, now: time.Now}
}

func (c *PostCache) valid() bool {
	return c.snap != nil && c.now().Sub(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts("")
	if err != nil {
		return err
	}
	pages, err := c.store.ListPages()
	if err != nil {
		return err
	}
	tags, err := c.store.ListTags()
	if err != nil {
		return err
	}
	c.snap = &snapshot{posts: posts, pages: pages, tags: tags}
	c.fetched = c.now()
	return nil
}

// current returns a fresh snapshot. It tries a read lock first and only
// takes the write lock when a reload is needed.
func (c *PostCache) current() (*snapshot, error) {
	c.mu.RLock()
	if c.valid() {
		snap := c.snap
		c.mu.RUnlock()
		return snap, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.snap, nil
}

// ListPosts returns published posts, optionally filtered by tag.
func (c *PostCache) ListPosts(tag string) ([]content.Post, error) {
	snap, err := c.current()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return snap.posts, nil
	}
	var filtered []content.Post
	for _, p := range snap.posts {
		if p.HasTag(tag) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ListPages returns published pages.
func (c *PostCache) ListPages() ([]content.Post, error) {
	snap, err := c.current()
	if err != nil {
		return nil, err
	}
	return snap.pages, nil
}

// ListTags returns all unique tags from published posts.
func (c *PostCache) ListTags() ([]string, error) {
	snap, err := c.current()
	if err != nil {
		return nil, err
	}
	return snap.tags, nil
}

// GetPost returns a single published post by slug.
func (c *PostCache) GetPost(slug string) (content.Post, error) {
	snap, err := c.current()
	if err != nil {
		return content.Post{}, err
	}
	return find(snap.posts, slug)
}

// GetPage returns a single published page by slug.
func (c *PostCache) GetPage(slug string) (content.Post, error) {
	snap, err := c.current()
	if err != nil {
		return content.Post{}, err
	}
	return find(snap.pages, slug)
}

func find(entries []content.Post, slug string) (content.Post, error) {
	for _, p := range entries {
		if p.Slug == slug {
			return p, nil
		}
	}
	return content.Post{}, ErrNotFound
}
