// Package catalog provides the read-only book catalog. The catalog is an
// ordered, immutable registry: records are fixed when a snapshot is loaded
// and queries never mutate it. Reloading swaps in a whole new snapshot.
package catalog

import (
	"strings"
	"sync"

	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
	"github.com/shelfmarkapp/shelfmark-server/internal/errors"
)

// AllCategories is the sentinel category filter value that matches every book.
const AllCategories = "all"

// Catalog is the book registry. All reads operate on an immutable snapshot,
// so a reload never tears a request's view of the catalog.
type Catalog struct {
	mu   sync.RWMutex
	snap *snapshot
}

// snapshot is one immutable generation of the catalog.
type snapshot struct {
	books      []domain.BookRecord
	byID       map[string]int
	categories []string
}

// New creates a catalog from an ordered list of books.
// Order is preserved for listing; duplicate IDs keep the first record.
func New(books []domain.BookRecord) *Catalog {
	c := &Catalog{}
	c.replace(books)
	return c
}

// replace swaps in a new snapshot built from the given books.
func (c *Catalog) replace(books []domain.BookRecord) {
	snap := &snapshot{
		byID: make(map[string]int, len(books)),
	}

	seenCategory := make(map[string]bool)
	for _, book := range books {
		if _, dup := snap.byID[book.ID]; dup {
			continue
		}
		snap.byID[book.ID] = len(snap.books)
		snap.books = append(snap.books, book)

		if !seenCategory[book.Category] {
			seenCategory[book.Category] = true
			snap.categories = append(snap.categories, book.Category)
		}
	}

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()
}

// current returns the active snapshot.
func (c *Catalog) current() *snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// FindByID returns the book with the given id.
func (c *Catalog) FindByID(id string) (*domain.BookRecord, error) {
	snap := c.current()
	idx, ok := snap.byID[id]
	if !ok {
		return nil, errors.NotFoundf("book %q not found", id)
	}
	book := snap.books[idx]
	return &book, nil
}

// List returns all books in insertion order. The returned slice is a copy;
// callers may not reach the snapshot through it.
func (c *Catalog) List() []domain.BookRecord {
	snap := c.current()
	out := make([]domain.BookRecord, len(snap.books))
	copy(out, snap.books)
	return out
}

// Filter returns books matching a case-insensitive substring query on title
// OR author, AND an exact category (or the "all" sentinel). An empty query
// matches everything.
func (c *Catalog) Filter(query, category string) []domain.BookRecord {
	snap := c.current()
	query = strings.ToLower(query)

	var out []domain.BookRecord
	for _, book := range snap.books {
		matchesSearch := query == "" ||
			strings.Contains(strings.ToLower(book.Title), query) ||
			strings.Contains(strings.ToLower(book.Author), query)
		matchesCategory := category == "" || category == AllCategories ||
			book.Category == category

		if matchesSearch && matchesCategory {
			out = append(out, book)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order, prefixed
// with the "all" sentinel the way the catalog view presents them.
func (c *Catalog) Categories() []string {
	snap := c.current()
	out := make([]string, 0, len(snap.categories)+1)
	out = append(out, AllCategories)
	out = append(out, snap.categories...)
	return out
}

// Len returns the number of books in the catalog.
func (c *Catalog) Len() int {
	return len(c.current().books)
}
