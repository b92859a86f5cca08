package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shelfmarkapp/shelfmark-server/internal/catalog"
	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
	"github.com/shelfmarkapp/shelfmark-server/internal/store"
)

// BookService answers catalog browse queries, decorating each book with
// whether the requesting member currently holds it.
type BookService struct {
	catalog *catalog.Catalog
	store   *store.Store
	logger  *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(catalog *catalog.Catalog, store *store.Store, logger *slog.Logger) *BookService {
	return &BookService{
		catalog: catalog,
		store:   store,
		logger:  logger,
	}
}

// BookDetail is a catalog book plus the member's borrow state.
type BookDetail struct {
	domain.BookRecord
	Borrowed bool `json:"borrowed"`
}

// List returns catalog books matching the query and category filters, in
// catalog order. An empty query matches everything; category "all" (or
// empty) spans every shelf.
func (s *BookService) List(ctx context.Context, userID, query, category string) ([]BookDetail, error) {
	books := s.catalog.Filter(query, category)

	borrowed, err := s.borrowedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]BookDetail, 0, len(books))
	for _, book := range books {
		details = append(details, BookDetail{
			BookRecord: book,
			Borrowed:   borrowed[book.ID],
		})
	}

	return details, nil
}

// Get returns a single catalog book with the member's borrow state.
func (s *BookService) Get(ctx context.Context, userID, bookID string) (*BookDetail, error) {
	book, err := s.catalog.FindByID(bookID)
	if err != nil {
		return nil, err
	}

	hasLoan, err := s.store.HasLoan(ctx, userID, bookID)
	if err != nil {
		return nil, fmt.Errorf("check loan: %w", err)
	}

	return &BookDetail{
		BookRecord: *book,
		Borrowed:   hasLoan,
	}, nil
}

// Categories returns the catalog's categories with "all" first.
func (s *BookService) Categories() []string {
	return s.catalog.Categories()
}

// borrowedSet returns the IDs of every book the member holds.
func (s *BookService) borrowedSet(ctx context.Context, userID string) (map[string]bool, error) {
	loans, err := s.store.ListLoans(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}

	set := make(map[string]bool, len(loans))
	for _, loan := range loans {
		set[loan.BookID] = true
	}
	return set, nil
}
