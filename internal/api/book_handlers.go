package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmarkapp/shelfmark-server/internal/http/response"
)

// handleListBooks returns catalog books matching the optional q and category
// query parameters, each flagged with the member's borrow state.
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	books, err := s.bookService.List(ctx, userID, query, category)
	if err != nil {
		s.logger.Error("Failed to list books", "error", err, "user_id", userID)
		response.InternalError(w, "Failed to retrieve books", s.logger)
		return
	}

	response.Success(w, books, s.logger)
}

// handleGetBook returns a single catalog book by ID.
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	id := chi.URLParam(r, "id")

	if id == "" {
		response.BadRequest(w, "Book ID is required", s.logger)
		return
	}

	book, err := s.bookService.Get(ctx, userID, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, book, s.logger)
}

// handleListCategories returns the catalog's categories.
func (s *Server) handleListCategories(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, s.bookService.Categories(), s.logger)
}
