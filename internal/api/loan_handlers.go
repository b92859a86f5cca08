package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmarkapp/shelfmark-server/internal/http/response"
)

// BorrowRequest is the request body for checking a book out.
type BorrowRequest struct {
	BookID string `json:"book_id"`
}

// handleBorrowBook checks a book out for the member.
func (s *Server) handleBorrowBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	var req BorrowRequest
	if err := decodeRequest(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if req.BookID == "" {
		response.BadRequest(w, "book_id is required", s.logger)
		return
	}

	loan, err := s.loanService.Borrow(ctx, userID, req.BookID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, loan, s.logger)
}

// handleReturnBook checks a borrowed book back in.
func (s *Server) handleReturnBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	bookID := chi.URLParam(r, "bookID")

	if bookID == "" {
		response.BadRequest(w, "Book ID is required", s.logger)
		return
	}

	if err := s.loanService.Return(ctx, userID, bookID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleListLoans returns the member's loans in checkout order.
func (s *Server) handleListLoans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	loans, err := s.loanService.List(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list loans", "error", err, "user_id", userID)
		response.InternalError(w, "Failed to retrieve loans", s.logger)
		return
	}

	response.Success(w, loans, s.logger)
}

// handleLoanSummary returns the member's aggregate loan counts.
func (s *Server) handleLoanSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	summary, err := s.loanService.Summary(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to summarize loans", "error", err, "user_id", userID)
		response.InternalError(w, "Failed to retrieve loan summary", s.logger)
		return
	}

	response.Success(w, summary, s.logger)
}
