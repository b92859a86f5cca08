package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shelfmarkapp/shelfmark-server/internal/catalog"
	"github.com/shelfmarkapp/shelfmark-server/internal/date"
	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
	domainerrors "github.com/shelfmarkapp/shelfmark-server/internal/errors"
	"github.com/shelfmarkapp/shelfmark-server/internal/store"
)

// LoanService owns the loan lifecycle: borrowing, returning, and the due-date
// views computed from the ledger.
type LoanService struct {
	catalog *catalog.Catalog
	store   *store.Store
	logger  *slog.Logger
}

// NewLoanService creates a new loan service.
func NewLoanService(catalog *catalog.Catalog, store *store.Store, logger *slog.Logger) *LoanService {
	return &LoanService{
		catalog: catalog,
		store:   store,
		logger:  logger,
	}
}

// LoanDetail is a ledger entry joined with its catalog book and the due-date
// fields computed at read time.
type LoanDetail struct {
	Book         domain.BookRecord `json:"book"`
	BorrowedDate date.Date         `json:"borrowed_date"`
	DueDate      date.Date         `json:"due_date"`
	DaysUntilDue int               `json:"days_until_due"`
	Status       domain.LoanStatus `json:"status"`
}

// Borrow checks a book out for the member. The loan runs for fourteen days
// from today.
func (s *LoanService) Borrow(ctx context.Context, userID, bookID string) (*LoanDetail, error) {
	book, err := s.catalog.FindByID(bookID)
	if err != nil {
		return nil, err
	}

	if !book.Available {
		return nil, domainerrors.Unavailablef("book %q is not available for checkout", book.Title)
	}

	loan := domain.NewLoanRecord(userID, bookID, date.Today())
	if err := s.store.CreateLoan(ctx, loan); err != nil {
		if errors.Is(err, store.ErrLoanExists) {
			return nil, domainerrors.AlreadyBorrowedf("book %q is already on loan to you", book.Title)
		}
		return nil, fmt.Errorf("create loan: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Book borrowed",
			"user_id", userID,
			"book_id", bookID,
			"due_date", loan.DueDate.String(),
		)
	}

	return s.detail(loan, book, time.Now()), nil
}

// Return checks a borrowed book back in. Returning a book the member does
// not hold is an error, including books that don't exist at all.
func (s *LoanService) Return(ctx context.Context, userID, bookID string) error {
	if err := s.store.DeleteLoan(ctx, userID, bookID); err != nil {
		if errors.Is(err, store.ErrLoanNotFound) {
			return domainerrors.NotBorrowedf("book %q is not on loan to you", bookID)
		}
		return fmt.Errorf("delete loan: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Book returned",
			"user_id", userID,
			"book_id", bookID,
		)
	}

	return nil
}

// IsBorrowed reports whether the member currently holds the book.
func (s *LoanService) IsBorrowed(ctx context.Context, userID, bookID string) (bool, error) {
	return s.store.HasLoan(ctx, userID, bookID)
}

// List returns the member's loans in checkout order, each joined with its
// book and due-date view.
func (s *LoanService) List(ctx context.Context, userID string) ([]*LoanDetail, error) {
	loans, err := s.store.ListLoans(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}

	now := time.Now()
	details := make([]*LoanDetail, 0, len(loans))
	for _, loan := range loans {
		book, err := s.catalog.FindByID(loan.BookID)
		if err != nil {
			// The catalog was reloaded without this book. The loan stays in
			// the ledger but has nothing to show.
			if s.logger != nil {
				s.logger.Warn("Loan references unknown book",
					"user_id", userID,
					"book_id", loan.BookID,
				)
			}
			continue
		}
		details = append(details, s.detail(loan, book, now))
	}

	return details, nil
}

// Summary returns the member's aggregate loan counts.
func (s *LoanService) Summary(ctx context.Context, userID string) (domain.LoanSummary, error) {
	loans, err := s.store.ListLoans(ctx, userID)
	if err != nil {
		return domain.LoanSummary{}, fmt.Errorf("list loans: %w", err)
	}

	return domain.Summarize(loans, time.Now()), nil
}

func (s *LoanService) detail(loan *domain.LoanRecord, book *domain.BookRecord, now time.Time) *LoanDetail {
	return &LoanDetail{
		Book:         *book,
		BorrowedDate: loan.BorrowedDate,
		DueDate:      loan.DueDate,
		DaysUntilDue: loan.DaysUntilDue(now),
		Status:       loan.Status(now),
	}
}
