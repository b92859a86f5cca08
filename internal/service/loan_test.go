package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmarkapp/shelfmark-server/internal/catalog"
	"github.com/shelfmarkapp/shelfmark-server/internal/date"
	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
	domainerrors "github.com/shelfmarkapp/shelfmark-server/internal/errors"
	"github.com/shelfmarkapp/shelfmark-server/internal/store"
)

// setupLoanTest creates loan and book services backed by the built-in
// catalog and temporary storage.
func setupLoanTest(t *testing.T) (*LoanService, *BookService) {
	t.Helper()

	s, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	c := catalog.New(catalog.DefaultBooks())
	return NewLoanService(c, s, nil), NewBookService(c, s, nil)
}

func TestLoanService_Borrow(t *testing.T) {
	loans, _ := setupLoanTest(t)
	ctx := context.Background()

	detail, err := loans.Borrow(ctx, "user-1", "1")
	require.NoError(t, err)

	assert.Equal(t, "1", detail.Book.ID)
	assert.Equal(t, date.Today(), detail.BorrowedDate)
	assert.Equal(t, date.Today().AddDays(domain.LoanPeriodDays), detail.DueDate)
	assert.Equal(t, domain.LoanPeriodDays, detail.DaysUntilDue)
	assert.Equal(t, domain.LoanStatusActive, detail.Status)
}

func TestLoanService_Borrow_UnknownBook(t *testing.T) {
	loans, _ := setupLoanTest(t)

	_, err := loans.Borrow(context.Background(), "user-1", "no-such-book")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestLoanService_Borrow_UnavailableBook(t *testing.T) {
	loans, _ := setupLoanTest(t)

	// Book 7 is checked out in the built-in catalog.
	_, err := loans.Borrow(context.Background(), "user-1", "7")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnavailable))
}

func TestLoanService_Borrow_Twice(t *testing.T) {
	loans, _ := setupLoanTest(t)
	ctx := context.Background()

	_, err := loans.Borrow(ctx, "user-1", "2")
	require.NoError(t, err)

	_, err = loans.Borrow(ctx, "user-1", "2")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrAlreadyBorrowed))

	// The duplicate attempt must not disturb the ledger.
	list, err := loans.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestLoanService_Return(t *testing.T) {
	loans, _ := setupLoanTest(t)
	ctx := context.Background()

	_, err := loans.Borrow(ctx, "user-1", "3")
	require.NoError(t, err)

	require.NoError(t, loans.Return(ctx, "user-1", "3"))

	borrowed, err := loans.IsBorrowed(ctx, "user-1", "3")
	require.NoError(t, err)
	assert.False(t, borrowed)

	// The book can be checked out again after a return.
	_, err = loans.Borrow(ctx, "user-1", "3")
	require.NoError(t, err)
}

func TestLoanService_Return_NotBorrowed(t *testing.T) {
	loans, _ := setupLoanTest(t)

	err := loans.Return(context.Background(), "user-1", "4")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotBorrowed))
}

func TestLoanService_List_CheckoutOrder(t *testing.T) {
	loans, _ := setupLoanTest(t)
	ctx := context.Background()

	for _, bookID := range []string{"5", "1", "3"} {
		_, err := loans.Borrow(ctx, "user-1", bookID)
		require.NoError(t, err)
	}

	list, err := loans.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 3)

	var ids []string
	for _, d := range list {
		ids = append(ids, d.Book.ID)
	}
	assert.Equal(t, []string{"5", "1", "3"}, ids)
}

func TestLoanService_List_ScopedToUser(t *testing.T) {
	loans, _ := setupLoanTest(t)
	ctx := context.Background()

	_, err := loans.Borrow(ctx, "user-1", "1")
	require.NoError(t, err)
	_, err = loans.Borrow(ctx, "user-2", "2")
	require.NoError(t, err)

	list, err := loans.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1", list[0].Book.ID)
}

func TestLoanService_Summary(t *testing.T) {
	loans, _ := setupLoanTest(t)
	ctx := context.Background()

	_, err := loans.Borrow(ctx, "user-1", "1")
	require.NoError(t, err)
	_, err = loans.Borrow(ctx, "user-1", "2")
	require.NoError(t, err)

	summary, err := loans.Summary(ctx, "user-1")
	require.NoError(t, err)

	// A fresh fourteen-day loan is active and outside the seven-day window.
	assert.Equal(t, 2, summary.Active)
	assert.Equal(t, 0, summary.DueThisWeek)
	assert.Equal(t, 0, summary.Overdue)
}

func TestBookService_List_BorrowedFlags(t *testing.T) {
	loans, books := setupLoanTest(t)
	ctx := context.Background()

	_, err := loans.Borrow(ctx, "user-1", "2")
	require.NoError(t, err)

	list, err := books.List(ctx, "user-1", "", catalog.AllCategories)
	require.NoError(t, err)
	require.Len(t, list, 8)

	for _, b := range list {
		assert.Equal(t, b.ID == "2", b.Borrowed, "book %s", b.ID)
	}
}

func TestBookService_List_Filters(t *testing.T) {
	_, books := setupLoanTest(t)

	list, err := books.List(context.Background(), "user-1", "sapiens", catalog.AllCategories)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sapiens", list[0].Title)
}

func TestBookService_Get(t *testing.T) {
	loans, books := setupLoanTest(t)
	ctx := context.Background()

	_, err := loans.Borrow(ctx, "user-1", "1")
	require.NoError(t, err)

	detail, err := books.Get(ctx, "user-1", "1")
	require.NoError(t, err)
	assert.True(t, detail.Borrowed)

	other, err := books.Get(ctx, "user-2", "1")
	require.NoError(t, err)
	assert.False(t, other.Borrowed)

	_, err = books.Get(ctx, "user-1", "missing")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestBookService_Categories(t *testing.T) {
	_, books := setupLoanTest(t)

	categories := books.Categories()
	require.NotEmpty(t, categories)
	assert.Equal(t, catalog.AllCategories, categories[0])
}
