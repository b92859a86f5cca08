package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
	"github.com/shelfmarkapp/shelfmark-server/internal/service"
)

func TestBorrowBook(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login("alice@example.com")

	resp := ts.do(http.MethodPost, "/api/v1/loans", token, map[string]any{"book_id": "1"})
	assert.Equal(t, http.StatusCreated, resp.Code)

	envelope := decodeEnvelope[service.LoanDetail](t, resp)
	assert.Equal(t, "1", envelope.Data.Book.ID)
	assert.Equal(t, domain.LoanPeriodDays, envelope.Data.DaysUntilDue)
	assert.Equal(t, domain.LoanStatusActive, envelope.Data.Status)
	assert.Equal(t, envelope.Data.BorrowedDate.AddDays(domain.LoanPeriodDays), envelope.Data.DueDate)
}

func TestBorrowBook_Errors(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login("alice@example.com")

	resp := ts.do(http.MethodPost, "/api/v1/loans", token, map[string]any{"book_id": "2"})
	require.Equal(t, http.StatusCreated, resp.Code)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{
			name:       "unknown book",
			body:       map[string]any{"book_id": "999"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unavailable book",
			body:       map[string]any{"book_id": "7"},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "already borrowed",
			body:       map[string]any{"book_id": "2"},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "missing book_id",
			body:       map[string]any{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.do(http.MethodPost, "/api/v1/loans", token, tt.body)
			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestReturnBook(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login("alice@example.com")

	resp := ts.do(http.MethodPost, "/api/v1/loans", token, map[string]any{"book_id": "4"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.do(http.MethodDelete, "/api/v1/loans/4", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	// Returning again is an error.
	resp = ts.do(http.MethodDelete, "/api/v1/loans/4", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestReturnBook_NeverBorrowed(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login("alice@example.com")

	resp := ts.do(http.MethodDelete, "/api/v1/loans/5", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListLoans_CheckoutOrder(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login("alice@example.com")

	for _, bookID := range []string{"5", "1", "3"} {
		resp := ts.do(http.MethodPost, "/api/v1/loans", token, map[string]any{"book_id": bookID})
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := ts.do(http.MethodGet, "/api/v1/loans", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[[]service.LoanDetail](t, resp)
	require.Len(t, envelope.Data, 3)

	var ids []string
	for _, d := range envelope.Data {
		ids = append(ids, d.Book.ID)
	}
	assert.Equal(t, []string{"5", "1", "3"}, ids)
}

func TestListLoans_Empty(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login("alice@example.com")

	resp := ts.do(http.MethodGet, "/api/v1/loans", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[[]service.LoanDetail](t, resp)
	assert.Empty(t, envelope.Data)
}

func TestLoanSummary(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login("alice@example.com")

	for _, bookID := range []string{"1", "2"} {
		resp := ts.do(http.MethodPost, "/api/v1/loans", token, map[string]any{"book_id": bookID})
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := ts.do(http.MethodGet, "/api/v1/loans/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[domain.LoanSummary](t, resp)
	assert.Equal(t, 2, envelope.Data.Active)
	assert.Equal(t, 0, envelope.Data.DueThisWeek)
	assert.Equal(t, 0, envelope.Data.Overdue)
}

func TestLoans_ScopedToMember(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.login("alice@example.com")
	bob := ts.login("bob@example.com")

	resp := ts.do(http.MethodPost, "/api/v1/loans", alice, map[string]any{"book_id": "1"})
	require.Equal(t, http.StatusCreated, resp.Code)

	// Bob's ledger is untouched and he can borrow the same title.
	resp = ts.do(http.MethodGet, "/api/v1/loans", bob, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	envelope := decodeEnvelope[[]service.LoanDetail](t, resp)
	assert.Empty(t, envelope.Data)

	resp = ts.do(http.MethodPost, "/api/v1/loans", bob, map[string]any{"book_id": "1"})
	assert.Equal(t, http.StatusCreated, resp.Code)
}

func TestLoans_RequireAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.do(http.MethodGet, "/api/v1/loans", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.do(http.MethodPost, "/api/v1/loans", "garbage-token", map[string]any{"book_id": "1"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
