package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmarkapp/shelfmark-server/internal/service"
)

func TestListBooks_ReturnsFullCatalog(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login("alice@example.com")

	resp := ts.do(http.MethodGet, "/api/v1/books", token, nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[[]service.BookDetail](t, resp)
	require.Len(t, envelope.Data, 8)

	// Catalog order, with availability carried through.
	assert.Equal(t, "The Midnight Library", envelope.Data[0].Title)
	for _, b := range envelope.Data {
		assert.False(t, b.Borrowed)
		if b.ID == "7" {
			assert.False(t, b.Available)
		}
	}
}

func TestListBooks_Filters(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login("alice@example.com")

	tests := []struct {
		name      string
		path      string
		wantCount int
	}{
		{"query matches title", "/api/v1/books?q=dune", 1},
		{"query matches author", "/api/v1/books?q=haig", 1},
		{"query case insensitive", "/api/v1/books?q=SAPIENS", 1},
		{"category filter", "/api/v1/books?category=Fiction", 2},
		{"all category", "/api/v1/books?category=all", 8},
		{"query and category compose", "/api/v1/books?q=dune&category=Fiction", 0},
		{"no match", "/api/v1/books?q=zzzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.do(http.MethodGet, tt.path, token, nil)
			require.Equal(t, http.StatusOK, resp.Code)

			envelope := decodeEnvelope[[]service.BookDetail](t, resp)
			assert.Len(t, envelope.Data, tt.wantCount)
		})
	}
}

func TestGetBook(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login("alice@example.com")

	resp := ts.do(http.MethodGet, "/api/v1/books/3", token, nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[service.BookDetail](t, resp)
	assert.Equal(t, "Sapiens", envelope.Data.Title)
	assert.False(t, envelope.Data.Borrowed)
}

func TestGetBook_BorrowedFlag(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login("alice@example.com")

	resp := ts.do(http.MethodPost, "/api/v1/loans", token, map[string]any{"book_id": "3"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.do(http.MethodGet, "/api/v1/books/3", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[service.BookDetail](t, resp)
	assert.True(t, envelope.Data.Borrowed)

	// Another member sees the book as not borrowed.
	other := ts.login("bob@example.com")
	resp = ts.do(http.MethodGet, "/api/v1/books/3", other, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope = decodeEnvelope[service.BookDetail](t, resp)
	assert.False(t, envelope.Data.Borrowed)
}

func TestGetBook_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login("alice@example.com")

	resp := ts.do(http.MethodGet, "/api/v1/books/999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListCategories(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login("alice@example.com")

	resp := ts.do(http.MethodGet, "/api/v1/books/categories", token, nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[[]string](t, resp)
	require.NotEmpty(t, envelope.Data)
	assert.Equal(t, "all", envelope.Data[0])
	assert.Contains(t, envelope.Data, "Fiction")
}

func TestBooks_RequireAuth(t *testing.T) {
	ts := setupTestServer(t)

	for _, path := range []string{"/api/v1/books", "/api/v1/books/1", "/api/v1/books/categories"} {
		resp := ts.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.Code, path)
	}
}
