package view_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golibrary/internal/domain"
	"golibrary/internal/view"
)

func TestDisplayBook(t *testing.T) {
	book, err := domain.NewBook("1984", "George Orwell", 1949, "9780451524935")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"title":  "1984",
		"author": "George Orwell",
		"year":   1949,
		"isbn":   "9780451524935",
	}, view.DisplayBook(&book))
	assert.Nil(t, view.DisplayBook(nil))
}

func TestDisplayUser(t *testing.T) {
	user, err := domain.NewUser("Baraka", "baraka@example.com")
	require.NoError(t, err)

	got := view.DisplayUser(&user)

	assert.Equal(t, user.ID(), got["id"])
	assert.Equal(t, "Baraka", got["name"])
	assert.Equal(t, "baraka@example.com", got["email"])
	assert.Nil(t, view.DisplayUser(nil))
}

func TestRenderBooks(t *testing.T) {
	book, err := domain.NewBook("To Kill a Mockingbird", "Harper Lee", 1960, "9780061120084")
	require.NoError(t, err)
	var buf bytes.Buffer

	view.RenderBooks(&buf, []domain.Book{book})

	out := buf.String()
	assert.Contains(t, out, "ISBN")
	assert.Contains(t, out, "To Kill a Mockingbird")
	assert.Contains(t, out, "9780061120084")
	assert.Contains(t, out, "1960")
}

func TestRenderLoans_FlagsOverdue(t *testing.T) {
	borrowed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	loan := domain.NewBorrowingRecord("user-1", "isbn-1", borrowed, borrowed.Add(24*time.Hour))
	var buf bytes.Buffer

	view.RenderLoans(&buf, []domain.BorrowingRecord{loan}, borrowed.Add(48*time.Hour))

	assert.Contains(t, buf.String(), "2026-03-02T09:00:00Z")
	assert.Contains(t, buf.String(), "yes")
}

func TestRenderHistoryAndFines(t *testing.T) {
	borrowed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	entry := domain.NewHistoryEntry(domain.NewBorrowingRecord("user-1", "isbn-1", borrowed, time.Time{}), borrowed.Add(time.Hour))
	var buf bytes.Buffer

	view.RenderHistory(&buf, []domain.HistoryEntry{entry})
	view.RenderFines(&buf, []domain.FineBalance{{UserID: "user-1", Fine: 100}})

	out := buf.String()
	assert.Contains(t, out, "2026-03-08T09:00:00Z")
	assert.Contains(t, out, "2026-03-01T10:00:00Z")
	assert.Contains(t, out, "100")
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer

	view.RenderSummary(&buf, domain.StatusSummary{Books: 2, Users: 1, BorrowedBooks: 0})

	assert.Contains(t, buf.String(), "BORROWED BOOKS")
	assert.Contains(t, buf.String(), "2")
}
