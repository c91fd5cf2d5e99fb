// Package view renders library data for the console.
package view

import (
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"golibrary/internal/domain"
)

// DisplayBook returns the plain representation of book, nil when book is nil.
func DisplayBook(book *domain.Book) map[string]any {
	if book == nil {
		return nil
	}
	return map[string]any{
		"title":  book.Title,
		"author": book.Author,
		"year":   book.Year,
		"isbn":   book.ISBN(),
	}
}

// DisplayUser returns the plain representation of user, nil when user is nil.
func DisplayUser(user *domain.User) map[string]any {
	if user == nil {
		return nil
	}
	return map[string]any{
		"id":    user.ID(),
		"name":  user.Name,
		"email": user.Email,
	}
}

// RenderBooks writes the catalog as a table.
func RenderBooks(w io.Writer, books []domain.Book) {
	rows := lo.Map(books, func(b domain.Book, _ int) []string {
		return []string{b.ISBN(), b.Title, b.Author, strconv.Itoa(b.Year)}
	})
	render(w, []string{"ISBN", "Title", "Author", "Year"}, rows)
}

// RenderUsers writes the members as a table.
func RenderUsers(w io.Writer, users []domain.User) {
	rows := lo.Map(users, func(u domain.User, _ int) []string {
		return []string{u.ID(), u.Name, u.Email}
	})
	render(w, []string{"ID", "Name", "Email"}, rows)
}

// RenderLoans writes active loans, flagging the ones overdue at now.
func RenderLoans(w io.Writer, loans []domain.BorrowingRecord, now time.Time) {
	rows := lo.Map(loans, func(r domain.BorrowingRecord, _ int) []string {
		return []string{r.ISBN, r.UserID, formatTime(r.BorrowedAt), formatTime(r.DueDate), yesNo(r.IsOverdue(now))}
	})
	render(w, []string{"ISBN", "User", "Borrowed At", "Due Date", "Overdue"}, rows)
}

// RenderHistory writes returned loans.
func RenderHistory(w io.Writer, entries []domain.HistoryEntry) {
	rows := lo.Map(entries, func(e domain.HistoryEntry, _ int) []string {
		return []string{e.ISBN, e.UserID, formatTime(e.BorrowedAt), formatTime(e.DueDate), formatTime(e.ReturnedAt)}
	})
	render(w, []string{"ISBN", "User", "Borrowed At", "Due Date", "Returned At"}, rows)
}

// RenderFines writes outstanding fine balances.
func RenderFines(w io.Writer, fines []domain.FineBalance) {
	rows := lo.Map(fines, func(f domain.FineBalance, _ int) []string {
		return []string{f.UserID, strconv.Itoa(f.Fine)}
	})
	render(w, []string{"User", "Fine"}, rows)
}

// RenderSummary writes the status counts.
func RenderSummary(w io.Writer, s domain.StatusSummary) {
	render(w, []string{"Books", "Users", "Borrowed Books"}, [][]string{{
		strconv.Itoa(s.Books),
		strconv.Itoa(s.Users),
		strconv.Itoa(s.BorrowedBooks),
	}})
}

func render(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
