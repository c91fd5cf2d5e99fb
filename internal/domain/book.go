package domain

import (
	"fmt"
	"strings"

	apperror "golibrary/internal/errors"
)

// Book is a catalog entry. Its ISBN is the identity and cannot change after NewBook.
type Book struct {
	Title  string `validate:"required"`
	Author string `validate:"required"`
	Year   int    `validate:"gte=0"`
	isbn   string
}

// NewBook validates the fields and returns a Book identified by isbn.
func NewBook(title, author string, year int, isbn string) (Book, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return Book{}, apperror.NewValidationError("book: isbn is required")
	}

	b := Book{Title: title, Author: author, Year: year, isbn: isbn}
	if err := validate.Struct(b); err != nil {
		return Book{}, validationError("book", err)
	}
	return b, nil
}

// ISBN returns the book identity.
func (b Book) ISBN() string {
	return b.isbn
}

func (b Book) String() string {
	return fmt.Sprintf("Title: %s, Author: %s, Year: %d, ISBN: %s", b.Title, b.Author, b.Year, b.isbn)
}

type bookJSON struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	ISBN   string `json:"isbn"`
}

// MarshalJSON includes the unexported isbn.
func (b Book) MarshalJSON() ([]byte, error) {
	return json.Marshal(bookJSON{Title: b.Title, Author: b.Author, Year: b.Year, ISBN: b.isbn})
}
