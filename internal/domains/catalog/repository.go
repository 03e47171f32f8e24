package catalog

import "context"

// Repository is the catalog store port. It wraps the relational store only;
// there is no transaction shared with the review store, and callers must not
// assume one.
type Repository interface {
	// List returns joined book records matching query (case-insensitive
	// substring on title or any linked author name; empty matches all),
	// ordered by title case-insensitively. limit < 0 means unbounded.
	List(ctx context.Context, query string, limit int) ([]Book, error)

	// GetByID returns the joined record for one book.
	GetByID(ctx context.Context, bookID int64) (*Book, error)

	// FindIDByTitle looks a book up by case-insensitive title.
	FindIDByTitle(ctx context.Context, title string) (int64, bool, error)

	// Exists reports whether a book row exists.
	Exists(ctx context.Context, bookID int64) (bool, error)

	// EnsureAuthor creates the author row if absent (exact name match) and
	// returns its id.
	EnsureAuthor(ctx context.Context, name string) (int64, error)

	// InsertBook inserts a new book row. A lost unique-title race surfaces
	// as a conflict error.
	InsertBook(ctx context.Context, title string, year *int, imageURL *string) (int64, error)

	// UpdateBook overwrites year/image only where the new value is non-nil.
	UpdateBook(ctx context.Context, bookID int64, year *int, imageURL *string) error

	// EnsureLink creates the book-author link; duplicates are no-ops.
	EnsureLink(ctx context.Context, bookID, authorID int64) error
}
