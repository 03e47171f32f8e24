package catalog

import "context"

const (
	// DefaultListLimit applies when the caller sends no limit or a
	// malformed one.
	DefaultListLimit = 100

	// UnlimitedResults is the sentinel for limit=all.
	UnlimitedResults = -1
)

type Service interface {
	// List searches the catalog. limit <= UnlimitedResults means unbounded,
	// 0 means DefaultListLimit.
	List(ctx context.Context, query string, limit int) ([]Book, error)

	// Upsert inserts or updates a book keyed by case-insensitive title and
	// reports whether a new book was created. Upserting an existing title
	// with a new author name adds an author link; it never replaces the
	// existing ones.
	Upsert(ctx context.Context, req UpsertBookRequest) (*Book, bool, error)

	// BookExists is the advisory cross-store existence check used by the
	// review service.
	BookExists(ctx context.Context, bookID int64) (bool, error)
}
