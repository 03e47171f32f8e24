package service

import (
	"context"

	"bookshelf-backend/internal/domains/review/model"
)

// CatalogChecker is the slice of the catalog service the review domain needs.
type CatalogChecker interface {
	BookExists(ctx context.Context, bookID int64) (bool, error)
}

type ReviewService interface {
	// ListByBook returns a book's reviews newest first.
	ListByBook(ctx context.Context, bookID int64) ([]model.Review, error)

	// Add validates and stores a review. The referenced book must exist in
	// the catalog at insert time; it is never re-checked afterwards.
	Add(ctx context.Context, req model.AddReviewRequest) (*model.Review, error)

	// Delete removes a review by its hex id and returns the deleted count,
	// so deleting an absent review reports 0 without an error.
	Delete(ctx context.Context, reviewID string) (int64, error)
}
