package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookshelf-backend/internal/domains/review/model"
)

type ReviewRepository interface {
	// Insert stores the review and returns it with its assigned id.
	Insert(ctx context.Context, review *model.Review) (*model.Review, error)

	// ListByBook returns a book's reviews newest first. An unknown book id
	// yields an empty slice, not an error.
	ListByBook(ctx context.Context, bookID int64) ([]model.Review, error)

	// Delete removes one review and returns the deleted count (0 or 1).
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}
