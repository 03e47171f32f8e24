package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookshelf-backend/internal/domains/review/model"
	"bookshelf-backend/internal/domains/review/repository"
	"bookshelf-backend/internal/shared/apperr"
)

type reviewService struct {
	repo    repository.ReviewRepository
	catalog CatalogChecker
}

func NewReviewService(repo repository.ReviewRepository, catalog CatalogChecker) ReviewService {
	return &reviewService{repo: repo, catalog: catalog}
}

func (s *reviewService) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	if bookID <= 0 {
		return nil, apperr.Validation("book_id must be a positive integer")
	}
	return s.repo.ListByBook(ctx, bookID)
}

func (s *reviewService) Add(ctx context.Context, req model.AddReviewRequest) (*model.Review, error) {
	req.Reviewer = strings.TrimSpace(req.Reviewer)
	req.Text = strings.TrimSpace(req.Text)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.catalog.BookExists(ctx, *req.BookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("book_id does not exist")
	}

	review := &model.Review{
		BookID:    *req.BookID,
		Reviewer:  req.Reviewer,
		Rating:    *req.Rating,
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.Insert(ctx, review)
}

func (s *reviewService) Delete(ctx context.Context, reviewID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(reviewID))
	if err != nil {
		return 0, apperr.Validation("invalid review id")
	}
	return s.repo.Delete(ctx, oid)
}
