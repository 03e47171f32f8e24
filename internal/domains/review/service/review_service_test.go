package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookshelf-backend/internal/domains/review/model"
	"bookshelf-backend/internal/shared/apperr"
)

type fakeReviewRepo struct {
	reviews []model.Review
}

func (f *fakeReviewRepo) Insert(_ context.Context, review *model.Review) (*model.Review, error) {
	review.ID = primitive.NewObjectID()
	f.reviews = append(f.reviews, *review)
	return review, nil
}

func (f *fakeReviewRepo) ListByBook(_ context.Context, bookID int64) ([]model.Review, error) {
	out := make([]model.Review, 0)
	for _, r := range f.reviews {
		if r.BookID == bookID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	for i, r := range f.reviews {
		if r.ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeChecker struct {
	known map[int64]bool
}

func (f *fakeChecker) BookExists(_ context.Context, bookID int64) (bool, error) {
	return f.known[bookID], nil
}

func int64Ptr(n int64) *int64 { return &n }

func intPtr(n int) *int { return &n }

func validRequest() model.AddReviewRequest {
	return model.AddReviewRequest{
		BookID:   int64Ptr(1),
		Reviewer: "ana",
		Rating:   intPtr(5),
		Text:     "great read",
	}
}

func TestAddStoresReview(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := NewReviewService(repo, &fakeChecker{known: map[int64]bool{1: true}})

	before := time.Now().UTC()
	review, err := svc.Add(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, review.ID.IsZero())
	assert.Equal(t, int64(1), review.BookID)
	assert.Equal(t, "ana", review.Reviewer)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "great read", review.Text)
	assert.False(t, review.CreatedAt.Before(before))
	assert.Equal(t, time.UTC, review.CreatedAt.Location())

	stored, err := svc.ListByBook(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestAddUnknownBook(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := NewReviewService(repo, &fakeChecker{known: map[int64]bool{}})

	_, err := svc.Add(context.Background(), validRequest())

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, "book_id does not exist", apperr.Message(err))
	assert.Empty(t, repo.reviews, "nothing persisted on rejection")
}

func TestAddValidation(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := NewReviewService(repo, &fakeChecker{known: map[int64]bool{1: true}})

	tests := []struct {
		name   string
		mutate func(*model.AddReviewRequest)
	}{
		{"missing book_id", func(r *model.AddReviewRequest) { r.BookID = nil }},
		{"blank reviewer", func(r *model.AddReviewRequest) { r.Reviewer = "   " }},
		{"blank text", func(r *model.AddReviewRequest) { r.Text = "" }},
		{"missing rating", func(r *model.AddReviewRequest) { r.Rating = nil }},
		{"rating too low", func(r *model.AddReviewRequest) { r.Rating = intPtr(0) }},
		{"rating too high", func(r *model.AddReviewRequest) { r.Rating = intPtr(6) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Add(context.Background(), req)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
		})
	}

	assert.Empty(t, repo.reviews, "invalid requests never reach the store")
}

func TestListByBookRejectsNonPositiveID(t *testing.T) {
	svc := NewReviewService(&fakeReviewRepo{}, &fakeChecker{})

	for _, id := range []int64{0, -1} {
		_, err := svc.ListByBook(context.Background(), id)
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	}
}

func TestListByBookUnknownIDIsEmpty(t *testing.T) {
	svc := NewReviewService(&fakeReviewRepo{}, &fakeChecker{})

	reviews, err := svc.ListByBook(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := NewReviewService(repo, &fakeChecker{known: map[int64]bool{1: true}})

	review, err := svc.Add(context.Background(), validRequest())
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), review.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = svc.Delete(context.Background(), review.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted, "second delete succeeds with zero count")
}

func TestDeleteInvalidID(t *testing.T) {
	svc := NewReviewService(&fakeReviewRepo{}, &fakeChecker{})

	_, err := svc.Delete(context.Background(), "not-a-hex-id")

	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "invalid review id", apperr.Message(err))
}
