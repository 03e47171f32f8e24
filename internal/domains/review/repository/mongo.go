package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookshelf-backend/internal/domains/review/model"
	"bookshelf-backend/internal/shared/apperr"
)

type mongoReviewRepository struct {
	coll *mongo.Collection
}

func NewMongoReviewRepository(coll *mongo.Collection) ReviewRepository {
	return &mongoReviewRepository{coll: coll}
}

func (r *mongoReviewRepository) Insert(ctx context.Context, review *model.Review) (*model.Review, error) {
	res, err := r.coll.InsertOne(ctx, review)
	if err != nil {
		return nil, apperr.Unavailable("review store unavailable", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	stored := review
	stored.ID = oid
	return stored, nil
}

func (r *mongoReviewRepository) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.coll.Find(ctx, bson.M{"book_id": bookID}, opts)
	if err != nil {
		return nil, apperr.Unavailable("review store unavailable", err)
	}
	defer cur.Close(ctx)

	reviews := make([]model.Review, 0)
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, apperr.Unavailable("review store unavailable", err)
	}
	return reviews, nil
}

func (r *mongoReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, apperr.Unavailable("review store unavailable", err)
	}
	return res.DeletedCount, nil
}
