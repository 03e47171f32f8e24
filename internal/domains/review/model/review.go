package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a document-store record. BookID references the relational catalog
// by numeric id; the link is advisory and is only checked at insert time.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BookID    int64              `bson:"book_id" json:"book_id"`
	Reviewer  string             `bson:"reviewer" json:"reviewer"`
	Rating    int                `bson:"rating" json:"rating"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
