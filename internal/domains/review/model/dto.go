package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshelf-backend/internal/shared/apperr"
)

// AddReviewRequest is the POST /api/reviews body. BookID and Rating are
// pointers so required-but-zero values can be told apart from absent ones.
type AddReviewRequest struct {
	BookID   *int64 `json:"book_id"`
	Reviewer string `json:"reviewer"`
	Rating   *int   `json:"rating"`
	Text     string `json:"text"`
}

// Validate assumes Reviewer/Text have already been trimmed.
func (r *AddReviewRequest) Validate() error {
	if r.BookID == nil {
		return apperr.Validation("book_id is required")
	}

	err := validation.ValidateStruct(r,
		validation.Field(&r.Reviewer, validation.Required.Error("is required")),
		validation.Field(&r.Text, validation.Required.Error("is required")),
	)
	if err != nil {
		return apperr.Validation(err.Error())
	}

	if r.Rating == nil || *r.Rating < 1 || *r.Rating > 5 {
		return apperr.Validation("rating must be integer 1-5")
	}

	return nil
}
