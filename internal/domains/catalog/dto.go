package catalog

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshelf-backend/internal/shared/apperr"
)

// UpsertBookRequest is the POST /api/books body. PublicationYear is a pointer
// because the field is required and must be distinguishable from zero.
type UpsertBookRequest struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear *int   `json:"publication_year"`
	ImageURL        string `json:"image_url"`
}

// Validate assumes Title/Author/ImageURL have already been trimmed.
func (r *UpsertBookRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Author, validation.Required),
	)
	if err != nil {
		return apperr.Validation("title and author required")
	}

	if r.PublicationYear == nil {
		return apperr.Validation("publication_year must be an integer")
	}

	return nil
}
