package service

import (
	"context"
	"strings"

	"bookshelf-backend/internal/domains/catalog"
	"bookshelf-backend/internal/shared/apperr"
)

type catalogService struct {
	repo catalog.Repository
}

func NewCatalogService(repo catalog.Repository) catalog.Service {
	return &catalogService{repo: repo}
}

func (s *catalogService) List(ctx context.Context, query string, limit int) ([]catalog.Book, error) {
	query = strings.TrimSpace(query)
	if limit == 0 {
		limit = catalog.DefaultListLimit
	}
	if limit < 0 {
		limit = catalog.UnlimitedResults
	}
	return s.repo.List(ctx, query, limit)
}

// Upsert keys on case-insensitive title. For an existing title it overwrites
// year/image where provided and links the author alongside the existing ones.
// For a new title it inserts; losing the unique-title race to a concurrent
// insert falls back to the update path once.
func (s *catalogService) Upsert(ctx context.Context, req catalog.UpsertBookRequest) (*catalog.Book, bool, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	req.ImageURL = strings.TrimSpace(req.ImageURL)

	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	var imageURL *string
	if req.ImageURL != "" {
		imageURL = &req.ImageURL
	}

	authorID, err := s.repo.EnsureAuthor(ctx, req.Author)
	if err != nil {
		return nil, false, err
	}

	bookID, found, err := s.repo.FindIDByTitle(ctx, req.Title)
	if err != nil {
		return nil, false, err
	}
	if found {
		book, err := s.updateExisting(ctx, bookID, authorID, req.PublicationYear, imageURL)
		return book, false, err
	}

	bookID, err = s.repo.InsertBook(ctx, req.Title, req.PublicationYear, imageURL)
	if apperr.IsConflict(err) {
		bookID, found, ferr := s.repo.FindIDByTitle(ctx, req.Title)
		if ferr != nil {
			return nil, false, ferr
		}
		if !found {
			// The winning row vanished between insert and retry. One
			// retry only, so surface the conflict.
			return nil, false, err
		}
		book, uerr := s.updateExisting(ctx, bookID, authorID, req.PublicationYear, imageURL)
		return book, false, uerr
	}
	if err != nil {
		return nil, false, err
	}

	if err := s.repo.EnsureLink(ctx, bookID, authorID); err != nil {
		return nil, false, err
	}

	book, err := s.repo.GetByID(ctx, bookID)
	return book, true, err
}

func (s *catalogService) BookExists(ctx context.Context, bookID int64) (bool, error) {
	if bookID <= 0 {
		return false, nil
	}
	return s.repo.Exists(ctx, bookID)
}

func (s *catalogService) updateExisting(ctx context.Context, bookID, authorID int64, year *int, imageURL *string) (*catalog.Book, error) {
	if err := s.repo.UpdateBook(ctx, bookID, year, imageURL); err != nil {
		return nil, err
	}
	if err := s.repo.EnsureLink(ctx, bookID, authorID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, bookID)
}
