package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/domains/catalog"
	"bookshelf-backend/internal/shared/response"
)

type BookHandler struct {
	service catalog.Service
}

func NewBookHandler(service catalog.Service) *BookHandler {
	return &BookHandler{service: service}
}

// List handles GET /api/books?q=<term>&limit=<n|all>.
func (h *BookHandler) List(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	limit := parseLimit(c.Query("limit"))

	books, err := h.service.List(c.Request.Context(), query, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"items": books,
		"count": len(books),
	})
}

// Upsert handles POST /api/books. 201 for a newly created book, 200 when an
// existing title was updated.
func (h *BookHandler) Upsert(c *gin.Context) {
	var req catalog.UpsertBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "publication_year" {
			response.Error(c, http.StatusBadRequest, "publication_year must be an integer")
			return
		}
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	book, created, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if created {
		response.JSON(c, http.StatusCreated, gin.H{
			"message": "Book added successfully",
			"book":    book,
		})
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message": "Book already existed; updated/linked author.",
		"book":    book,
	})
}

// parseLimit accepts a positive integer or "all"; anything else falls back to
// the default silently.
func parseLimit(raw string) int {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return catalog.DefaultListLimit
	}
	if raw == "all" {
		return catalog.UnlimitedResults
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return catalog.DefaultListLimit
	}
	return n
}
