package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/domains/review/model"
	"bookshelf-backend/internal/domains/review/service"
	"bookshelf-backend/internal/shared/response"
)

type ReviewHandler struct {
	service service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: svc}
}

// ListByBook handles GET /api/reviews?book_id=<id>.
func (h *ReviewHandler) ListByBook(c *gin.Context) {
	raw := c.Query("book_id")
	if raw == "" {
		response.Error(c, http.StatusBadRequest, "book_id is required")
		return
	}

	bookID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "book_id must be an integer")
		return
	}

	reviews, err := h.service.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"items": reviews,
		"count": len(reviews),
	})
}

// Add handles POST /api/reviews.
func (h *ReviewHandler) Add(c *gin.Context) {
	var req model.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			response.Error(c, http.StatusBadRequest, "rating must be integer 1-5 and book_id integer")
			return
		}
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"message": "Review added",
		"review":  review,
	})
}

// Delete handles DELETE /api/reviews/:id. Deleting an already absent review
// succeeds with a zero count.
func (h *ReviewHandler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"deleted": deleted})
}
