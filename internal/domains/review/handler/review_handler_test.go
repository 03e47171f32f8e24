package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookshelf-backend/internal/domains/review/model"
	"bookshelf-backend/internal/shared/apperr"
)

type stubReviewService struct {
	lastBookID   int64
	lastReviewID string

	listReviews []model.Review
	listErr     error

	addReview *model.Review
	addErr    error

	deleted   int64
	deleteErr error
}

func (s *stubReviewService) ListByBook(_ context.Context, bookID int64) ([]model.Review, error) {
	s.lastBookID = bookID
	return s.listReviews, s.listErr
}

func (s *stubReviewService) Add(_ context.Context, _ model.AddReviewRequest) (*model.Review, error) {
	return s.addReview, s.addErr
}

func (s *stubReviewService) Delete(_ context.Context, reviewID string) (int64, error) {
	s.lastReviewID = reviewID
	return s.deleted, s.deleteErr
}

func setupReviewRouter(svc *stubReviewService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewReviewHandler(svc)
	router.GET("/api/reviews", h.ListByBook)
	router.POST("/api/reviews", h.Add)
	router.DELETE("/api/reviews/:id", h.Delete)
	return router
}

func TestListByBookMissingID(t *testing.T) {
	router := setupReviewRouter(&stubReviewService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "book_id is required"}`, w.Body.String())
}

func TestListByBookNonIntegerID(t *testing.T) {
	router := setupReviewRouter(&stubReviewService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reviews?book_id=seven", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "book_id must be an integer"}`, w.Body.String())
}

func TestListByBookResponseShape(t *testing.T) {
	svc := &stubReviewService{
		listReviews: []model.Review{
			{ID: primitive.NewObjectID(), BookID: 7, Reviewer: "ana", Rating: 5, Text: "great"},
		},
	}
	router := setupReviewRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reviews?book_id=7", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), svc.lastBookID)

	var body struct {
		Items []map[string]interface{} `json:"items"`
		Count int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "ana", body.Items[0]["reviewer"])
	assert.NotEmpty(t, body.Items[0]["_id"], "object id serialized as hex")
}

func TestAddReview(t *testing.T) {
	svc := &stubReviewService{
		addReview: &model.Review{ID: primitive.NewObjectID(), BookID: 7, Reviewer: "ana", Rating: 5, Text: "great"},
	}
	router := setupReviewRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reviews",
		strings.NewReader(`{"book_id":7,"reviewer":"ana","rating":5,"text":"great"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Message string       `json:"message"`
		Review  model.Review `json:"review"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Review added", body.Message)
	assert.Equal(t, int64(7), body.Review.BookID)
}

func TestAddReviewNonIntegerFields(t *testing.T) {
	router := setupReviewRouter(&stubReviewService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reviews",
		strings.NewReader(`{"book_id":7,"reviewer":"ana","rating":"five","text":"great"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "rating must be integer 1-5 and book_id integer"}`, w.Body.String())
}

func TestAddReviewUnknownBook(t *testing.T) {
	svc := &stubReviewService{addErr: apperr.NotFound("book_id does not exist")}
	router := setupReviewRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reviews",
		strings.NewReader(`{"book_id":999,"reviewer":"ana","rating":5,"text":"great"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "book_id does not exist"}`, w.Body.String())
}

func TestDeleteReview(t *testing.T) {
	svc := &stubReviewService{deleted: 1}
	router := setupReviewRouter(svc)

	id := primitive.NewObjectID().Hex()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/reviews/"+id, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, svc.lastReviewID)
	assert.JSONEq(t, `{"deleted": 1}`, w.Body.String())
}

func TestDeleteReviewInvalidID(t *testing.T) {
	svc := &stubReviewService{deleteErr: apperr.Validation("invalid review id")}
	router := setupReviewRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/reviews/zzz", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "invalid review id"}`, w.Body.String())
}
