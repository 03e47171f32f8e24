package audit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureRecorder struct {
	entries []Entry
	err     error
}

func (r *captureRecorder) Record(_ context.Context, e Entry) error {
	r.entries = append(r.entries, e)
	return r.err
}

func setupAuditRouter(rec Recorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware(rec))
	router.GET("/api/books", func(c *gin.Context) {
		time.Sleep(time.Millisecond)
		c.JSON(http.StatusOK, gin.H{"items": []string{}})
	})
	router.GET("/api/fail", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad input"})
	})
	return router
}

func TestMiddlewareRecordsSuccess(t *testing.T) {
	rec := &captureRecorder{}
	router := setupAuditRouter(rec)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req.Header.Set("User-Agent", "test-agent")
	router.ServeHTTP(w, req)

	require.Len(t, rec.entries, 1)
	entry := rec.entries[0]
	assert.Equal(t, StatusSuccess, entry.Status)
	assert.Equal(t, http.MethodGet, entry.HTTPMethod)
	assert.Equal(t, "/api/books", entry.Path)
	assert.Equal(t, "test-agent", entry.UserAgent)
	assert.Empty(t, entry.Message)
	assert.Greater(t, entry.Duration, time.Duration(0))
}

func TestMiddlewareRecordsErrorOutcome(t *testing.T) {
	rec := &captureRecorder{}
	router := setupAuditRouter(rec)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/fail", nil)
	router.ServeHTTP(w, req)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, StatusError, rec.entries[0].Status)
}

func TestMiddlewareSwallowsRecorderFailure(t *testing.T) {
	rec := &captureRecorder{err: errors.New("audit store down")}
	router := setupAuditRouter(rec)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "recorder failure never affects the response")
	assert.JSONEq(t, `{"items": []}`, w.Body.String())
}

func TestHandlerNameTrimming(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := &captureRecorder{}
	router := gin.New()
	router.Use(Middleware(rec))
	router.GET("/x", namedHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	require.Len(t, rec.entries, 1)
	assert.Equal(t, "namedHandler", rec.entries[0].Function)
}

func namedHandler(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
