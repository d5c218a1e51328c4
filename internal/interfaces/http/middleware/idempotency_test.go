package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fieldpoint/backend/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newIdempotencyRouter(t *testing.T, status int) (*gin.Engine, *cache.InMemoryIdempotencyStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	router := gin.New()
	router.Use(Idempotency(store, time.Minute, zap.NewNop()))
	router.POST("/api/invoices/:id/post", func(c *gin.Context) {
		c.JSON(status, gin.H{"journal_entry_id": "stub"})
	})
	router.GET("/api/invoices/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})
	return router, store
}

func performRequest(router *gin.Engine, method, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency_DuplicateRequestRejected(t *testing.T) {
	router, _ := newIdempotencyRouter(t, http.StatusCreated)

	first := performRequest(router, http.MethodPost, "/api/invoices/1/post", "req-42")
	assert.Equal(t, http.StatusCreated, first.Code)

	second := performRequest(router, http.MethodPost, "/api/invoices/1/post", "req-42")
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.JSONEq(t, `{"detail":"Duplicate request"}`, second.Body.String())
}

func TestIdempotency_NoHeaderPassesThrough(t *testing.T) {
	router, store := newIdempotencyRouter(t, http.StatusCreated)

	for i := 0; i < 3; i++ {
		w := performRequest(router, http.MethodPost, "/api/invoices/1/post", "")
		assert.Equal(t, http.StatusCreated, w.Code)
	}
	assert.Zero(t, store.Size())
}

func TestIdempotency_KeysScopedByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	router := gin.New()
	router.Use(Idempotency(store, time.Minute, zap.NewNop()))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) }
	router.POST("/api/invoices/:id/post", ok)
	router.POST("/api/payments/:id/allocate", ok)

	require.Equal(t, http.StatusOK, performRequest(router, http.MethodPost, "/api/invoices/1/post", "shared-key").Code)

	// The same key on a different route is a different request.
	assert.Equal(t, http.StatusOK, performRequest(router, http.MethodPost, "/api/payments/1/allocate", "shared-key").Code)
	assert.Equal(t, http.StatusConflict, performRequest(router, http.MethodPost, "/api/invoices/1/post", "shared-key").Code)
}

func TestIdempotency_ServerErrorNotRecorded(t *testing.T) {
	router, store := newIdempotencyRouter(t, http.StatusInternalServerError)

	first := performRequest(router, http.MethodPost, "/api/invoices/1/post", "req-42")
	assert.Equal(t, http.StatusInternalServerError, first.Code)
	assert.Zero(t, store.Size())

	// The retry must reach the handler again.
	second := performRequest(router, http.MethodPost, "/api/invoices/1/post", "req-42")
	assert.Equal(t, http.StatusInternalServerError, second.Code)
}

func TestIdempotency_ClientErrorRecorded(t *testing.T) {
	router, _ := newIdempotencyRouter(t, http.StatusBadRequest)

	first := performRequest(router, http.MethodPost, "/api/invoices/1/post", "req-42")
	assert.Equal(t, http.StatusBadRequest, first.Code)

	second := performRequest(router, http.MethodPost, "/api/invoices/1/post", "req-42")
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestIdempotency_GetNotGuarded(t *testing.T) {
	router, store := newIdempotencyRouter(t, http.StatusCreated)

	for i := 0; i < 2; i++ {
		w := performRequest(router, http.MethodGet, "/api/invoices/1", "req-42")
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Zero(t, store.Size())
}

// failingStore simulates an unreachable backing store
type failingStore struct{}

func (failingStore) MarkProcessed(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("store unreachable")
}

func (failingStore) IsProcessed(context.Context, string) (bool, error) {
	return false, errors.New("store unreachable")
}

func (failingStore) Close() error { return nil }

func TestIdempotency_StoreFailureDoesNotBlock(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Idempotency(failingStore{}, time.Minute, zap.NewNop()))
	router.POST("/api/invoices/:id/post", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{})
	})

	w := performRequest(router, http.MethodPost, "/api/invoices/1/post", "req-42")
	assert.Equal(t, http.StatusCreated, w.Code)
}
