package middleware

import (
	"net/http"
	"time"

	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader is the optional client-supplied replay-guard header
const IdempotencyKeyHeader = "Idempotency-Key"

// DefaultIdempotencyTTL bounds how long a processed key blocks replays
const DefaultIdempotencyTTL = 24 * time.Hour

// Idempotency absorbs duplicate mutating requests that carry the same
// Idempotency-Key header. A key is recorded only after the handler produced
// a non-5xx response, so a retry after a server failure goes through. The
// ledger's unique idempotency index remains the authoritative guard; this is
// a cheap first line that spares the database a transaction.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || !isMutating(c.Request.Method) {
			c.Next()
			return
		}

		scopedKey := c.Request.Method + ":" + c.FullPath() + ":" + key
		seen, err := store.IsProcessed(c.Request.Context(), scopedKey)
		if err != nil {
			// Store trouble must not block postings; the database guard holds.
			if log != nil {
				log.Warn("idempotency store unavailable", zap.Error(err))
			}
			c.Next()
			return
		}
		if seen {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"detail": "Duplicate request",
			})
			return
		}

		c.Next()

		if c.Writer.Status() < http.StatusInternalServerError {
			if _, err := store.MarkProcessed(c.Request.Context(), scopedKey, ttl); err != nil && log != nil {
				log.Warn("failed to record idempotency key", zap.Error(err))
			}
		}
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
