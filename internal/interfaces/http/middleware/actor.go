package middleware

import (
	"strings"

	"github.com/fieldpoint/backend/internal/infrastructure/auth"
	"github.com/fieldpoint/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Actor context keys
const (
	ActorIDKey       = "actor_id"
	ActorUsernameKey = "actor_username"
	AuthHeaderKey    = "Authorization"
	BearerPrefix     = "Bearer "
)

// Actor extracts the acting user from a bearer token when one is presented.
// Posting endpoints stay open without a token; the actor only feeds audit
// attribution. A development X-User-ID header is honored when no token is
// present.
func Actor(jwtService *auth.JWTService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, username := resolveActor(c, jwtService, log)
		if userID != uuid.Nil {
			c.Set(ActorIDKey, userID)
			if username != "" {
				c.Set(ActorUsernameKey, username)
			}

			ctx := c.Request.Context()
			reqLog := logger.FromContext(ctx)
			ctx, _ = logger.WithUserID(ctx, reqLog, userID.String())
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// resolveActor prefers a valid bearer token over the development header
func resolveActor(c *gin.Context, jwtService *auth.JWTService, log *zap.Logger) (uuid.UUID, string) {
	authHeader := c.GetHeader(AuthHeaderKey)
	if strings.HasPrefix(authHeader, BearerPrefix) {
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if log != nil {
				log.Warn("bearer token rejected",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path))
			}
			return uuid.Nil, ""
		}
		userID, err := claims.GetUserUUID()
		if err != nil {
			return uuid.Nil, ""
		}
		return userID, claims.Username
	}

	if headerID := c.GetHeader("X-User-ID"); headerID != "" {
		userID, err := uuid.Parse(headerID)
		if err == nil {
			return userID, ""
		}
	}
	return uuid.Nil, ""
}

// GetActorID returns the acting user's id, or nil when the request is
// anonymous
func GetActorID(c *gin.Context) *uuid.UUID {
	if v, exists := c.Get(ActorIDKey); exists {
		if id, ok := v.(uuid.UUID); ok && id != uuid.Nil {
			return &id
		}
	}
	return nil
}
