package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/api/response"
	"github.com/sysrootix/sitemedusa-sub000/internal/config"
	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
)

const (
	UserContextKey              = "user"
	IntegrationClientContextKey = "integration_client"
)

// Claims are the identity provider's token claims. Subject carries the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// User is the authenticated end user of a request
type User struct {
	ID   string
	Role string
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// ParseToken validates an HMAC-signed identity provider token
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return claims, nil
}

// UserAuthMiddleware requires a valid identity provider token and stores the user in the context
func UserAuthMiddleware(cfg config.AuthConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "authorization required")
			return
		}

		claims, err := ParseToken(tokenString, cfg.JWTSecret)
		if err != nil {
			logger.Debug("Rejected user token", zap.Error(err))
			response.Fail(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(UserContextKey, &User{ID: claims.Subject, Role: claims.Role})
		c.Next()
	}
}

// AdminMiddleware must run after UserAuthMiddleware; it requires the configured admin role
func AdminMiddleware(cfg config.AuthConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUserFromContext(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "authorization required")
			return
		}
		if user.Role != cfg.AdminRole {
			logger.Warn("Admin route denied", zap.String("user_id", user.ID), zap.String("role", user.Role))
			response.Fail(c, http.StatusForbidden, "insufficient privileges")
			return
		}
		c.Next()
	}
}

// GetUserFromContext retrieves the authenticated user from the Gin context
func GetUserFromContext(c *gin.Context) (*User, bool) {
	v, exists := c.Get(UserContextKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*User)
	return user, ok
}

// IntegrationAuthMiddleware authenticates machine callers by API key, sent either
// as a Bearer token or in X-API-Key
func IntegrationAuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey, ok := bearerToken(c)
		if !ok {
			apiKey = strings.TrimSpace(c.GetHeader("X-API-Key"))
		}
		if apiKey == "" {
			response.Fail(c, http.StatusUnauthorized, "missing API key")
			return
		}

		client, err := repos.IntegrationClient.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			logger.Warn("Failed to authenticate integration client", zap.Error(err))
			response.Fail(c, http.StatusUnauthorized, "invalid API key")
			return
		}
		if !client.IsActive {
			response.Fail(c, http.StatusUnauthorized, "integration client is inactive")
			return
		}

		c.Set(IntegrationClientContextKey, client)
		c.Next()
	}
}

// GetIntegrationClientFromContext retrieves the integration client from the Gin context
func GetIntegrationClientFromContext(c *gin.Context) (*domain.IntegrationClient, bool) {
	v, exists := c.Get(IntegrationClientContextKey)
	if !exists {
		return nil, false
	}
	client, ok := v.(*domain.IntegrationClient)
	return client, ok
}
