package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/serenitysphere/core/internal/pkg/jwt"
	"github.com/serenitysphere/core/internal/pkg/response"
)

const ContextKeyOwnerID = "owner_id"

// Auth returns a middleware that enforces a valid owner token.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, err := ValidateToken(extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyOwnerID, ownerID)
		c.Next()
	}
}

// ValidateToken validates a JWT and returns the owner id it was issued for.
func ValidateToken(rawToken string) (string, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return "", errors.New("token is required")
	}
	claims, err := jwt.Parse(token)
	if err != nil {
		return "", err
	}
	return claims.OwnerID, nil
}

// CurrentOwnerID extracts the authenticated owner ID from context.
func CurrentOwnerID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyOwnerID)
	id, _ := v.(string)
	return id
}

// IsAuthenticated returns true if the request carried a valid token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentOwnerID(c) != ""
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
