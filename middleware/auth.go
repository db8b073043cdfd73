package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sessionbooker/utils"
)

// ContextUserID is the gin context key holding the authenticated user's id.
const ContextUserID = "userID"

// JWTAuthMiddleware resolves the caller identity from a Bearer token. The
// token must validate and its hash must still be present in the auth cache,
// so revoked tokens fail even before expiry.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		cachedHash, err := utils.LookupAuthToken(c.Request.Context(), userID)
		if err != nil || cachedHash != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked or expired"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// CallerID returns the authenticated user's id from the gin context.
func CallerID(c *gin.Context) string {
	v, _ := c.Get(ContextUserID)
	id, _ := v.(string)
	return id
}
