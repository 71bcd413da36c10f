package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"personalblog/internal/auth"
)

// AuthMiddleware 验证 Bearer token 并把 user_id 写入请求上下文。
// Missing, malformed and expired tokens all map to the same 401; the
// distinction only exists inside internal/auth for diagnostics.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := tokens.Parse(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		// 将用户信息写入上下文
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
