package delivery

import (
	"net/http"
	"strings"

	"taskforge-backend/internal/auth/usecase"
	"taskforge-backend/internal/authz"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware is the gate every protected route passes through. The
// check is purely cryptographic: signature and expiry, no user lookup.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			c.Abort()
			return
		}

		claims, err := usecase.VerifyToken(parts[1], secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("isAdmin", claims.IsAdmin)
		c.Next()
	}
}

// Caller extracts the identity the middleware attached to the request.
func Caller(c *gin.Context) authz.Caller {
	return authz.Caller{ID: c.GetString("userID"), Admin: c.GetBool("isAdmin")}
}
