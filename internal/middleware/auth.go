package middleware

import (
	"net/http"
	"strings"

	"github.com/IlluminoStudio/scribemate-sub000/internal/database"
	"github.com/IlluminoStudio/scribemate-sub000/internal/models"
	"github.com/IlluminoStudio/scribemate-sub000/pkg/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and resolves the viewer.
// The full user row is stored in the context so handlers and the
// authorization checks never re-trust claims over the store.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or inactive"})
			c.Abort()
			return
		}

		if !user.Role.Valid() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unknown role"})
			c.Abort()
			return
		}

		c.Set("userId", user.ID)
		c.Set("viewer", &user)
		c.Next()
	}
}

// CurrentViewer returns the resolved viewer set by AuthMiddleware.
func CurrentViewer(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get("viewer")
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
