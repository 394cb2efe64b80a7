package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"task-tracker/backend/internal/repositories"
	"task-tracker/backend/internal/services"
)

// AuthMiddleware はJWTトークンを検証し、ユーザーIDをコンテキストに設定するミドルウェアです。
func AuthMiddleware(jwtService *services.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required"})
			c.Abort()
			return
		}
		// "Bearer " プレフィックスを削除
		if !strings.HasPrefix(tokenString, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token format"})
			c.Abort()
			return
		}
		tokenString = tokenString[len("Bearer "):]

		userID, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// AdminMiddleware は認証済みユーザーが管理者であることを検証するミドルウェアです。
// AuthMiddleware の後段に置きます。トークンのクレームではなくDBの現在の
// is_admin を見るため、権限を外されたユーザーは即座に弾かれます。
func AdminMiddleware(userRepo *repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization required"})
			c.Abort()
			return
		}
		userID, ok := userIDVal.(int)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Invalid user ID type in context"})
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(userID)
		if err != nil {
			// ユーザー不在は権限なし、それ以外はDB障害
			if errors.Is(err, repositories.ErrUserNotFound) {
				c.JSON(http.StatusForbidden, gin.H{"message": "Admin privileges required"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to verify admin privileges"})
			}
			c.Abort()
			return
		}
		if !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"message": "Admin privileges required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
