// Package handlers はHTTPリクエストを処理するGinハンドラーを提供します。
// ボディは常に message フィールドを持ち、検証エラーは details を追加します。
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/repositories"
	"task-tracker/backend/internal/services"
)

// AuthHandler は認証関連のハンドラーを管理します。
type AuthHandler struct {
	authService *services.AuthService
	jwtService  *services.JWTService
}

// NewAuthHandler は新しいAuthHandlerを作成します。
func NewAuthHandler(authService *services.AuthService, jwtService *services.JWTService) *AuthHandler {
	return &AuthHandler{authService: authService, jwtService: jwtService}
}

// SignUpHandler はユーザー登録を処理します。
func (h *AuthHandler) SignUpHandler(c *gin.Context) {
	var req models.UserSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload"})
		return
	}

	user, err := h.authService.SignUp(req)
	if err != nil {
		var v *services.ValidationError
		if errors.As(err, &v) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid input",
				"details": v.Details,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginHandler はユーザーログインを処理します。
// ユーザー不在とパスワード不一致で同じ401メッセージを返します。
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload"})
		return
	}

	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		return
	}

	user, err := h.authService.Authenticate(req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Logged in successfully",
		"access_token": token,
		"user":         user,
	})
}

// MeHandler はトークンの持ち主を返します。
func (h *AuthHandler) MeHandler(c *gin.Context) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "User ID not found in context"})
		return
	}
	userID, ok := userIDVal.(int)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Invalid user ID type in context"})
		return
	}

	user, err := h.authService.GetCurrentUser(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// トークンは有効だがユーザーが既に削除されている
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, user)
}
