package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"task-tracker/backend/internal/repositories"
	"task-tracker/backend/internal/services"
)

// UserHandler はユーザー管理（管理者用）のハンドラーを管理します。
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler は新しいUserHandlerを作成します。
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUsersHandler はユーザー一覧を取得します。
func (h *UserHandler) GetUsersHandler(c *gin.Context) {
	users, err := h.userService.GetUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUserByIDHandler は指定IDのユーザーを取得します。
func (h *UserHandler) GetUserByIDHandler(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID format"})
		return
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUserHandler は指定IDのユーザーを削除します。
// 対象が管理者の場合は403を返します。
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID format"})
		return
	}

	err = h.userService.DeleteUser(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		if errors.Is(err, services.ErrAdminProtected) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Admin account cannot be deleted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// SeedUsersHandler は開発用のプレースホルダーユーザーを一括投入します。
func (h *UserHandler) SeedUsersHandler(c *gin.Context) {
	users, err := h.userService.SeedUsers()
	if err != nil {
		var v *services.ValidationError
		if errors.As(err, &v) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid input",
				"details": v.Details,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to seed users"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Seed users created successfully",
		"users":   users,
	})
}
