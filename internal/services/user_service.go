package services

import (
	"errors"
	"fmt"
	"log"

	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/repositories"
)

// ErrAdminProtected は管理者アカウントを削除しようとした場合のエラーです。
var ErrAdminProtected = errors.New("admin account cannot be deleted")

// UserService はユーザー管理（管理者用）のビジネスロジックを扱います。
type UserService struct {
	userRepo *repositories.UserRepository
}

// NewUserService は新しいUserServiceを作成します。
func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUsers はすべてのユーザーを返します。
func (s *UserService) GetUsers() ([]*models.User, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, nil
}

// GetUserByID は指定IDのユーザーを返します。
func (s *UserService) GetUserByID(id int) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// DeleteUser は指定IDのユーザーを削除します。
// 対象が管理者の場合は ErrAdminProtected を返し、削除しません。
func (s *UserService) DeleteUser(id int) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return err
	}

	// 管理者は削除できない
	if user.IsAdmin {
		return ErrAdminProtected
	}

	return s.userRepo.Delete(id)
}

// SeedUsers は開発用のプレースホルダーユーザー5件を一括投入します。
// いずれかが既に存在する場合は *ValidationError を返し、1件も挿入しません。
func (s *UserService) SeedUsers() ([]*models.User, error) {
	users := make([]*models.User, 0, 5)
	for i := 1; i <= 5; i++ {
		hashedPassword, err := repositories.HashPassword(fmt.Sprintf("password%d!", i))
		if err != nil {
			log.Printf("Failed to hash seed password: %v", err)
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		users = append(users, &models.User{
			Username:     fmt.Sprintf("seed_user_%d", i),
			Email:        fmt.Sprintf("seed_user_%d@example.com", i),
			PasswordHash: hashedPassword,
		})
	}

	if err := s.userRepo.CreateMany(users); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUser) {
			v := NewValidationError()
			v.Add("username", "seed users already exist")
			return nil, v
		}
		return nil, err
	}

	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, nil
}
