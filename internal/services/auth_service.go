package services

import (
	"errors"
	"fmt"
	"log"
	"unicode/utf8"

	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/repositories"
)

// ErrInvalidCredentials はログイン失敗のエラーです。
// ユーザー不在とパスワード不一致を区別しません（列挙攻撃対策）。
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService は登録・ログイン・本人確認のビジネスロジックを扱います。
type AuthService struct {
	userRepo *repositories.UserRepository
}

// NewAuthService は新しいAuthServiceを作成します。
func NewAuthService(userRepo *repositories.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// validateSignUp はサインアップ入力を検証します。
// 問題がなければ nil を返します。
func (s *AuthService) validateSignUp(req models.UserSignUpRequest) *ValidationError {
	v := NewValidationError()

	// 必須フィールドのチェック
	if req.Username == "" {
		v.Add("username", "username is required")
	}
	if req.Email == "" {
		v.Add("email", "email is required")
	}
	if req.Password == "" {
		v.Add("password", "password is required")
	}

	// パスワードの長さチェック（バイト数ではなく文字数で数える）
	if req.Password != "" && utf8.RuneCountInString(req.Password) < 8 {
		v.Add("password", "password must be at least 8 characters")
	}

	// ユーザー名の重複チェック
	if req.Username != "" {
		if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
			v.Add("username", "username is already taken")
		}
	}

	// メールアドレスの重複チェック
	if req.Email != "" {
		if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
			v.Add("email", "email is already registered")
		}
	}

	if v.HasErrors() {
		return v
	}
	return nil
}

// SignUp は新しいユーザーを登録します。
// 入力不正は *ValidationError として返します。
// 同時サインアップでUNIQUE制約に弾かれた場合も同じ形に変換します。
func (s *AuthService) SignUp(req models.UserSignUpRequest) (*models.User, error) {
	if v := s.validateSignUp(req); v != nil {
		return nil, v
	}

	hashedPassword, err := repositories.HashPassword(req.Password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		IsAdmin:      false, // サインアップでは管理者を作らない
	}

	createdUser, err := s.userRepo.Create(newUser)
	if err != nil {
		// 事前チェックとINSERTの間に同名ユーザーが入った場合。
		if errors.Is(err, repositories.ErrDuplicateUser) {
			return nil, duplicateSignUpError()
		}
		return nil, err
	}

	createdUser.PasswordHash = "" // レスポンスにハッシュを残さない
	return createdUser, nil
}

// duplicateSignUpError はUNIQUE制約違反を事前チェックと同じ400の形に変換します。
// 1062からはどちらの列で衝突したか分からないため、両方のフィールドに付けます。
func duplicateSignUpError() *ValidationError {
	v := NewValidationError()
	v.Add("username", "username or email is already in use")
	v.Add("email", "username or email is already in use")
	return v
}

// Authenticate はユーザー名とパスワードでユーザーを認証します。
// 失敗理由によらず ErrInvalidCredentials を返します。
func (s *AuthService) Authenticate(req models.UserLoginRequest) (*models.User, error) {
	foundUser, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := repositories.VerifyPassword(foundUser.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	foundUser.PasswordHash = "" // レスポンスにハッシュを残さない
	return foundUser, nil
}

// GetCurrentUser はトークンのsubjectから解決したユーザーを返します。
// ユーザーが既に削除されている場合は repositories.ErrUserNotFound を返します。
func (s *AuthService) GetCurrentUser(userID int) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}
