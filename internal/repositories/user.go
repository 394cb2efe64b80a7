// Package repositories はデータベース操作を行うリポジトリを提供します。
package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/go-sql-driver/mysql"

	"task-tracker/backend/internal/models"

	"golang.org/x/crypto/bcrypt" // パスワードのハッシュ化用
)

// UserRepository はデータベース操作を行うための構造体です。
type UserRepository struct {
	DB *sql.DB
}

// NewUserRepository は新しいUserRepositoryインスタンスを作成します。
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// HashPassword は与えられたパスワードをbcryptでハッシュ化します。
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedPassword), nil
}

// VerifyPassword はハッシュ化されたパスワードと平文のパスワードを比較します。
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

var (
	// ErrDuplicateUser は username または email のUNIQUE制約違反です。
	// 同時サインアップの競合もここに収束します。
	ErrDuplicateUser = errors.New("duplicate username or email")
	ErrUserNotFound  = errors.New("user not found")
)

// Create は新しいユーザーをデータベースに挿入します。
func (r *UserRepository) Create(u *models.User) (*models.User, error) {
	query := "INSERT INTO users (username, email, password_hash, is_admin) VALUES (?, ?, ?, ?)"
	result, err := r.DB.Exec(query, u.Username, u.Email, u.PasswordHash, u.IsAdmin)
	if err != nil {
		// MySQLの重複エントリーエラーコード1062をチェック
		if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == 1062 {
			return nil, ErrDuplicateUser // カスタムエラーを返す
		}
		log.Printf("Failed to insert user: %v", err)
		return nil, fmt.Errorf("could not insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}
	u.ID = int(id)

	return u, nil
}

// FindByID は主キーでユーザーを検索します。
func (r *UserRepository) FindByID(id int) (*models.User, error) {
	query := "SELECT id, username, email, password_hash, is_admin, created_at, updated_at FROM users WHERE id = ?"
	return r.scanOne(r.DB.QueryRow(query, id))
}

// FindByUsername はユーザー名でユーザーを検索します。
func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	query := "SELECT id, username, email, password_hash, is_admin, created_at, updated_at FROM users WHERE username = ?"
	return r.scanOne(r.DB.QueryRow(query, username))
}

// FindByEmail はメールアドレスでユーザーを検索します。
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	query := "SELECT id, username, email, password_hash, is_admin, created_at, updated_at FROM users WHERE email = ?"
	return r.scanOne(r.DB.QueryRow(query, email))
}

func (r *UserRepository) scanOne(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		log.Printf("Failed to query user: %v", err)
		return nil, fmt.Errorf("could not query user: %w", err)
	}
	return &u, nil
}

// FindAll はすべてのユーザーを取得します。
func (r *UserRepository) FindAll() ([]*models.User, error) {
	query := "SELECT id, username, email, password_hash, is_admin, created_at, updated_at FROM users ORDER BY id"

	rows, err := r.DB.Query(query)
	if err != nil {
		log.Printf("Failed to query users: %v", err)
		return nil, fmt.Errorf("could not query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			log.Printf("Failed to scan user: %v", err)
			return nil, fmt.Errorf("could not scan user: %w", err)
		}
		users = append(users, &u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// Delete は指定されたIDのユーザーを削除します。
func (r *UserRepository) Delete(id int) error {
	query := "DELETE FROM users WHERE id = ?"

	result, err := r.DB.Exec(query, id)
	if err != nil {
		log.Printf("Failed to delete user: %v", err)
		return fmt.Errorf("could not delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// CountAll はユーザーの総件数を返します。
func (r *UserRepository) CountAll() (int, error) {
	var count int
	err := r.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("could not count users: %w", err)
	}
	return count, nil
}
