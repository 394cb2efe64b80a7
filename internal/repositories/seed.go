package repositories

import (
	"fmt"
	"log"

	"github.com/go-sql-driver/mysql"

	"task-tracker/backend/internal/models"
)

// CreateMany は複数のユーザーを1つのトランザクションで挿入します。
// 1件でも失敗した場合は全件ロールバックします。
// UNIQUE制約違反は ErrDuplicateUser として返します。
func (r *UserRepository) CreateMany(users []*models.User) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	query := "INSERT INTO users (username, email, password_hash, is_admin) VALUES (?, ?, ?, ?)"
	for _, u := range users {
		result, err := tx.Exec(query, u.Username, u.Email, u.PasswordHash, u.IsAdmin)
		if err != nil {
			tx.Rollback()
			if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == 1062 {
				return ErrDuplicateUser
			}
			log.Printf("Failed to insert user in bulk: %v", err)
			return fmt.Errorf("could not insert user: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("could not get last insert ID: %w", err)
		}
		u.ID = int(id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}
