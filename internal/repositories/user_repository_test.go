package repositories_test

import (
	"testing"

	"task-tracker/backend/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/repositories"
)

// UNIQUE制約違反がErrDuplicateUserに変換されること。
// 事前チェックを通らない直接のINSERTなので、同時サインアップで
// 競合した側が通る経路そのものを検証する。
func TestUserRepositoryCreate_DuplicateUsername(t *testing.T) {
	db, _, _, userRepo := testutil.SetupTestDB(t)
	defer db.Close()

	hashedPassword, err := repositories.HashPassword("password123")
	require.NoError(t, err)

	duplicate := &models.User{
		Username:     "normal_user", // SetupTestDB が作成済み
		Email:        "unused@example.com",
		PasswordHash: hashedPassword,
	}
	_, err = userRepo.Create(duplicate)

	assert.ErrorIs(t, err, repositories.ErrDuplicateUser)
}

func TestUserRepositoryCreate_DuplicateEmail(t *testing.T) {
	db, _, _, userRepo := testutil.SetupTestDB(t)
	defer db.Close()

	hashedPassword, err := repositories.HashPassword("password123")
	require.NoError(t, err)

	duplicate := &models.User{
		Username:     "unused_name",
		Email:        "normal_user@example.com", // SetupTestDB が作成済み
		PasswordHash: hashedPassword,
	}
	_, err = userRepo.Create(duplicate)

	assert.ErrorIs(t, err, repositories.ErrDuplicateUser)

	// 行が増えていないこと
	count, err := userRepo.CountAll()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
