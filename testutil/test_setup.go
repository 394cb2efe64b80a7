// Package testutil はテスト用のデータベースとルーターのセットアップを提供します。
package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/repositories"
	"task-tracker/backend/internal/routes"

	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB はテスト用のデータベース接続を確立し、テーブルを作成し、テストデータを投入します。
func SetupTestDB(t *testing.T) (*sql.DB, *gin.Engine, *repositories.TaskRepository, *repositories.UserRepository) {

	_ = godotenv.Load("../../.env")

	dbUser := os.Getenv("TEST_DB_USER")
	dbPass := os.Getenv("TEST_DB_PASS")
	dbHost := os.Getenv("TEST_DB_HOST")
	dbPort := os.Getenv("TEST_DB_PORT")
	dbName := os.Getenv("TEST_DB_NAME")

	// In Docker container, use "db" as hostname instead of 127.0.0.1
	if dbHost == "127.0.0.1" {
		dbHost = "db"
	}

	// JWT_SECRET が無いと NewJWTService が落ちるため、テスト用の値を入れておく
	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("JWT_SECRET", "test-jwt-secret")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", dbUser, dbPass, dbHost, dbPort, dbName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("Failed to open database connection: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("Failed to ping database: %v", err)
	}

	// 既存のテーブルを空にする (テストのたびにクリーンな状態にするため)
	if _, err := db.Exec("TRUNCATE TABLE tasks"); err != nil {
		log.Printf("Failed to truncate tasks table (it might not exist yet): %v", err)
	}
	if _, err := db.Exec("TRUNCATE TABLE users"); err != nil {
		log.Printf("Failed to truncate users table (it might not exist yet): %v", err)
	}

	// ユーザーテーブルの作成
	createUserTableSQL := `
    	CREATE TABLE IF NOT EXISTS users (
    		id INT AUTO_INCREMENT PRIMARY KEY,
    		username VARCHAR(255) NOT NULL UNIQUE,
    		email VARCHAR(255) NOT NULL UNIQUE,
    		password_hash VARCHAR(255) NOT NULL,
    		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
    		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
    	);`
	if _, err := db.Exec(createUserTableSQL); err != nil {
		t.Fatalf("Failed to create users table: %v", err)
	}

	// タスクテーブルの作成
	// user_id に外部キーは張らない（実在しないuser_idでの作成を許す既知の仕様）
	createTaskTableSQL := `
    	CREATE TABLE IF NOT EXISTS tasks (
    		id INT AUTO_INCREMENT PRIMARY KEY,
    		title VARCHAR(255) NOT NULL,
    		description TEXT,
    		status VARCHAR(50) NOT NULL DEFAULT 'pending',
    		user_id INT NOT NULL,
    		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
    	);`
	if _, err := db.Exec(createTaskTableSQL); err != nil {
		t.Fatalf("Failed to create tasks table: %v", err)
	}

	// テストユーザーの挿入
	userRepo := repositories.NewUserRepository(db)
	hashedPasswordUser, _ := repositories.HashPassword("password123")
	normalUser := models.User{
		Username:     "normal_user",
		Email:        "normal_user@example.com",
		PasswordHash: hashedPasswordUser,
		IsAdmin:      false,
	}
	if _, err := userRepo.Create(&normalUser); err != nil {
		log.Printf("Failed to create normal_user (might exist, or duplicate entry): %v", err)
	}

	hashedPasswordAdmin, _ := repositories.HashPassword("adminpass")
	adminUser := models.User{
		Username:     "admin_user",
		Email:        "admin@example.com",
		PasswordHash: hashedPasswordAdmin,
		IsAdmin:      true,
	}
	if _, err := userRepo.Create(&adminUser); err != nil {
		log.Printf("Failed to create admin_user (might exist, or duplicate entry): %v", err)
	}

	log.Println("Successfully set up test database!")

	// Ginルーターのセットアップ
	gin.SetMode(gin.TestMode)
	router := routes.SetupRouter(db)
	taskRepo := repositories.NewTaskRepository(db)

	return db, router, taskRepo, userRepo
}

// CreateTestUser はテスト用のユーザーを作成し、データベースに保存します。
func CreateTestUser(t *testing.T, userRepo *repositories.UserRepository, username, email, password string, isAdmin bool) *models.User {
	hashedPassword, err := repositories.HashPassword(password)
	require.NoError(t, err)

	newUser := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		IsAdmin:      isAdmin,
	}

	createdUser, err := userRepo.Create(&newUser)
	require.NoError(t, err)
	require.NotNil(t, createdUser)
	require.NotEqual(t, 0, createdUser.ID)
	return createdUser
}

// CreateTestTask はテスト用のタスクをAPI経由で作成します。
func CreateTestTask(t *testing.T, router *gin.Engine, title, description string, userID int) *models.Task {
	taskPayload := map[string]interface{}{
		"title":       title,
		"description": description,
		"user_id":     userID,
	}
	body, _ := json.Marshal(taskPayload)

	req, _ := http.NewRequest(http.MethodPost, "/api/tasks", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code, "タスク作成に失敗しました: %s", resp.Body.String())

	var createdTask models.Task
	err := json.Unmarshal(resp.Body.Bytes(), &createdTask)
	require.NoError(t, err)
	return &createdTask
}

// LoginAndGetToken はログインAPIを叩いてアクセストークンを取得します。
func LoginAndGetToken(t *testing.T, router *gin.Engine, username, password string) (string, error) {
	loginPayload := map[string]string{
		"username": username,
		"password": password,
	}
	body, _ := json.Marshal(loginPayload)

	req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d: %s", resp.Code, resp.Body.String())
	}

	var loginRes map[string]interface{}
	err := json.Unmarshal(resp.Body.Bytes(), &loginRes)
	if err != nil {
		return "", fmt.Errorf("failed to unmarshal login response: %w", err)
	}

	token, ok := loginRes["access_token"].(string)
	if !ok {
		return "", errors.New("access_token not found or not a string in login response")
	}
	return token, nil
}
