package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"task-tracker/backend/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/repositories"
)

func TestGetUsers_AsAdmin(t *testing.T) {
	db, r, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	token, err := testutil.LoginAndGetToken(t, r, "admin_user", "adminpass")
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Expected HTTP Status Code 200 OK")
	var users []models.User
	err = json.Unmarshal(w.Body.Bytes(), &users)
	assert.NoError(t, err)
	assert.Len(t, users, 2, "Expected the two seeded users") // normal_user + admin_user
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestGetUsers_AsNonAdmin(t *testing.T) {
	db, r, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	token, err := testutil.LoginAndGetToken(t, r, "normal_user", "password123")
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code, "Expected HTTP Status Code 403 Forbidden")
	var response map[string]string
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["message"], "Admin privileges required")
}

func TestGetUsers_NoToken(t *testing.T) {
	db, r, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	req, _ := http.NewRequest("GET", "/api/users", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code, "Expected HTTP Status Code 401 Unauthorized")
}

func TestGetUserByID_AsAdmin(t *testing.T) {
	db, r, _, userRepo := testutil.SetupTestDB(t)
	defer db.Close()

	target := testutil.CreateTestUser(t, userRepo, "target_user", "target@example.com", "password123", false)

	token, err := testutil.LoginAndGetToken(t, r, "admin_user", "adminpass")
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", fmt.Sprintf("/api/users/%d", target.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var responseUser models.User
	err = json.Unmarshal(w.Body.Bytes(), &responseUser)
	assert.NoError(t, err)
	assert.Equal(t, target.ID, responseUser.ID)
	assert.Equal(t, "target_user", responseUser.Username)
}

func TestGetUserByID_NotFound(t *testing.T) {
	db, r, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	token, err := testutil.LoginAndGetToken(t, r, "admin_user", "adminpass")
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/api/users/99999", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var response map[string]string
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["message"], "User not found")
}

func TestDeleteUser_Success(t *testing.T) {
	db, r, _, userRepo := testutil.SetupTestDB(t)
	defer db.Close()

	target := testutil.CreateTestUser(t, userRepo, "delete_me", "delete_me@example.com", "password123", false)

	token, err := testutil.LoginAndGetToken(t, r, "admin_user", "adminpass")
	require.NoError(t, err)

	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/api/users/%d", target.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]string
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["message"], "User deleted successfully")

	// 行が消えていること
	_, err = userRepo.FindByID(target.ID)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

// 対象が管理者の場合、呼び出し元が誰であっても403で行は残ること
func TestDeleteUser_AdminTarget(t *testing.T) {
	db, r, _, userRepo := testutil.SetupTestDB(t)
	defer db.Close()

	other := testutil.CreateTestUser(t, userRepo, "second_admin", "second_admin@example.com", "password123", true)

	token, err := testutil.LoginAndGetToken(t, r, "admin_user", "adminpass")
	require.NoError(t, err)

	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/api/users/%d", other.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code, "Deleting an admin must always be forbidden")
	var response map[string]string
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["message"], "Admin account cannot be deleted")

	// 行が残っていること
	survivor, err := userRepo.FindByID(other.ID)
	require.NoError(t, err)
	assert.Equal(t, "second_admin", survivor.Username)
}

func TestDeleteUser_NotFound(t *testing.T) {
	db, r, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	token, err := testutil.LoginAndGetToken(t, r, "admin_user", "adminpass")
	require.NoError(t, err)

	req, _ := http.NewRequest("DELETE", "/api/users/99999", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSeedUsers_Success(t *testing.T) {
	db, r, _, userRepo := testutil.SetupTestDB(t)
	defer db.Close()

	before, err := userRepo.CountAll()
	require.NoError(t, err)

	token, err := testutil.LoginAndGetToken(t, r, "admin_user", "adminpass")
	require.NoError(t, err)

	req, _ := http.NewRequest("POST", "/api/users/seed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code, "Expected HTTP Status Code 201 Created")
	var response struct {
		Message string        `json:"message"`
		Users   []models.User `json:"users"`
	}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Users, 5, "Expected 5 seed users")

	after, err := userRepo.CountAll()
	require.NoError(t, err)
	assert.Equal(t, before+5, after)
}

// 2回目のseedは既存ユーザーと衝突して400になり、1件も追加されないこと
func TestSeedUsers_AlreadyExists(t *testing.T) {
	db, r, _, userRepo := testutil.SetupTestDB(t)
	defer db.Close()

	token, err := testutil.LoginAndGetToken(t, r, "admin_user", "adminpass")
	require.NoError(t, err)

	req, _ := http.NewRequest("POST", "/api/users/seed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	before, err := userRepo.CountAll()
	require.NoError(t, err)

	req, _ = http.NewRequest("POST", "/api/users/seed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code, "Second seed must fail with 400")

	after, err := userRepo.CountAll()
	require.NoError(t, err)
	assert.Equal(t, before, after, "Rolled-back seed must not insert any rows")
}

func TestSeedUsers_AsNonAdmin(t *testing.T) {
	db, r, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	token, err := testutil.LoginAndGetToken(t, r, "normal_user", "password123")
	require.NoError(t, err)

	req, _ := http.NewRequest("POST", "/api/users/seed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
