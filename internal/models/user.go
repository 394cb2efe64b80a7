package models

import "time"

// User はユーザーのデータベース構造体を表します。
// JSONタグ: クライアントとの通信用
// PasswordHash は `json:"-"` なのでレスポンスに含まれません。
type User struct {
	ID           int       `json:"id,omitempty"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // JSONに出さない
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserSignUpRequest はユーザー登録リクエストの構造体です。
// 必須チェックとパスワード長はサービス側で field→messages 形式で検証するため、
// bindingタグは付けません。
type UserSignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"` // 生パスワード
}

// UserLoginRequest はユーザーログインリクエストの構造体です。
type UserLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"` // 生パスワード
}
