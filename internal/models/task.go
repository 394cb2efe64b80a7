// Package modelsはUserとTaskを定義します。
package models

import (
	"time"
)

// Task はタスクのデータベース構造体を表します。
// status は自由な文字列です（例: "pending", "in_progress", "done"）。
// 固定の選択肢は設けません。
type Task struct {
	ID          int       `json:"id,omitempty"`         // 主キー
	Title       string    `json:"title"`                // タスクのタイトル（必須）
	Description string    `json:"description"`          // 説明（任意）
	Status      string    `json:"status"`               // 状態（デフォルト "pending"）
	UserID      int       `json:"user_id"`              // 所有ユーザーのID（必須）
	CreatedAt   time.Time `json:"created_at"`           // 作成日時
	UpdatedAt   time.Time `json:"updated_at,omitempty"` // 更新日時
}

// TaskCreateRequest はタスク作成リクエストの構造体です。
// title と user_id の必須チェックはサービス側で行います。
type TaskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      int    `json:"user_id"`
}

// TaskStatusUpdateRequest はタスクの状態更新リクエストの構造体です。
type TaskStatusUpdateRequest struct {
	Status string `json:"status"`
}
