package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"task-tracker/backend/internal/models"
)

// ErrTaskNotFound はタスクが見つからない場合のエラーです。
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository はデータベース操作を行うための構造体です。
type TaskRepository struct {
	DB *sql.DB
}

// NewTaskRepository は新しいTaskRepositoryインスタンスを作成します。
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

// Create は新しいタスクをデータベースに挿入します。
// status はDB側のデフォルト ("pending") に任せるため、INSERTには含めません。
func (r *TaskRepository) Create(t *models.Task) (*models.Task, error) {
	query := "INSERT INTO tasks (title, description, user_id) VALUES (?, ?, ?)"

	result, err := r.DB.Exec(query, t.Title, t.Description, t.UserID)
	if err != nil {
		log.Printf("Failed to insert task: %v", err)
		return nil, fmt.Errorf("could not insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}

	// DBが設定したデフォルト値とタイムスタンプを取り直す
	return r.FindByID(int(id))
}

// FindAll はすべてのタスクをデータベースから取得します。
func (r *TaskRepository) FindAll() ([]*models.Task, error) {
	query := "SELECT id, title, description, status, user_id, created_at, updated_at FROM tasks ORDER BY created_at DESC"

	rows, err := r.DB.Query(query)
	if err != nil {
		log.Printf("Failed to query tasks: %v", err)
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		var t models.Task
		var description sql.NullString
		err := rows.Scan(&t.ID, &t.Title, &description, &t.Status, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			log.Printf("Failed to scan task: %v", err)
			return nil, fmt.Errorf("could not scan task: %w", err)
		}
		t.Description = description.String
		tasks = append(tasks, &t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// FindByID は指定されたIDのタスクをデータベースから取得します。
func (r *TaskRepository) FindByID(id int) (*models.Task, error) {
	query := "SELECT id, title, description, status, user_id, created_at, updated_at FROM tasks WHERE id = ?"

	var t models.Task
	var description sql.NullString
	err := r.DB.QueryRow(query, id).Scan(&t.ID, &t.Title, &description, &t.Status, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		log.Printf("Failed to query task by ID: %v", err)
		return nil, fmt.Errorf("could not query task: %w", err)
	}
	t.Description = description.String

	return &t, nil
}

// UpdateStatus は指定されたIDのタスクの状態を更新します。
func (r *TaskRepository) UpdateStatus(id int, status string) (*models.Task, error) {
	query := "UPDATE tasks SET status = ? WHERE id = ?"

	result, err := r.DB.Exec(query, status, id)
	if err != nil {
		log.Printf("Failed to update task status: %v", err)
		return nil, fmt.Errorf("could not update task: %w", err)
	}

	// 更新された行数を確認
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// statusが同値でも MySQL は rows affected 0 を返すことがあるため、
		// 存在確認をしてから NotFound を返す
		if _, err := r.FindByID(id); err != nil {
			return nil, err
		}
	}

	// 更新されたタスクを取得して返す
	return r.FindByID(id)
}
