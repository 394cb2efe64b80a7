package services

import (
	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/repositories"
)

// TaskService はタスク関連のビジネスロジックを扱います。
type TaskService struct {
	taskRepo *repositories.TaskRepository
}

// NewTaskService は新しいTaskServiceを作成します。
func NewTaskService(taskRepo *repositories.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// CreateTask は新しいタスクを作成します。
// title と user_id は必須です。user_id の実在チェックは行いません。
func (s *TaskService) CreateTask(req models.TaskCreateRequest) (*models.Task, error) {
	v := NewValidationError()
	if req.Title == "" {
		v.Add("title", "title is required")
	}
	if req.UserID == 0 {
		v.Add("user_id", "user_id is required")
	}
	if v.HasErrors() {
		return nil, v
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
	}
	return s.taskRepo.Create(task)
}

// GetTasks はすべてのタスクを取得します。
func (s *TaskService) GetTasks() ([]*models.Task, error) {
	return s.taskRepo.FindAll()
}

// GetTaskByID は指定IDのタスクを取得します。
func (s *TaskService) GetTaskByID(id int) (*models.Task, error) {
	return s.taskRepo.FindByID(id)
}

// UpdateTaskStatus はタスクの状態を更新します。
// status の値に固定の選択肢はありませんが、空文字は受け付けません。
func (s *TaskService) UpdateTaskStatus(id int, status string) (*models.Task, error) {
	if status == "" {
		v := NewValidationError()
		v.Add("status", "status is required")
		return nil, v
	}
	return s.taskRepo.UpdateStatus(id, status)
}
