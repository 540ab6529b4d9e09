package entity

import (
	"time"

	"github.com/google/uuid"
)

// TaskType тип задачи
type TaskType string

const (
	TaskFeature  TaskType = "feature"
	TaskResearch TaskType = "research"
	TaskBug      TaskType = "bug"
)

// TaskPriority приоритет задачи
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// TaskStatus статус выполнения задачи
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

// ParseTaskStatus проверяет строку статуса из callback-данных
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(s) {
	case StatusTodo, StatusInProgress, StatusDone:
		return TaskStatus(s), true
	}
	return "", false
}

// Task задача внутри проекта
type Task struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	Description string
	ProjectID   string `gorm:"index"`
	AssignedTo  int64  `gorm:"index"` // Telegram ID исполнителя
	DueDate     *time.Time
	TaskType    TaskType
	RoleType    string
	Priority    TaskPriority
	Effort      float64 // в днях, допускаются дробные значения
	Status      TaskStatus
	CreatedBy   int64
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// NewTask создаёт новую задачу со статусом todo, назначенную создателю
func NewTask(name, description, projectID string, createdBy int64) *Task {
	return &Task{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		ProjectID:   projectID,
		AssignedTo:  createdBy,
		TaskType:    TaskFeature,
		Priority:    PriorityMedium,
		Effort:      1,
		Status:      StatusTodo,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}
}

// SetStatus меняет статус и отметку завершения
func (t *Task) SetStatus(status TaskStatus) {
	old := t.Status
	t.Status = status

	if status == StatusDone && old != StatusDone {
		now := time.Now()
		t.CompletedAt = &now
	} else if status != StatusDone {
		t.CompletedAt = nil
	}
}
