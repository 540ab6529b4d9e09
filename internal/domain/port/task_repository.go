package port

import (
	"context"
	"time"

	"taskbot/internal/domain/entity"
)

// TaskRepository интерфейс хранилища задач
type TaskRepository interface {
	// GetByID возвращает задачу или entity.ErrNotFound
	GetByID(ctx context.Context, id string) (*entity.Task, error)

	Create(ctx context.Context, task *entity.Task) error
	Save(ctx context.Context, task *entity.Task) error

	// FindByAssignee все задачи исполнителя
	FindByAssignee(ctx context.Context, telegramID int64) ([]*entity.Task, error)

	// FindDueBefore незавершённые задачи со сроком строго раньше t
	FindDueBefore(ctx context.Context, t time.Time) ([]*entity.Task, error)

	// FindDueBetween незавершённые задачи со сроком в [from, to)
	FindDueBetween(ctx context.Context, from, to time.Time) ([]*entity.Task, error)
}
