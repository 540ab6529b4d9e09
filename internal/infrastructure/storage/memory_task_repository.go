package storage

import (
	"context"
	"sync"
	"time"

	"taskbot/internal/domain/entity"
	"taskbot/internal/domain/port"
)

// MemoryTaskRepository in-memory хранилище задач (для тестов)
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*entity.Task
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[string]*entity.Task)}
}

func (r *MemoryTaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	copy := *task
	return &copy, nil
}

func (r *MemoryTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	return r.Save(ctx, task)
}

func (r *MemoryTaskRepository) Save(ctx context.Context, task *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copy := *task
	r.tasks[task.ID] = &copy
	return nil
}

func (r *MemoryTaskRepository) FindByAssignee(ctx context.Context, telegramID int64) ([]*entity.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []*entity.Task
	for _, task := range r.tasks {
		if task.AssignedTo == telegramID {
			copy := *task
			tasks = append(tasks, &copy)
		}
	}
	return tasks, nil
}

func (r *MemoryTaskRepository) FindDueBefore(ctx context.Context, t time.Time) ([]*entity.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []*entity.Task
	for _, task := range r.tasks {
		if task.Status == entity.StatusDone || task.DueDate == nil {
			continue
		}
		if task.DueDate.Before(t) {
			copy := *task
			tasks = append(tasks, &copy)
		}
	}
	return tasks, nil
}

func (r *MemoryTaskRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]*entity.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []*entity.Task
	for _, task := range r.tasks {
		if task.Status == entity.StatusDone || task.DueDate == nil {
			continue
		}
		if !task.DueDate.Before(from) && task.DueDate.Before(to) {
			copy := *task
			tasks = append(tasks, &copy)
		}
	}
	return tasks, nil
}

// Проверка реализации интерфейса
var _ port.TaskRepository = (*MemoryTaskRepository)(nil)
