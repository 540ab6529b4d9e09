package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"taskbot/internal/domain/entity"
	"taskbot/internal/domain/port"
)

// GormTaskRepository хранилище задач в PostgreSQL
type GormTaskRepository struct {
	db *gorm.DB
}

func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	var task entity.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *GormTaskRepository) Save(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *GormTaskRepository) FindByAssignee(ctx context.Context, telegramID int64) ([]*entity.Task, error) {
	var tasks []*entity.Task
	err := r.db.WithContext(ctx).
		Where("assigned_to = ?", telegramID).
		Order("created_at").
		Find(&tasks).Error
	return tasks, err
}

func (r *GormTaskRepository) FindDueBefore(ctx context.Context, t time.Time) ([]*entity.Task, error) {
	var tasks []*entity.Task
	err := r.db.WithContext(ctx).
		Where("due_date IS NOT NULL AND due_date < ? AND status <> ?", t, entity.StatusDone).
		Find(&tasks).Error
	return tasks, err
}

func (r *GormTaskRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]*entity.Task, error) {
	var tasks []*entity.Task
	err := r.db.WithContext(ctx).
		Where("due_date IS NOT NULL AND due_date >= ? AND due_date < ? AND status <> ?",
			from, to, entity.StatusDone).
		Find(&tasks).Error
	return tasks, err
}

// Проверка реализации интерфейса
var _ port.TaskRepository = (*GormTaskRepository)(nil)
