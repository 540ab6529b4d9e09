package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskbot/internal/domain/entity"
	"taskbot/internal/domain/port"
)

// GormProjectRepository хранилище проектов в PostgreSQL
type GormProjectRepository struct {
	db *gorm.DB
}

func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) GetByName(ctx context.Context, name string) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).First(&project, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) FindByIDs(ctx context.Context, ids []string) ([]*entity.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var projects []*entity.Project
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&projects).Error
	return projects, err
}

func (r *GormProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *GormProjectRepository) Save(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *GormProjectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Project{}, "id = ?", id).Error
}

// Проверка реализации интерфейса
var _ port.ProjectRepository = (*GormProjectRepository)(nil)
