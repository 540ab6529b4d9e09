package port

import (
	"context"

	"taskbot/internal/domain/entity"
)

// ProjectRepository интерфейс хранилища проектов
type ProjectRepository interface {
	// GetByID возвращает проект или entity.ErrNotFound
	GetByID(ctx context.Context, id string) (*entity.Project, error)

	// GetByName возвращает проект по точному имени или entity.ErrNotFound
	GetByName(ctx context.Context, name string) (*entity.Project, error)

	FindByIDs(ctx context.Context, ids []string) ([]*entity.Project, error)

	Create(ctx context.Context, project *entity.Project) error
	Save(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id string) error
}
