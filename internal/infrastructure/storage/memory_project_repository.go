package storage

import (
	"context"
	"sync"

	"taskbot/internal/domain/entity"
	"taskbot/internal/domain/port"
)

// MemoryProjectRepository in-memory хранилище проектов (для тестов)
type MemoryProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]*entity.Project
}

func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{projects: make(map[string]*entity.Project)}
}

func (r *MemoryProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.projects[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	copy := *project
	return &copy, nil
}

func (r *MemoryProjectRepository) GetByName(ctx context.Context, name string) (*entity.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, project := range r.projects {
		if project.Name == name {
			copy := *project
			return &copy, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *MemoryProjectRepository) FindByIDs(ctx context.Context, ids []string) ([]*entity.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var projects []*entity.Project
	for _, id := range ids {
		if project, ok := r.projects[id]; ok {
			copy := *project
			projects = append(projects, &copy)
		}
	}
	return projects, nil
}

func (r *MemoryProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	return r.Save(ctx, project)
}

func (r *MemoryProjectRepository) Save(ctx context.Context, project *entity.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copy := *project
	r.projects[project.ID] = &copy
	return nil
}

func (r *MemoryProjectRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.projects, id)
	return nil
}

// Проверка реализации интерфейса
var _ port.ProjectRepository = (*MemoryProjectRepository)(nil)
