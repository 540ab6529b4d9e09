package storage

import (
	"context"
	"sync"

	"taskbot/internal/domain/entity"
	"taskbot/internal/domain/port"
)

// MemoryUserRepository in-memory хранилище пользователей (для тестов)
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[int64]*entity.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[int64]*entity.User)}
}

func (r *MemoryUserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[telegramID]
	if !ok {
		return nil, entity.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	return r.Save(ctx, user)
}

func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copy := *user
	r.users[user.TelegramID] = &copy
	return nil
}

func (r *MemoryUserRepository) FindByProject(ctx context.Context, projectID string) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []*entity.User
	for _, user := range r.users {
		if user.IsMemberOf(projectID) {
			copy := *user
			users = append(users, &copy)
		}
	}
	return users, nil
}

func (r *MemoryUserRepository) FindNotInProject(ctx context.Context, projectID string) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []*entity.User
	for _, user := range r.users {
		if !user.IsMemberOf(projectID) {
			copy := *user
			users = append(users, &copy)
		}
	}
	return users, nil
}

func (r *MemoryUserRepository) RemoveProjectFromAll(ctx context.Context, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		user.LeaveProject(projectID)
		user.RemovePendingRequest(projectID)
	}
	return nil
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*MemoryUserRepository)(nil)
