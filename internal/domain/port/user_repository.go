package port

import (
	"context"

	"taskbot/internal/domain/entity"
)

// UserRepository интерфейс хранилища пользователей
type UserRepository interface {
	// GetByTelegramID возвращает пользователя или entity.ErrNotFound
	GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error)

	Create(ctx context.Context, user *entity.User) error
	Save(ctx context.Context, user *entity.User) error

	// FindByProject участники проекта
	FindByProject(ctx context.Context, projectID string) ([]*entity.User, error)

	// FindNotInProject зарегистрированные пользователи вне проекта
	FindNotInProject(ctx context.Context, projectID string) ([]*entity.User, error)

	// RemoveProjectFromAll убирает проект из списков участия и заявок
	// у всех пользователей (используется при удалении проекта)
	RemoveProjectFromAll(ctx context.Context, projectID string) error
}
