package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskbot/internal/domain/entity"
	"taskbot/internal/domain/port"
)

// GormUserRepository хранилище пользователей в PostgreSQL
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "telegram_id = ?", telegramID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *GormUserRepository) Save(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *GormUserRepository) FindByProject(ctx context.Context, projectID string) ([]*entity.User, error) {
	var users []*entity.User
	err := r.db.WithContext(ctx).
		Where("? = ANY(project_ids)", projectID).
		Find(&users).Error
	return users, err
}

func (r *GormUserRepository) FindNotInProject(ctx context.Context, projectID string) ([]*entity.User, error) {
	var users []*entity.User
	err := r.db.WithContext(ctx).
		Where("project_ids IS NULL OR NOT (? = ANY(project_ids))", projectID).
		Find(&users).Error
	return users, err
}

func (r *GormUserRepository) RemoveProjectFromAll(ctx context.Context, projectID string) error {
	db := r.db.WithContext(ctx).Model(&entity.User{})

	if err := db.Where("? = ANY(project_ids)", projectID).
		Update("project_ids", gorm.Expr("array_remove(project_ids, ?)", projectID)).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&entity.User{}).
		Where("? = ANY(pending_project_ids)", projectID).
		Update("pending_project_ids", gorm.Expr("array_remove(pending_project_ids, ?)", projectID)).Error
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*GormUserRepository)(nil)
