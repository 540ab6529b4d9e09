package entity

import (
	"time"

	"github.com/lib/pq"
)

// User зарегистрированный пользователь бота
type User struct {
	TelegramID int64  `gorm:"primaryKey"`
	Username   string // Telegram username, может быть пустым
	Name       string
	Surname    string
	Role       string
	Contact    string

	// Проекты, в которых пользователь состоит, и проекты с
	// неподтверждённой заявкой на вступление
	ProjectIDs        pq.StringArray `gorm:"type:text[]"`
	PendingProjectIDs pq.StringArray `gorm:"type:text[]"`

	CreatedAt time.Time
}

// NewUser создаёт нового пользователя
func NewUser(telegramID int64, username, name, surname, role, contact string) *User {
	return &User{
		TelegramID: telegramID,
		Username:   username,
		Name:       name,
		Surname:    surname,
		Role:       role,
		Contact:    contact,
		CreatedAt:  time.Now(),
	}
}

// FullName имя с фамилией, если она указана
func (u *User) FullName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}

// IsMemberOf состоит ли пользователь в проекте
func (u *User) IsMemberOf(projectID string) bool {
	return contains(u.ProjectIDs, projectID)
}

// HasPendingRequest есть ли неподтверждённая заявка в проект
func (u *User) HasPendingRequest(projectID string) bool {
	return contains(u.PendingProjectIDs, projectID)
}

// RemovePendingRequest убирает заявку из списка ожидающих
func (u *User) RemovePendingRequest(projectID string) {
	u.PendingProjectIDs = remove(u.PendingProjectIDs, projectID)
}

// LeaveProject убирает проект из списка проектов пользователя
func (u *User) LeaveProject(projectID string) {
	u.ProjectIDs = remove(u.ProjectIDs, projectID)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids pq.StringArray, id string) pq.StringArray {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
