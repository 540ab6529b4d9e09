package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DefaultWorkDays рабочие дни проекта по умолчанию
var DefaultWorkDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Project проект с одним администратором и командой участников
type Project struct {
	ID          string         `gorm:"primaryKey"`
	Name        string         `gorm:"uniqueIndex"`
	Description string
	AdminID     int64          // Telegram ID администратора
	WorkDays    pq.StringArray `gorm:"type:text[]"`
	CreatedAt   time.Time
}

// NewProject создаёт новый проект с администратором-создателем
func NewProject(name, description string, adminID int64) *Project {
	return &Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		AdminID:     adminID,
		WorkDays:    pq.StringArray(DefaultWorkDays),
		CreatedAt:   time.Now(),
	}
}

// IsAdmin является ли пользователь администратором проекта
func (p *Project) IsAdmin(telegramID int64) bool {
	return p.AdminID == telegramID
}
