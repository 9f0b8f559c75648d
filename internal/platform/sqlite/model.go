package sqlite

import (
	"time"

	"github.com/trilhaapi/tarefa-api/internal/domain"
)

// taskModel is the gorm model for the tasks table.
type taskModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null;default:''"`
	DueDate     time.Time `gorm:"not null;index"`
	Status      string    `gorm:"size:20;not null;index"`
}

// TableName returns the table name for the task model.
func (taskModel) TableName() string {
	return "tasks"
}

// Due dates are stored in UTC so that range comparisons on the stored text
// representation stay ordered.
func fromDomain(t *domain.Task) *taskModel {
	return &taskModel{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate.UTC(),
		Status:      string(t.Status),
	}
}

func (m *taskModel) toDomain() *domain.Task {
	return &domain.Task{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		DueDate:     m.DueDate,
		Status:      domain.Status(m.Status),
	}
}
