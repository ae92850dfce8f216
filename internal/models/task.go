package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Statuses and Priorities are the canonical enumerated values. Membership
// checks are case-insensitive and treat underscores as spaces, so frontend
// spellings like "in_progress" or "In_Progress" pass. The submitted casing
// is stored as-is.
var (
	Statuses   = []string{"Initiated", "In Progress", "Completed", "Done"}
	Priorities = []string{"High", "Medium", "Low"}
)

const (
	MaxNumberLength   = 50
	MaxAssigneeLength = 255
	MaxUserNameLength = 255
)

// Task is a tracked work item. Soft-deleted rows keep their data; gorm's
// DeletedAt excludes them from default queries. updated_at and deleted_at
// are internal bookkeeping and never serialized.
type Task struct {
	ID                  uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	Number              string         `json:"number" gorm:"size:50;not null" validate:"required,max=50"`
	Title               string         `json:"title" gorm:"size:255;not null" validate:"required"`
	Status              string         `json:"status" gorm:"size:50;not null" validate:"required,taskstatus"`
	Priority            string         `json:"priority" gorm:"size:50;not null" validate:"required,taskpriority"`
	Assignee            string         `json:"assignee" gorm:"size:255" validate:"max=255"`
	Description         string         `json:"description" gorm:"type:text"`
	DescriptionRichText string         `json:"description_rich_text" gorm:"type:text"`
	DueDate             *time.Time     `json:"due_date"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"-"`
	DeletedAt           gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Task) TableName() string {
	return "task_items"
}

func (t *Task) Deleted() bool {
	return t.DeletedAt.Valid
}
