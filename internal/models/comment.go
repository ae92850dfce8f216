package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// Comment belongs to exactly one task. Comments are never soft-deleted;
// removing one is final. updated_at is excluded from serialization.
type Comment struct {
	ID         uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	TaskItemID uuid.UUID `json:"task_item_id" gorm:"column:task_item_id;type:uuid;not null"`
	UserName   string    `json:"user_name" gorm:"size:255;not null" validate:"required,max=255"`
	Comment    string    `json:"comment" gorm:"type:text;not null" validate:"required"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}

func (Comment) TableName() string {
	return "task_comments"
}
