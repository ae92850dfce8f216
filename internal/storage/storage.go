package storage

import (
	"time"

	"task-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
)

// TaskStore is the persistence boundary for tasks. Two implementations
// exist: GormStore for the relational database and MemoryStore for tests
// and local development. Which one backs the API is decided at startup.
type TaskStore interface {
	GetTasks() ([]models.Task, error)
	GetTaskByID(id uuid.UUID) (models.Task, error)
	CreateTask(params TaskParams) (models.Task, error)
	UpdateTask(id uuid.UUID, params TaskParams) (models.Task, error)
	DeleteTask(id uuid.UUID) error
}

// CommentStore is the persistence boundary for task comments.
type CommentStore interface {
	GetCommentsByTask(taskID uuid.UUID) ([]models.Comment, error)
	GetCommentByID(id uuid.UUID) (models.Comment, error)
	CreateComment(taskID uuid.UUID, params CommentParams) (models.Comment, error)
	UpdateComment(id uuid.UUID, params CommentParams) (models.Comment, error)
	DeleteComment(id uuid.UUID) error
}

// TaskParams carries the fields of a create or update request. Nil pointers
// mean the field was absent from the payload and must be preserved on
// update. DueDateSet distinguishes an explicit null (clear the date) from
// an absent key.
type TaskParams struct {
	Number              *string
	Title               *string
	Status              *string
	Priority            *string
	Assignee            *string
	Description         *string
	DescriptionRichText *string
	DueDate             *time.Time
	DueDateSet          bool
}

func (p TaskParams) apply(t *models.Task) {
	if p.Number != nil {
		t.Number = *p.Number
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Assignee != nil {
		t.Assignee = *p.Assignee
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DescriptionRichText != nil {
		t.DescriptionRichText = *p.DescriptionRichText
	}
	if p.DueDateSet {
		t.DueDate = p.DueDate
	}
}

// CommentParams carries the fields of a comment create or update request.
// The handler layer has already folded alias spellings (userName) into the
// canonical field.
type CommentParams struct {
	UserName *string
	Comment  *string
}

func (p CommentParams) apply(c *models.Comment) {
	if p.UserName != nil {
		c.UserName = *p.UserName
	}
	if p.Comment != nil {
		c.Comment = *p.Comment
	}
}

func newID() (uuid.UUID, error) {
	return uuid.NewV4()
}
