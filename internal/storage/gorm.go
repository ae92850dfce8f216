package storage

import (
	"errors"
	"fmt"
	"strings"

	"task-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// GormStore implements TaskStore and CommentStore on top of a relational
// database. The default gorm scope hides soft-deleted tasks; comment-side
// task lookups deliberately bypass it (comments on a soft-deleted task
// remain reachable).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetTasks() ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	if err := s.db.Order("created_at").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *GormStore) GetTaskByID(id uuid.UUID) (models.Task, error) {
	var task models.Task
	err := s.db.First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

func (s *GormStore) CreateTask(params TaskParams) (models.Task, error) {
	var task models.Task
	params.apply(&task)

	if verr := s.validateTask(&task, uuid.Nil); verr != nil {
		return models.Task{}, verr
	}

	id, err := newID()
	if err != nil {
		return models.Task{}, fmt.Errorf("assign task id: %w", err)
	}
	task.ID = id

	if err := s.db.Create(&task).Error; err != nil {
		if isUniqueViolation(err) {
			// Two racing creates with the same number: the partial unique
			// index resolves the winner, the loser sees a ValidationError.
			return models.Task{}, &ValidationError{Messages: []string{models.MsgNumberTaken}}
		}
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *GormStore) UpdateTask(id uuid.UUID, params TaskParams) (models.Task, error) {
	task, err := s.GetTaskByID(id)
	if err != nil {
		return models.Task{}, err
	}

	params.apply(&task)

	if verr := s.validateTask(&task, id); verr != nil {
		return models.Task{}, verr
	}

	if err := s.db.Save(&task).Error; err != nil {
		if isUniqueViolation(err) {
			return models.Task{}, &ValidationError{Messages: []string{models.MsgNumberTaken}}
		}
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (s *GormStore) DeleteTask(id uuid.UUID) error {
	task, err := s.GetTaskByID(id)
	if err != nil {
		return err
	}
	// gorm.DeletedAt turns this into a soft delete; the row stays.
	if err := s.db.Delete(&task).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// validateTask collects field violations plus the active-number uniqueness
// check. self is the id to exclude on update, uuid.Nil on create.
func (s *GormStore) validateTask(task *models.Task, self uuid.UUID) *ValidationError {
	messages := models.ValidateTask(task)

	if task.Number != "" {
		var count int64
		q := s.db.Model(&models.Task{}).Where("number = ?", task.Number)
		if self != uuid.Nil {
			q = q.Where("id <> ?", self)
		}
		if err := q.Count(&count).Error; err == nil && count > 0 {
			messages = append(messages, models.MsgNumberTaken)
		}
	}

	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}

func (s *GormStore) GetCommentsByTask(taskID uuid.UUID) ([]models.Comment, error) {
	if err := s.resolveTask(taskID); err != nil {
		return nil, err
	}
	comments := make([]models.Comment, 0)
	if err := s.db.Where("task_item_id = ?", taskID).Order("created_at").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (s *GormStore) GetCommentByID(id uuid.UUID) (models.Comment, error) {
	var comment models.Comment
	err := s.db.First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Comment{}, ErrNotFound
	}
	if err != nil {
		return models.Comment{}, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}

func (s *GormStore) CreateComment(taskID uuid.UUID, params CommentParams) (models.Comment, error) {
	if err := s.resolveTask(taskID); err != nil {
		return models.Comment{}, err
	}

	comment := models.Comment{TaskItemID: taskID}
	params.apply(&comment)

	if messages := models.ValidateComment(&comment); len(messages) > 0 {
		return models.Comment{}, &ValidationError{Messages: messages}
	}

	id, err := newID()
	if err != nil {
		return models.Comment{}, fmt.Errorf("assign comment id: %w", err)
	}
	comment.ID = id

	if err := s.db.Create(&comment).Error; err != nil {
		return models.Comment{}, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (s *GormStore) UpdateComment(id uuid.UUID, params CommentParams) (models.Comment, error) {
	comment, err := s.GetCommentByID(id)
	if err != nil {
		return models.Comment{}, err
	}

	params.apply(&comment)

	if messages := models.ValidateComment(&comment); len(messages) > 0 {
		return models.Comment{}, &ValidationError{Messages: messages}
	}

	if err := s.db.Save(&comment).Error; err != nil {
		return models.Comment{}, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (s *GormStore) DeleteComment(id uuid.UUID) error {
	comment, err := s.GetCommentByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&comment).Error; err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// resolveTask checks the task row exists, soft-deleted or not. The comment
// endpoints keep working against a discarded task.
func (s *GormStore) resolveTask(taskID uuid.UUID) error {
	var count int64
	if err := s.db.Unscoped().Model(&models.Task{}).Where("id = ?", taskID).Count(&count).Error; err != nil {
		return fmt.Errorf("resolve task: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
