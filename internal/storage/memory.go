package storage

import (
	"sync"
	"time"

	"task-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// MemoryStore implements TaskStore and CommentStore entirely in process.
// It backs tests and local development without a database and mirrors the
// relational semantics: soft-deleted tasks keep their row, listing follows
// insertion order, and all access is serialized by a mutex.
type MemoryStore struct {
	mu           sync.RWMutex
	tasks        map[uuid.UUID]*models.Task
	taskOrder    []uuid.UUID
	comments     map[uuid.UUID]*models.Comment
	commentOrder []uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks:    make(map[uuid.UUID]*models.Task),
		comments: make(map[uuid.UUID]*models.Comment),
	}
}

func (s *MemoryStore) GetTasks() ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]models.Task, 0, len(s.taskOrder))
	for _, id := range s.taskOrder {
		if t := s.tasks[id]; !t.Deleted() {
			tasks = append(tasks, *t)
		}
	}
	return tasks, nil
}

func (s *MemoryStore) GetTaskByID(id uuid.UUID) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok || t.Deleted() {
		return models.Task{}, ErrNotFound
	}
	return *t, nil
}

func (s *MemoryStore) CreateTask(params TaskParams) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var task models.Task
	params.apply(&task)

	if verr := s.validateTaskLocked(&task, uuid.Nil); verr != nil {
		return models.Task{}, verr
	}

	id, err := newID()
	if err != nil {
		return models.Task{}, err
	}
	now := time.Now()
	task.ID = id
	task.CreatedAt = now
	task.UpdatedAt = now

	s.tasks[id] = &task
	s.taskOrder = append(s.taskOrder, id)
	return task, nil
}

func (s *MemoryStore) UpdateTask(id uuid.UUID, params TaskParams) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[id]
	if !ok || existing.Deleted() {
		return models.Task{}, ErrNotFound
	}

	task := *existing
	params.apply(&task)

	if verr := s.validateTaskLocked(&task, id); verr != nil {
		return models.Task{}, verr
	}

	task.UpdatedAt = time.Now()
	*existing = task
	return task, nil
}

func (s *MemoryStore) DeleteTask(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.Deleted() {
		return ErrNotFound
	}
	task.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	return nil
}

func (s *MemoryStore) validateTaskLocked(task *models.Task, self uuid.UUID) *ValidationError {
	messages := models.ValidateTask(task)

	if task.Number != "" {
		for _, other := range s.tasks {
			if other.ID != self && !other.Deleted() && other.Number == task.Number {
				messages = append(messages, models.MsgNumberTaken)
				break
			}
		}
	}

	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}

func (s *MemoryStore) GetCommentsByTask(taskID uuid.UUID) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Deleted-or-not: a comment listing still resolves a discarded task.
	if _, ok := s.tasks[taskID]; !ok {
		return nil, ErrNotFound
	}

	comments := make([]models.Comment, 0)
	for _, id := range s.commentOrder {
		if c := s.comments[id]; c.TaskItemID == taskID {
			comments = append(comments, *c)
		}
	}
	return comments, nil
}

func (s *MemoryStore) GetCommentByID(id uuid.UUID) (models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return models.Comment{}, ErrNotFound
	}
	return *c, nil
}

func (s *MemoryStore) CreateComment(taskID uuid.UUID, params CommentParams) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[taskID]; !ok {
		return models.Comment{}, ErrNotFound
	}

	comment := models.Comment{TaskItemID: taskID}
	params.apply(&comment)

	if messages := models.ValidateComment(&comment); len(messages) > 0 {
		return models.Comment{}, &ValidationError{Messages: messages}
	}

	id, err := newID()
	if err != nil {
		return models.Comment{}, err
	}
	now := time.Now()
	comment.ID = id
	comment.CreatedAt = now
	comment.UpdatedAt = now

	s.comments[id] = &comment
	s.commentOrder = append(s.commentOrder, id)
	return comment, nil
}

func (s *MemoryStore) UpdateComment(id uuid.UUID, params CommentParams) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.comments[id]
	if !ok {
		return models.Comment{}, ErrNotFound
	}

	comment := *existing
	params.apply(&comment)

	if messages := models.ValidateComment(&comment); len(messages) > 0 {
		return models.Comment{}, &ValidationError{Messages: messages}
	}

	comment.UpdatedAt = time.Now()
	*existing = comment
	return comment, nil
}

func (s *MemoryStore) DeleteComment(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return ErrNotFound
	}
	delete(s.comments, id)
	for i, cid := range s.commentOrder {
		if cid == id {
			s.commentOrder = append(s.commentOrder[:i], s.commentOrder[i+1:]...)
			break
		}
	}
	return nil
}

// HardDeleteTask physically removes a task row and cascades to its
// comments, mirroring the foreign-key rule in the relational schema. It is
// not reachable through the HTTP API; the soft-delete endpoint never
// removes rows.
func (s *MemoryStore) HardDeleteTask(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	for i, tid := range s.taskOrder {
		if tid == id {
			s.taskOrder = append(s.taskOrder[:i], s.taskOrder[i+1:]...)
			break
		}
	}

	kept := s.commentOrder[:0]
	for _, cid := range s.commentOrder {
		if s.comments[cid].TaskItemID == id {
			delete(s.comments, cid)
		} else {
			kept = append(kept, cid)
		}
	}
	s.commentOrder = kept
	return nil
}
