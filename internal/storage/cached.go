package storage

import (
	"fmt"
	"time"

	"task-tracker/backend/internal/cache"
	"task-tracker/backend/internal/models"

	"github.com/gofrs/uuid"
)

const (
	taskTTL     = 30 * time.Minute
	taskListTTL = 10 * time.Minute

	activeTasksKey = "tasks:active"
)

// CachedTaskStore decorates a TaskStore with a read-through cache. Writes
// invalidate the affected entries so soft-deleted or updated tasks never
// linger in the list key.
type CachedTaskStore struct {
	store TaskStore
	cache cache.Cache
}

func NewCachedTaskStore(store TaskStore, c cache.Cache) *CachedTaskStore {
	return &CachedTaskStore{store: store, cache: c}
}

func taskKey(id uuid.UUID) string {
	return fmt.Sprintf("task:%s", id)
}

func (s *CachedTaskStore) GetTasks() ([]models.Task, error) {
	var cached []models.Task
	if err := s.cache.Get(activeTasksKey, &cached); err == nil {
		return cached, nil
	}

	tasks, err := s.store.GetTasks()
	if err != nil {
		return nil, err
	}
	s.cache.Set(activeTasksKey, tasks, taskListTTL)
	return tasks, nil
}

func (s *CachedTaskStore) GetTaskByID(id uuid.UUID) (models.Task, error) {
	var cached models.Task
	if err := s.cache.Get(taskKey(id), &cached); err == nil {
		return cached, nil
	}

	task, err := s.store.GetTaskByID(id)
	if err != nil {
		return models.Task{}, err
	}
	s.cache.Set(taskKey(id), task, taskTTL)
	return task, nil
}

func (s *CachedTaskStore) CreateTask(params TaskParams) (models.Task, error) {
	task, err := s.store.CreateTask(params)
	if err != nil {
		return models.Task{}, err
	}
	s.cache.Set(taskKey(task.ID), task, taskTTL)
	s.cache.Delete(activeTasksKey)
	return task, nil
}

func (s *CachedTaskStore) UpdateTask(id uuid.UUID, params TaskParams) (models.Task, error) {
	task, err := s.store.UpdateTask(id, params)
	if err != nil {
		return models.Task{}, err
	}
	s.cache.Set(taskKey(id), task, taskTTL)
	s.cache.Delete(activeTasksKey)
	return task, nil
}

func (s *CachedTaskStore) DeleteTask(id uuid.UUID) error {
	if err := s.store.DeleteTask(id); err != nil {
		return err
	}
	s.cache.Delete(taskKey(id))
	s.cache.Delete(activeTasksKey)
	return nil
}
