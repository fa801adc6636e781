package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"

	"github.com/hOtoch/moment-midia/internal/cache"
	"github.com/hOtoch/moment-midia/internal/models"
)

const (
	taskTTL     = 30 * time.Minute
	taskListTTL = 10 * time.Minute

	taskListKey = "tasks:list"
)

// CachedTaskService decorates a TaskService with a read-through cache on the
// listing and per-task lookups. Every mutation invalidates the listing, so
// the next refetch after a mutation always hits the database.
type CachedTaskService struct {
	inner TaskService
	cache cache.Cache
}

func NewCachedTaskService(inner TaskService, cacheInstance cache.Cache) *CachedTaskService {
	return &CachedTaskService{inner: inner, cache: cacheInstance}
}

func taskKey(id uuid.UUID) string {
	return fmt.Sprintf("tasks:item:%s", id)
}

func (s *CachedTaskService) Create(ctx context.Context, input TaskInput) (models.Task, error) {
	task, err := s.inner.Create(ctx, input)
	if err != nil {
		return task, err
	}

	s.cache.Set(taskKey(task.ID), task, taskTTL)
	s.cache.Delete(taskListKey)
	return task, nil
}

func (s *CachedTaskService) Get(ctx context.Context, id uuid.UUID) (models.Task, error) {
	var cached models.Task
	if err := s.cache.Get(taskKey(id), &cached); err == nil {
		return cached, nil
	}

	task, err := s.inner.Get(ctx, id)
	if err != nil {
		return task, err
	}

	s.cache.Set(taskKey(id), task, taskTTL)
	return task, nil
}

func (s *CachedTaskService) List(ctx context.Context) ([]models.Task, error) {
	var cached []models.Task
	if err := s.cache.Get(taskListKey, &cached); err == nil {
		return cached, nil
	}

	tasks, err := s.inner.List(ctx)
	if err != nil {
		return tasks, err
	}

	s.cache.Set(taskListKey, tasks, taskListTTL)
	return tasks, nil
}

func (s *CachedTaskService) Update(ctx context.Context, id uuid.UUID, input TaskInput) error {
	if err := s.inner.Update(ctx, id, input); err != nil {
		return err
	}

	s.invalidate(id)
	return nil
}

func (s *CachedTaskService) ToggleCompletion(ctx context.Context, id uuid.UUID, current bool) error {
	if err := s.inner.ToggleCompletion(ctx, id, current); err != nil {
		return err
	}

	s.invalidate(id)
	return nil
}

func (s *CachedTaskService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.inner.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(id)
	return nil
}

func (s *CachedTaskService) invalidate(id uuid.UUID) {
	s.cache.Delete(taskKey(id))
	s.cache.Delete(taskListKey)
}

func (s *CachedTaskService) CacheStats() map[string]interface{} {
	return s.cache.Stats()
}
