package services

import (
	"context"
	"strings"

	"github.com/gofrs/uuid"

	"github.com/hOtoch/moment-midia/internal/agenda"
	"github.com/hOtoch/moment-midia/internal/models"
	"github.com/hOtoch/moment-midia/internal/repositories"
)

// assigneeNone is the select-input sentinel for "no assignee". It is a UI
// encoding only and is normalized to nil before anything is stored.
const assigneeNone = "none"

// TaskInput carries raw form values. Normalization and validation happen
// here, not in the handlers and not in the repository.
type TaskInput struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	AssignedUserID string `json:"assigned_user_id"`
	ScheduledDate  string `json:"scheduled_date"`
	Priority       string `json:"priority"`
}

type TaskService interface {
	Create(ctx context.Context, input TaskInput) (models.Task, error)
	Get(ctx context.Context, id uuid.UUID) (models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	Update(ctx context.Context, id uuid.UUID, input TaskInput) error
	ToggleCompletion(ctx context.Context, id uuid.UUID, current bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskEventSink receives task lifecycle notifications. A nil sink disables
// emission.
type TaskEventSink interface {
	TaskEvent(ctx context.Context, action string, taskID uuid.UUID)
}

type taskService struct {
	repo   repositories.TaskRepository
	events TaskEventSink
}

func NewTaskService(repo repositories.TaskRepository, events TaskEventSink) TaskService {
	return &taskService{repo: repo, events: events}
}

type normalizedTask struct {
	title          string
	description    *string
	assignedUserID *uuid.UUID
	scheduledDate  *string
	priority       models.Priority
}

func normalizeTaskInput(input TaskInput) (normalizedTask, error) {
	var n normalizedTask

	n.title = strings.TrimSpace(input.Title)
	if n.title == "" {
		return n, &ValidationError{Field: "title", Message: "title is required"}
	}

	if desc := strings.TrimSpace(input.Description); desc != "" {
		n.description = &desc
	}

	assignee := strings.TrimSpace(input.AssignedUserID)
	if assignee != "" && assignee != assigneeNone {
		id, err := uuid.FromString(assignee)
		if err != nil {
			return n, &ValidationError{Field: "assigned_user_id", Message: "invalid user id"}
		}
		n.assignedUserID = &id
	}

	if date := strings.TrimSpace(input.ScheduledDate); date != "" {
		parsed, err := agenda.ParseLocalDate(date)
		if err != nil {
			return n, &ValidationError{Field: "scheduled_date", Message: "expected YYYY-MM-DD"}
		}
		canonical := agenda.FormatLocalDate(parsed)
		n.scheduledDate = &canonical
	}

	switch priority := strings.TrimSpace(input.Priority); priority {
	case "":
		n.priority = models.PriorityMedium
	default:
		n.priority = models.Priority(priority)
		if !n.priority.Valid() {
			return n, &ValidationError{Field: "priority", Message: "must be low, medium or high"}
		}
	}

	return n, nil
}

func (s *taskService) Create(ctx context.Context, input TaskInput) (models.Task, error) {
	n, err := normalizeTaskInput(input)
	if err != nil {
		return models.Task{}, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return models.Task{}, &PersistenceError{Op: "create task", Err: err}
	}

	task := models.Task{
		ID:             id,
		Title:          n.title,
		Description:    n.description,
		AssignedUserID: n.assignedUserID,
		ScheduledDate:  n.scheduledDate,
		Priority:       n.priority,
	}

	if err := s.repo.Create(ctx, &task); err != nil {
		return models.Task{}, &PersistenceError{Op: "create task", Err: err}
	}

	s.emit(ctx, "created", task.ID)
	return task, nil
}

func (s *taskService) Get(ctx context.Context, id uuid.UUID) (models.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return models.Task{}, err
		}
		return models.Task{}, &PersistenceError{Op: "get task", Err: err}
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list tasks", Err: err}
	}
	return tasks, nil
}

func (s *taskService) Update(ctx context.Context, id uuid.UUID, input TaskInput) error {
	n, err := normalizeTaskInput(input)
	if err != nil {
		return err
	}

	// Full-record update from the edit form; created_at stays untouched.
	fields := map[string]interface{}{
		"title":            n.title,
		"description":      n.description,
		"assigned_user_id": n.assignedUserID,
		"scheduled_date":   n.scheduledDate,
		"priority":         n.priority,
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		if err == repositories.ErrNotFound {
			return err
		}
		return &PersistenceError{Op: "update task", Err: err}
	}

	s.emit(ctx, "updated", id)
	return nil
}

func (s *taskService) ToggleCompletion(ctx context.Context, id uuid.UUID, current bool) error {
	if err := s.repo.SetCompletion(ctx, id, !current); err != nil {
		if err == repositories.ErrNotFound {
			return err
		}
		return &PersistenceError{Op: "toggle completion", Err: err}
	}

	s.emit(ctx, "completion_toggled", id)
	return nil
}

func (s *taskService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repositories.ErrNotFound {
			return err
		}
		return &PersistenceError{Op: "delete task", Err: err}
	}

	s.emit(ctx, "deleted", id)
	return nil
}

func (s *taskService) emit(ctx context.Context, action string, id uuid.UUID) {
	if s.events != nil {
		s.events.TaskEvent(ctx, action, id)
	}
}
