package services

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hOtoch/moment-midia/internal/models"
	"github.com/hOtoch/moment-midia/internal/repositories"
)

type fakeTaskRepo struct {
	tasks       map[uuid.UUID]models.Task
	createCalls int
	updateCalls int
	lastFields  map[string]interface{}
	failWith    error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]models.Task)}
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *models.Task) error {
	f.createCalls++
	if f.failWith != nil {
		return f.failWith
	}
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Task, error) {
	if f.failWith != nil {
		return models.Task{}, f.failWith
	}
	task, ok := f.tasks[id]
	if !ok {
		return models.Task{}, repositories.ErrNotFound
	}
	return task, nil
}

func (f *fakeTaskRepo) List(ctx context.Context) ([]models.Task, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var tasks []models.Task
	for _, task := range f.tasks {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	f.updateCalls++
	f.lastFields = fields
	if f.failWith != nil {
		return f.failWith
	}
	task, ok := f.tasks[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if title, ok := fields["title"].(string); ok {
		task.Title = title
	}
	task.Description, _ = fields["description"].(*string)
	task.AssignedUserID, _ = fields["assigned_user_id"].(*uuid.UUID)
	task.ScheduledDate, _ = fields["scheduled_date"].(*string)
	if priority, ok := fields["priority"].(models.Priority); ok {
		task.Priority = priority
	}
	f.tasks[id] = task
	return nil
}

func (f *fakeTaskRepo) SetCompletion(ctx context.Context, id uuid.UUID, completed bool) error {
	if f.failWith != nil {
		return f.failWith
	}
	task, ok := f.tasks[id]
	if !ok {
		return repositories.ErrNotFound
	}
	task.Completed = completed
	f.tasks[id] = task
	return nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.tasks[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func TestTaskService_Create_TrimsTitle(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo, nil)

	task, err := svc.Create(context.Background(), TaskInput{Title: "  Publicar stories  "})
	require.NoError(t, err)

	assert.Equal(t, "Publicar stories", task.Title)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.False(t, task.Completed)
	assert.Equal(t, 1, repo.createCalls)
}

// A blank title must fail before any persistence call is issued.
func TestTaskService_Create_EmptyTitle(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo, nil)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(context.Background(), TaskInput{Title: title})

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, "title %q", title)
		assert.Equal(t, "title", validationErr.Field)
	}

	assert.Equal(t, 0, repo.createCalls)
}

func TestTaskService_Create_NormalizesOptionalFields(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo, nil)

	task, err := svc.Create(context.Background(), TaskInput{
		Title:          "Planejar",
		Description:    "   ",
		AssignedUserID: "none",
		ScheduledDate:  "",
	})
	require.NoError(t, err)

	assert.Nil(t, task.Description)
	assert.Nil(t, task.AssignedUserID)
	assert.Nil(t, task.ScheduledDate)
}

func TestTaskService_Create_SentinelNeverStored(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo, nil)

	userID := uuid.Must(uuid.NewV4())
	task, err := svc.Create(context.Background(), TaskInput{
		Title:          "Atribuída",
		AssignedUserID: userID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, task.AssignedUserID)
	assert.Equal(t, userID, *task.AssignedUserID)

	_, err = svc.Create(context.Background(), TaskInput{
		Title:          "Inválida",
		AssignedUserID: "not-a-uuid",
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "assigned_user_id", validationErr.Field)
}

func TestTaskService_Create_ScheduledDate(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo, nil)

	task, err := svc.Create(context.Background(), TaskInput{
		Title:         "Agendada",
		ScheduledDate: "2024-03-10",
	})
	require.NoError(t, err)
	require.NotNil(t, task.ScheduledDate)
	assert.Equal(t, "2024-03-10", *task.ScheduledDate)

	_, err = svc.Create(context.Background(), TaskInput{
		Title:         "Data ruim",
		ScheduledDate: "10/03/2024",
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "scheduled_date", validationErr.Field)
}

func TestTaskService_Create_Priority(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo, nil)

	task, err := svc.Create(context.Background(), TaskInput{Title: "Alta", Priority: "high"})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, task.Priority)

	_, err = svc.Create(context.Background(), TaskInput{Title: "Urgente", Priority: "urgent"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "priority", validationErr.Field)
}

func TestTaskService_Create_RepoFailure(t *testing.T) {
	repo := newFakeTaskRepo()
	repo.failWith = errors.New("connection refused")
	svc := NewTaskService(repo, nil)

	_, err := svc.Create(context.Background(), TaskInput{Title: "Falha"})

	var persistenceErr *PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.Contains(t, persistenceErr.Error(), "connection refused")
}

func TestTaskService_Update_NeverTouchesCreatedAt(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo, nil)

	task, err := svc.Create(context.Background(), TaskInput{Title: "Original"})
	require.NoError(t, err)

	err = svc.Update(context.Background(), task.ID, TaskInput{Title: "Editada", Priority: "low"})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFields)
	assert.NotContains(t, repo.lastFields, "created_at")
	assert.NotContains(t, repo.lastFields, "completed")
	assert.Equal(t, "Editada", repo.lastFields["title"])
}

func TestTaskService_Update_Validates(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo, nil)

	err := svc.Update(context.Background(), uuid.Must(uuid.NewV4()), TaskInput{Title: "  "})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestTaskService_Update_Missing(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepo(), nil)

	err := svc.Update(context.Background(), uuid.Must(uuid.NewV4()), TaskInput{Title: "x"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

// Toggling twice must land back on the original value.
func TestTaskService_ToggleCompletion_DoubleToggle(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo, nil)
	ctx := context.Background()

	task, err := svc.Create(ctx, TaskInput{Title: "Alternar"})
	require.NoError(t, err)
	require.False(t, task.Completed)

	require.NoError(t, svc.ToggleCompletion(ctx, task.ID, task.Completed))
	toggled, err := svc.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	require.NoError(t, svc.ToggleCompletion(ctx, toggled.ID, toggled.Completed))
	restored, err := svc.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, restored.Completed)
}

func TestTaskService_Delete(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo, nil)
	ctx := context.Background()

	task, err := svc.Create(ctx, TaskInput{Title: "Remover"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, task.ID))

	_, err = svc.Get(ctx, task.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

type recordingSink struct {
	actions []string
}

func (r *recordingSink) TaskEvent(ctx context.Context, action string, taskID uuid.UUID) {
	r.actions = append(r.actions, action)
}

func TestTaskService_EmitsEvents(t *testing.T) {
	repo := newFakeTaskRepo()
	sink := &recordingSink{}
	svc := NewTaskService(repo, sink)
	ctx := context.Background()

	task, err := svc.Create(ctx, TaskInput{Title: "Eventos"})
	require.NoError(t, err)
	require.NoError(t, svc.Update(ctx, task.ID, TaskInput{Title: "Eventos 2"}))
	require.NoError(t, svc.ToggleCompletion(ctx, task.ID, false))
	require.NoError(t, svc.Delete(ctx, task.ID))

	assert.Equal(t, []string{"created", "updated", "completion_toggled", "deleted"}, sink.actions)
}

func TestTaskService_NoEventOnValidationFailure(t *testing.T) {
	sink := &recordingSink{}
	svc := NewTaskService(newFakeTaskRepo(), sink)

	_, err := svc.Create(context.Background(), TaskInput{Title: " "})
	require.Error(t, err)
	assert.Empty(t, sink.actions)
}
