// Package repositories is the data-access gateway: every read and write the
// services perform goes through these two interfaces, so tests swap in fakes
// and the HTTP layer never sees gorm.
package repositories

import (
	"context"

	"github.com/gofrs/uuid"

	"github.com/hOtoch/moment-midia/internal/models"
)

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (models.Task, error)
	// List returns all tasks newest-first with the assignee's name joined in.
	List(ctx context.Context) ([]models.Task, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	SetCompletion(ctx context.Context, id uuid.UUID, completed bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
	// List returns all users ordered by name.
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	// Delete removes the user after clearing the assignment on any of their
	// tasks, in one transaction: tasks survive a user deletion unassigned.
	Delete(ctx context.Context, id uuid.UUID) error
}
