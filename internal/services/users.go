package services

import (
	"context"
	"strings"

	"github.com/gofrs/uuid"

	"github.com/hOtoch/moment-midia/internal/models"
	"github.com/hOtoch/moment-midia/internal/repositories"
)

type UserInput struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
}

type UserService interface {
	Create(ctx context.Context, input UserInput) (models.User, error)
	Get(ctx context.Context, id uuid.UUID) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id uuid.UUID, input UserInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo repositories.UserRepository
}

func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

type normalizedUser struct {
	name  string
	role  models.Role
	phone *string
}

func normalizeUserInput(input UserInput) (normalizedUser, error) {
	var n normalizedUser

	n.name = strings.TrimSpace(input.Name)
	if n.name == "" {
		return n, &ValidationError{Field: "name", Message: "name is required"}
	}

	switch role := strings.TrimSpace(input.Role); role {
	case "":
		n.role = models.RoleSocialMedia
	default:
		n.role = models.Role(role)
		if !n.role.Valid() {
			return n, &ValidationError{Field: "role", Message: "must be manager or social_media"}
		}
	}

	if phone := strings.TrimSpace(input.Phone); phone != "" {
		n.phone = &phone
	}

	return n, nil
}

func (s *userService) Create(ctx context.Context, input UserInput) (models.User, error) {
	n, err := normalizeUserInput(input)
	if err != nil {
		return models.User{}, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return models.User{}, &PersistenceError{Op: "create user", Err: err}
	}

	user := models.User{
		ID:    id,
		Name:  n.name,
		Role:  n.role,
		Phone: n.phone,
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		return models.User{}, &PersistenceError{Op: "create user", Err: err}
	}

	return user, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return models.User{}, err
		}
		return models.User{}, &PersistenceError{Op: "get user", Err: err}
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list users", Err: err}
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, input UserInput) error {
	n, err := normalizeUserInput(input)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{
		"name":  n.name,
		"role":  n.role,
		"phone": n.phone,
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		if err == repositories.ErrNotFound {
			return err
		}
		return &PersistenceError{Op: "update user", Err: err}
	}

	return nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repositories.ErrNotFound {
			return err
		}
		return &PersistenceError{Op: "delete user", Err: err}
	}

	return nil
}
