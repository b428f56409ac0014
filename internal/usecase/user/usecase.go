package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "user-management-api/internal/domain/user"
	pkgerrors "user-management-api/pkg/errors"
	"user-management-api/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing the in-memory store, the SQLite
// store and the cached decorator to be used interchangeably.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)   // Create a new user, assigning its ID
	GetByID(ctx context.Context, id int64) (*domain.User, error) // Retrieve user by ID
	Update(ctx context.Context, u *domain.User) (int64, error)   // Update name and email of an existing user
	Delete(ctx context.Context, id int64) (int64, error)         // Delete user by ID
	List(ctx context.Context) ([]domain.User, error)             // List all users in ID order
}

// UserUsecase implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
type UserUsecase struct {
	repo     Repository          // Repository for data access
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

var _ Usecase = (*UserUsecase)(nil)

// New creates a new instance of UserUsecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) *UserUsecase {
	return &UserUsecase{repo: r, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a ValidationError
// carrying one human-readable message per failed field.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return pkgerrors.NewValidationError(messages...)
}

// CreateUser validates the request and stores a new user.
func (uc *UserUsecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	u := &domain.User{
		Name:  in.Name,
		Email: in.Email,
	}
	id, err := uc.repo.Create(ctx, u)
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	return &CreateUserResponse{User: User{ID: id, Name: u.Name, Email: u.Email}}, nil
}

// UpdateUser replaces the name and email of an existing user.
// An unknown ID is reported before the payload is validated.
func (uc *UserUsecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	log.Info("updating user", zap.Int64("id", in.ID), zap.String("name", in.Name), zap.String("email", in.Email))

	if _, err := uc.repo.GetByID(ctx, in.ID); err != nil {
		log.Warn("user to update not found", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	id, err := uc.repo.Update(ctx, &domain.User{
		ID:    in.ID,
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	return &UpdateUserResponse{User: User{ID: id, Name: in.Name, Email: in.Email}}, nil
}

// DeleteUser removes a user by ID.
func (uc *UserUsecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("deleting user", zap.Int64("id", in.ID))

	id, err := uc.repo.Delete(ctx, in.ID)
	if err != nil {
		log.Warn("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	return &DeleteUserResponse{ID: id}, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUsecase) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		logger.WithContext(ctx, uc.log).Warn("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	return &GetUserResponse{User: User{ID: u.ID, Name: u.Name, Email: u.Email}}, nil
}

// ListUsers returns every stored user in ID order.
func (uc *UserUsecase) ListUsers(ctx context.Context, _ ListUsersRequest) (*ListUsersResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Debug("listing users")

	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = User{
			ID:    du.ID,
			Name:  du.Name,
			Email: du.Email,
		}
	}

	return &ListUsersResponse{
		Users: users,
	}, nil
}
