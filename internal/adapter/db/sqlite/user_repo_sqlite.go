package sqlite

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-management-api/internal/domain/user"
	pkgerrors "user-management-api/pkg/errors"
)

// UserRepoSQLite implements the Repository interface using GORM over an in-memory SQLite database.
type UserRepoSQLite struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoSQLite creates a new instance of UserRepoSQLite.
func NewUserRepoSQLite(db *gorm.DB, log *zap.Logger) *UserRepoSQLite {
	return &UserRepoSQLite{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
// IDs are assigned by Create, not by the database.
type UserSchema struct {
	ID    int64  `gorm:"primaryKey;autoIncrement:false"`
	Name  string `gorm:"not null"`
	Email string `gorm:"not null"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (s UserSchema) toDomain() user.User {
	return user.User{ID: s.ID, Name: s.Name, Email: s.Email}
}

// Migrate creates the users table.
func (r *UserRepoSQLite) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&UserSchema{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	return nil
}

// Create inserts a new user with ID max+1 (or 1 when the table is empty).
func (r *UserRepoSQLite) Create(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Name:  u.Name,
		Email: u.Email,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID int64
		if err := tx.Model(&UserSchema{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return err
		}
		model.ID = maxID + 1
		return tx.Create(&model).Error
	})
	if err != nil {
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return 0, pkgerrors.NewInternalError("failed to create user", err)
	}

	r.log.Debug("user created in db", zap.Int64("id", model.ID))
	return model.ID, nil
}

// Update replaces the name and email of an existing user.
func (r *UserRepoSQLite) Update(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	res := r.db.WithContext(ctx).Model(&UserSchema{}).Where("id = ?", u.ID).Updates(map[string]any{
		"name":  u.Name,
		"email": u.Email,
	})
	if res.Error != nil {
		r.log.Error("failed to update user in db", zap.Error(res.Error), zap.Int64("id", u.ID))
		return 0, pkgerrors.NewInternalError("failed to update user", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, pkgerrors.UserNotFound(u.ID)
	}

	r.log.Debug("user updated in db", zap.Int64("id", u.ID))
	return u.ID, nil
}

// Delete removes a user from the database by ID.
func (r *UserRepoSQLite) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&UserSchema{}, id)
	if res.Error != nil {
		r.log.Error("failed to delete user in db", zap.Error(res.Error), zap.Int64("id", id))
		return 0, pkgerrors.NewInternalError("failed to delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, pkgerrors.UserNotFound(id)
	}

	r.log.Debug("user deleted in db", zap.Int64("id", id))
	return id, nil
}

// GetByID retrieves a user from the database by their unique ID.
func (r *UserRepoSQLite) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.UserNotFound(id)
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, pkgerrors.NewInternalError("failed to get user", err)
	}

	u := model.toDomain()
	return &u, nil
}

// List retrieves every user ordered by ID.
func (r *UserRepoSQLite) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to list users", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = model.toDomain()
	}

	return users, nil
}
