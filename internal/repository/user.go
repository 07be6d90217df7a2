package repository

import (
	"context"
	"errors"
	"strings"

	"blogicum/internal/models"
	"blogicum/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db   *gorm.DB
	rlog *observability.RepoLogger
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, rlog: observability.NewRepoLogger("users")}
}

// duplicateField maps a unique constraint violation to the offending field.
// Postgres reports SQLSTATE 23505 with the index name; SQLite embeds the
// column in the message text.
func duplicateField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return "email", true
		}
		return "username", true
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		if strings.Contains(msg, "email") {
			return "email", true
		}
		return "username", true
	}
	return "", false
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("create", "users")()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if field, ok := duplicateField(err); ok {
			return models.NewDuplicateError(field)
		}
		r.rlog.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.rlog.LogWrite(ctx, "create", user.ID)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	defer observability.TrackQuery("get", "users")()
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("user", id)
		}
		r.rlog.LogError(ctx, err, "get")
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	defer observability.TrackQuery("get_by_username", "users")()
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("user", username)
		}
		r.rlog.LogError(ctx, err, "get_by_username")
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("update", "users")()
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if field, ok := duplicateField(err); ok {
			return models.NewDuplicateError(field)
		}
		r.rlog.LogError(ctx, err, "update")
		return models.NewInternalError(err)
	}
	r.rlog.LogWrite(ctx, "update", user.ID)
	return nil
}
