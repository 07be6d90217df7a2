package service

import (
	"context"

	"blogicum/internal/models"
	"blogicum/internal/observability"
	"blogicum/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService implements registration, credential checks, and the
// self-service profile edit.
type UserService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

type UpdateProfileInput struct {
	UserID    uint
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// NewUserService constructs a UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new account with a bcrypt password hash. Duplicate
// usernames and emails surface as duplicate errors naming the field.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		observability.RecordAuthAttempt("register", false)
		return nil, err
	}
	observability.RecordAuthAttempt("register", true)
	return user, nil
}

// Authenticate verifies the credentials and returns the account. Unknown
// usernames and wrong passwords report the same validation error so the
// login form does not leak which accounts exist.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		observability.RecordAuthAttempt("login", false)
		if models.IsNotFound(err) {
			return nil, models.NewValidationError("invalid username or password")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		observability.RecordAuthAttempt("login", false)
		return nil, models.NewValidationError("invalid username or password")
	}
	observability.RecordAuthAttempt("login", true)
	return user, nil
}

// GetByID resolves an account by primary key.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile edits the authenticated user's own account. The target is
// taken from the session, never from the request path.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	user.Username = in.Username
	user.Email = in.Email
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// IsStaff reports whether the user holds staff rights. Injected into the
// post and comment services as their moderation check.
func (s *UserService) IsStaff(ctx context.Context, userID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if models.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return user.IsStaff, nil
}
