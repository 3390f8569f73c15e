package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lafayette53/apiserver/internal/notify"
	"github.com/lafayette53/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

const temporaryPasswordBytes = 9

// UserService encapsulates account use-cases.
type UserService struct {
	repo     UserRepository
	notifier Notifier
	logger   *log.Logger
	cost     int
}

func NewUserService(repo UserRepository, notifier Notifier, logger *log.Logger) *UserService {
	return &UserService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		cost:     bcrypt.DefaultCost,
	}
}

// Authenticate looks the user up by username and checks the password.
// An unknown username yields the repository's not-found error; a wrong
// password yields ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (types.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return types.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Register creates a curator account.
func (s *UserService) Register(ctx context.Context, username, email, password string) (types.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return types.User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.CreateUser(ctx, types.User{
		Username:     username,
		Email:        email,
		Role:         types.RoleCurator,
		PasswordHash: string(hashed),
	})
}

// ResetPassword replaces the user's password with a random temporary one and
// sends it to the user.
func (s *UserService) ResetPassword(ctx context.Context, username string) (types.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return types.User{}, err
	}

	password, err := temporaryPassword()
	if err != nil {
		return types.User{}, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return types.User{}, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)

	user, err = s.repo.UpdateUser(ctx, user)
	if err != nil {
		return types.User{}, err
	}

	notifyQuietly(ctx, s.notifier, s.logger, notify.Event{
		Type:      notify.EventPasswordReset,
		Recipient: user.Username,
		Data: map[string]string{
			"email":    user.Email,
			"password": password,
		},
	})
	return user, nil
}

// Promote grants the head curator role.
func (s *UserService) Promote(ctx context.Context, username string) (types.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return types.User{}, err
	}
	if user.Role == types.RoleHeadCurator {
		return user, nil
	}
	user.Role = types.RoleHeadCurator
	return s.repo.UpdateUser(ctx, user)
}

func temporaryPassword() (string, error) {
	buf := make([]byte, temporaryPasswordBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
