package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/stylecast/wardrobe/internal/model"
	"github.com/stylecast/wardrobe/internal/repository"
	"github.com/stylecast/wardrobe/internal/validation"
)

var (
	ErrInvalidIdentity = errors.New("identity provider returned an incomplete identity")
)

type UserService struct {
	userRepository repository.UserRepository
	now            func() time.Time
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{
		userRepository: userRepository,
		now:            time.Now,
	}
}

func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	return s.userRepository.ByID(ctx, id)
}

// AuthenticateOAuth returns the user for a verified identity, creating the
// record on first login. The provider's subject becomes the user id.
func (s *UserService) AuthenticateOAuth(ctx context.Context, identity *model.Identity) (*model.User, error) {
	if identity == nil || identity.Subject == "" {
		return nil, ErrInvalidIdentity
	}
	email := strings.TrimSpace(strings.ToLower(identity.Email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIdentity, err)
	}

	user, err := s.userRepository.ByID(ctx, identity.Subject)
	if err == nil {
		slog.Info("user authenticated via OAuth", "user_id", user.ID)
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to lookup user: %w", err)
	}

	user = &model.User{
		ID:        identity.Subject,
		Email:     email,
		Name:      strings.TrimSpace(identity.Name),
		CreatedAt: s.now().UTC(),
	}

	err = s.userRepository.Create(ctx, user)
	if errors.Is(err, repository.ErrUserExists) {
		// Concurrent first login; the other request's record wins.
		return s.userRepository.ByID(ctx, identity.Subject)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("new OAuth user created", "user_id", user.ID)
	return user, nil
}
