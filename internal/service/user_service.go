package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/rrrodriguezc83/caa/internal/models"
	"github.com/rrrodriguezc83/caa/pkg/textutil"
)

type userRepository interface {
	GetInfo(ctx context.Context) (*models.User, error)
	GetMain(ctx context.Context) ([]models.Module, error)
}

// UserService exposes the session owner's profile and module grants.
type UserService struct {
	repo   userRepository
	logger *zap.Logger
}

func NewUserService(repo userRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, logger: logger}
}

// Profile is the display-ready projection of the session user.
type Profile struct {
	User      models.User
	PhotoURI  string
	Initials  string
	FirstName string
}

// GetProfile fetches the user record and precomputes the avatar fields.
// The photo stays empty when the backend sends none, so the caller falls
// back to initials.
func (s *UserService) GetProfile(ctx context.Context) (*Profile, error) {
	user, err := s.repo.GetInfo(ctx)
	if err != nil {
		return nil, err
	}
	profile := &Profile{
		User:      *user,
		Initials:  user.Initials(),
		FirstName: user.FirstName(),
	}
	if user.Foto != "" {
		profile.PhotoURI = textutil.PhotoDataURI(user.Foto)
	}
	return profile, nil
}

// GetMainModules lists the navigation modules granted to the profile.
func (s *UserService) GetMainModules(ctx context.Context) ([]models.Module, error) {
	return s.repo.GetMain(ctx)
}
