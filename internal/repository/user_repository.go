package repository

import (
	"context"

	"github.com/rrrodriguezc83/caa/internal/models"
	apperrors "github.com/rrrodriguezc83/caa/pkg/errors"
)

// UserRepository reads the authenticated user's profile and module grants.
type UserRepository struct {
	api     poster
	mainURL string
}

func NewUserRepository(api poster, mainURL string) *UserRepository {
	return &UserRepository{api: api, mainURL: mainURL}
}

// GetInfo returns the profile of the session owner. The backend answers
// with a single-element array; only the first element is meaningful.
func (r *UserRepository) GetInfo(ctx context.Context) (*models.User, error) {
	env, err := r.api.Post(ctx, r.mainURL, map[string]string{
		"base":  baseCAA,
		"param": "getInfo",
	})
	if err != nil {
		return nil, err
	}
	if err := requireOK(env, "getInfo"); err != nil {
		return nil, err
	}
	if env.IsEmpty() {
		return nil, apperrors.Clone(apperrors.ErrNotFound, "getInfo: no profile for session")
	}
	var users []models.User
	if err := decodeInto(env, "getInfo", &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.Clone(apperrors.ErrNotFound, "getInfo: no profile for session")
	}
	return &users[0], nil
}

// GetMain lists the modules the user's profile is entitled to see.
func (r *UserRepository) GetMain(ctx context.Context) ([]models.Module, error) {
	env, err := r.api.Post(ctx, r.mainURL, map[string]string{
		"base":  baseR,
		"param": "getMain",
	})
	if err != nil {
		return nil, err
	}
	if err := requireOK(env, "getMain"); err != nil {
		return nil, err
	}
	if env.IsEmpty() {
		return []models.Module{}, nil
	}
	var modules []models.Module
	if err := decodeInto(env, "getMain", &modules); err != nil {
		return nil, err
	}
	return modules, nil
}
