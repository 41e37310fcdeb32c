package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rrrodriguezc83/caa/internal/models"
	"github.com/rrrodriguezc83/caa/internal/secure"
	apperrors "github.com/rrrodriguezc83/caa/pkg/errors"
)

type authRepository interface {
	Login(ctx context.Context, username, password, typeSession string) (*models.LoginPayload, error)
	Logout(ctx context.Context) error
}

type credentialStore interface {
	Save(creds models.StoredCredentials) error
	Get() (*models.StoredCredentials, error)
	Has() bool
	Delete() error
}

// AuthService runs the session lifecycle and the biometric quick-login flow
// layered on the encrypted credential store.
type AuthService struct {
	repo      authRepository
	creds     credentialStore
	gate      secure.BiometricGate
	validator *validator.Validate
	logger    *zap.Logger
}

func NewAuthService(repo authRepository, creds credentialStore, gate secure.BiometricGate, logger *zap.Logger) *AuthService {
	if gate == nil {
		gate = secure.UnavailableGate{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		repo:      repo,
		creds:     creds,
		gate:      gate,
		validator: validator.New(),
		logger:    logger,
	}
}

// LoginInput carries the credentials plus the session type selector,
// "1" for community accounts and "2" for students.
type LoginInput struct {
	Username    string `validate:"required"`
	Password    string `validate:"required"`
	TypeSession string `validate:"required,oneof=1 2"`
}

// Login authenticates against the backend. The backend answers a rejected
// credential pair with a structurally valid payload whose perfil is empty,
// so that shape is surfaced as a rejection rather than a success.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.LoginPayload, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid login input")
	}

	payload, err := s.repo.Login(ctx, input.Username, input.Password, input.TypeSession)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(payload.Perfil) == "" {
		return nil, apperrors.Clone(apperrors.ErrLoginRejected, "")
	}

	s.logger.Info("login accepted", zap.String("perfil", payload.Perfil))
	return payload, nil
}

// Logout drops the backend session and the local session identifier.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.repo.Logout(ctx)
}

// BiometricReady reports whether the quick-login path can be offered:
// hardware present, a biometric enrolled and credentials remembered.
func (s *AuthService) BiometricReady() bool {
	return s.gate.IsAvailable() && s.creds.Has()
}

// EnableBiometric remembers the credentials for biometric replay. It
// refuses when no biometric hardware is usable so credentials are never
// stored without a gate in front of them.
func (s *AuthService) EnableBiometric(input LoginInput, profile string) error {
	if !s.gate.IsAvailable() {
		return apperrors.Clone(apperrors.ErrBiometricUnavailable, "")
	}
	if err := s.validator.Struct(input); err != nil {
		return apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid credentials for biometric store")
	}
	return s.creds.Save(models.StoredCredentials{
		Username:  input.Username,
		Password:  input.Password,
		Profile:   profile,
		Timestamp: time.Now(),
	})
}

// BiometricLogin shows the biometric prompt and, when confirmed, replays
// the stored credentials through the normal login path.
func (s *AuthService) BiometricLogin(ctx context.Context, typeSession string) (*models.LoginPayload, error) {
	if !s.gate.IsAvailable() {
		return nil, apperrors.Clone(apperrors.ErrBiometricUnavailable, "")
	}
	stored, err := s.creds.Get()
	if err != nil {
		return nil, err
	}

	ok, err := s.gate.Authenticate(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrBiometricUnavailable.Code, apperrors.ErrBiometricUnavailable.Status, "biometric prompt failed")
	}
	if !ok {
		return nil, apperrors.Clone(apperrors.ErrBiometricRejected, "")
	}

	return s.Login(ctx, LoginInput{
		Username:    stored.Username,
		Password:    stored.Password,
		TypeSession: typeSession,
	})
}

// DisableBiometric forgets the stored credentials.
func (s *AuthService) DisableBiometric() error {
	return s.creds.Delete()
}
