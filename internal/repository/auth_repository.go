package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/rrrodriguezc83/caa/internal/models"
	"github.com/rrrodriguezc83/caa/pkg/textutil"
)

type authGateway interface {
	Post(ctx context.Context, url string, params map[string]string) (*models.Envelope, error)
	ClearSession()
}

// AuthRepository handles the session lifecycle against the main controller.
type AuthRepository struct {
	api     authGateway
	mainURL string
	logger  *zap.Logger
}

func NewAuthRepository(api authGateway, mainURL string, logger *zap.Logger) *AuthRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthRepository{api: api, mainURL: mainURL, logger: logger}
}

// Login posts base64-encoded credentials. The encoding is a wire convention
// of the legacy controller, not a protection mechanism. An accepted login
// also primes the transport session from the Set-Cookie response header.
func (r *AuthRepository) Login(ctx context.Context, username, password, typeSession string) (*models.LoginPayload, error) {
	env, err := r.api.Post(ctx, r.mainURL, map[string]string{
		"base":         baseComunidad,
		"param":        "login",
		"user":         textutil.EncodeBase64(username),
		"pass":         textutil.EncodeBase64(password),
		"type_session": typeSession,
	})
	if err != nil {
		return nil, err
	}
	if err := requireOK(env, "login"); err != nil {
		return nil, err
	}
	payload := &models.LoginPayload{}
	if env.IsEmpty() {
		return payload, nil
	}
	if err := decodeInto(env, "login", payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Logout tells the backend to drop the session by re-posting login with the
// literal string "false" in every slot, credentials base64-encoded, then
// discards the local session identifier. The local clear happens even when
// the backend call fails so a retry never reuses a half-dead session.
func (r *AuthRepository) Logout(ctx context.Context) error {
	falseB64 := textutil.EncodeBase64("false")
	env, err := r.api.Post(ctx, r.mainURL, map[string]string{
		"base":         baseComunidad,
		"param":        "login",
		"user":         falseB64,
		"pass":         falseB64,
		"type_session": "false",
	})
	r.api.ClearSession()
	if err != nil {
		return err
	}
	return requireOK(env, "logout")
}
