// Package repository gives typed, named operations to the rest of the
// system. Every method is a fixed-shape pass-through: a base namespace, a
// param operation name and operation-specific fields POSTed to one of the
// five controller URLs, with the envelope decoded into a domain type.
package repository

import (
	"context"
	"fmt"

	"github.com/rrrodriguezc83/caa/internal/models"
	apperrors "github.com/rrrodriguezc83/caa/pkg/errors"
)

// Base namespaces of the legacy controllers.
const (
	baseComunidad = "comunidad"
	baseCAA       = "caa"
	baseR         = "r"
)

type poster interface {
	Post(ctx context.Context, url string, params map[string]string) (*models.Envelope, error)
}

// requireOK converts a non-200 envelope code into the backend-code error.
func requireOK(env *models.Envelope, operation string) error {
	if env.OK() {
		return nil
	}
	return apperrors.Clone(apperrors.ErrBackendCode, fmt.Sprintf("%s: backend code %d", operation, env.Code))
}

// decodeInto decodes the envelope payload, wrapping failures as decode
// errors so one taxonomy covers both transport and body problems.
func decodeInto(env *models.Envelope, operation string, v interface{}) error {
	if err := env.Decode(v); err != nil {
		return apperrors.Wrap(err, apperrors.ErrDecode.Code, apperrors.ErrDecode.Status, operation+": undecodable response")
	}
	return nil
}
