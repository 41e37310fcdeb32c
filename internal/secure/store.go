// Package secure keeps the remembered login credentials encrypted at rest
// so the biometric unlock flow can replay them without the user typing.
package secure

import (
	"crypto/rand"
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"github.com/rrrodriguezc83/caa/internal/models"
	apperrors "github.com/rrrodriguezc83/caa/pkg/errors"
)

const saltSize = 16

// Store persists a single credential record in one file laid out as
// salt || nonce || ciphertext. The key is derived per write from the
// configured secret and a fresh salt.
type Store struct {
	path   string
	secret []byte
}

func NewStore(path, secret string) *Store {
	return &Store{path: path, secret: []byte(secret)}
}

func (s *Store) deriveKey(salt []byte) ([]byte, error) {
	return scrypt.Key(s.secret, salt, 1<<15, 8, 1, chacha20poly1305.KeySize)
}

// Save encrypts and writes the credentials, replacing any previous record.
func (s *Store) Save(creds models.StoredCredentials) error {
	plaintext, err := json.Marshal(creds)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "credentials could not be serialised")
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "salt generation failed")
	}
	key, err := s.deriveKey(salt)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "key derivation failed")
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "cipher initialisation failed")
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "nonce generation failed")
	}

	blob := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+aead.Overhead())
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = aead.Seal(blob, nonce, plaintext, nil)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "credential directory could not be created")
	}
	if err := os.WriteFile(s.path, blob, 0o600); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "credentials could not be written")
	}
	return nil
}

// Get decrypts and returns the stored record.
func (s *Store) Get() (*models.StoredCredentials, error) {
	blob, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Clone(apperrors.ErrCredentialsNotFound, "")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "credentials could not be read")
	}
	if len(blob) < saltSize+chacha20poly1305.NonceSizeX {
		return nil, apperrors.Clone(apperrors.ErrCredentialsNotFound, "credential record is truncated")
	}

	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+chacha20poly1305.NonceSizeX]
	ciphertext := blob[saltSize+chacha20poly1305.NonceSizeX:]

	key, err := s.deriveKey(salt)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "key derivation failed")
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "cipher initialisation failed")
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCredentialsNotFound.Code, apperrors.ErrCredentialsNotFound.Status, "credential record could not be decrypted")
	}

	creds := &models.StoredCredentials{}
	if err := json.Unmarshal(plaintext, creds); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCredentialsNotFound.Code, apperrors.ErrCredentialsNotFound.Status, "credential record is corrupt")
	}
	return creds, nil
}

// Has reports whether a record exists without decrypting it.
func (s *Store) Has() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Delete removes the record. Deleting an absent record is not an error.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "credentials could not be removed")
	}
	return nil
}
