package repository

import (
	"context"
	"encoding/json"

	"github.com/rrrodriguezc83/caa/internal/models"
	apperrors "github.com/rrrodriguezc83/caa/pkg/errors"
	"github.com/rrrodriguezc83/caa/pkg/textutil"
)

// CircularRepository reads circulars and reports read receipts to the
// notices controller.
type CircularRepository struct {
	api        poster
	noticesURL string
}

func NewCircularRepository(api poster, noticesURL string) *CircularRepository {
	return &CircularRepository{api: api, noticesURL: noticesURL}
}

// GetNotices returns the raw circular map keyed by opaque backend keys.
// The map carries a non-circular "keys" entry alongside the circulars, so
// values stay raw until the service filters them.
func (r *CircularRepository) GetNotices(ctx context.Context) (map[string]json.RawMessage, error) {
	env, err := r.api.Post(ctx, r.noticesURL, map[string]string{
		"base":    baseComunidad,
		"param":   "getNotices",
		"surveys": "false",
	})
	if err != nil {
		return nil, err
	}
	if err := requireOK(env, "getNotices"); err != nil {
		return nil, err
	}
	if env.IsEmpty() {
		return map[string]json.RawMessage{}, nil
	}
	var notices map[string]json.RawMessage
	if err := decodeInto(env, "getNotices", &notices); err != nil {
		return nil, err
	}
	return notices, nil
}

// GetNoticeContent fetches the full body of one circular. The circular
// number travels base64-encoded, a wire convention of the controller.
func (r *CircularRepository) GetNoticeContent(ctx context.Context, number string) (*models.CircularContent, error) {
	env, err := r.api.Post(ctx, r.noticesURL, map[string]string{
		"base":   baseComunidad,
		"param":  "getNoticeContent",
		"notice": textutil.EncodeBase64(number),
	})
	if err != nil {
		return nil, err
	}
	if err := requireOK(env, "getNoticeContent"); err != nil {
		return nil, err
	}
	if env.IsEmpty() {
		return nil, apperrors.Clone(apperrors.ErrNotFound, "getNoticeContent: circular not found")
	}
	content := &models.CircularContent{}
	if err := decodeInto(env, "getNoticeContent", content); err != nil {
		return nil, err
	}
	return content, nil
}

// SendConsult records that the user opened a circular.
func (r *CircularRepository) SendConsult(ctx context.Context, number string) error {
	env, err := r.api.Post(ctx, r.noticesURL, map[string]string{
		"base":       baseComunidad,
		"param":      "sendConsult",
		"num_notice": number,
	})
	if err != nil {
		return err
	}
	return requireOK(env, "sendConsult")
}
