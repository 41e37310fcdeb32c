package repository

import (
	"context"

	"github.com/rrrodriguezc83/caa/internal/models"
)

// NotificationRepository reads the dashboard notification feed and reports
// acknowledgements. Reads go to the main controller; acknowledgements go to
// the communications controller, which is shaped as a form submission
// rather than a named operation.
type NotificationRepository struct {
	api               poster
	mainURL           string
	communicationsURL string
}

func NewNotificationRepository(api poster, mainURL, communicationsURL string) *NotificationRepository {
	return &NotificationRepository{api: api, mainURL: mainURL, communicationsURL: communicationsURL}
}

// GetNotifications returns the raw feed. Items missing the notify slot are
// kept here and dropped by the service, which owns the parsing rules.
func (r *NotificationRepository) GetNotifications(ctx context.Context) ([]models.NotificationItem, error) {
	env, err := r.api.Post(ctx, r.mainURL, map[string]string{
		"base":  baseCAA,
		"param": "getNotifys",
	})
	if err != nil {
		return nil, err
	}
	if err := requireOK(env, "getNotifys"); err != nil {
		return nil, err
	}
	if env.IsEmpty() {
		return []models.NotificationItem{}, nil
	}
	var items []models.NotificationItem
	if err := decodeInto(env, "getNotifys", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MarkAsRead acknowledges one notification. The nivel and coment fields are
// fixed sentinels the controller requires, "0" and the literal "null".
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	env, err := r.api.Post(ctx, r.communicationsURL, map[string]string{
		"param":  "submit_nivel_satisfactorio",
		"base":   baseCAA,
		"codigo": id,
		"nivel":  "0",
		"coment": "null",
	})
	if err != nil {
		return err
	}
	return requireOK(env, "markAsRead")
}
