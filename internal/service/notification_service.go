package service

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/rrrodriguezc83/caa/internal/models"
	apperrors "github.com/rrrodriguezc83/caa/pkg/errors"
)

type notificationRepository interface {
	GetNotifications(ctx context.Context) ([]models.NotificationItem, error)
	MarkAsRead(ctx context.Context, id string) error
}

// NotificationService decodes the dashboard notification feed and runs the
// acknowledgement flow.
type NotificationService struct {
	repo   notificationRepository
	logger *zap.Logger
}

func NewNotificationService(repo notificationRepository, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{repo: repo, logger: logger}
}

// Label prefixes embedded in the notify string. The mensaje label arrives
// without a colon.
var (
	temaLabelRe      = regexp.MustCompile(`(?i)^\s*tema:\s*`)
	mensajeLabelRe   = regexp.MustCompile(`(?i)^\s*mensaje\s*`)
	respuestaLabelRe = regexp.MustCompile(`(?i)^\s*respuesta:\s*`)
)

// ParseNotification decodes the slash-delimited notify string. Newlines and
// tabs are stripped before tokenizing and missing tokens become empty
// fields, so an empty id slot still yields a renderable record.
func ParseNotification(item models.NotificationItem) *models.Notification {
	sanitized := strings.NewReplacer("\n", "", "\t", "").Replace(item.Notify)
	tokens := strings.Split(sanitized, "/")

	field := func(i int) string {
		if i < len(tokens) {
			return tokens[i]
		}
		return ""
	}

	return &models.Notification{
		ID:         field(0),
		Tema:       strings.TrimSpace(temaLabelRe.ReplaceAllString(field(1), "")),
		Mensaje:    strings.TrimSpace(mensajeLabelRe.ReplaceAllString(field(2), "")),
		Respuesta:  strings.TrimSpace(respuestaLabelRe.ReplaceAllString(field(3), "")),
		Asunto:     field(4),
		Respuesta2: field(5),
		Type:       item.Type,
		RawNotify:  item.Notify,
	}
}

// List fetches and decodes the feed. Items with no notify payload at all are
// dropped; a decoded record with an empty id is kept and shown as-is.
func (s *NotificationService) List(ctx context.Context) ([]models.Notification, error) {
	items, err := s.repo.GetNotifications(ctx)
	if err != nil {
		return nil, err
	}
	notifications := []models.Notification{}
	for _, item := range items {
		if item.Notify == "" {
			continue
		}
		notifications = append(notifications, *ParseNotification(item))
	}
	return notifications, nil
}

// Acknowledge dismisses the notification at the given position and returns
// the updated list. Positional addressing keeps records with an empty id
// dismissable. Asuntos acknowledged locally never leave the device. When the
// backend must confirm and does not, the notification stays in the list so
// the user can retry; there is no compensating re-fetch.
func (s *NotificationService) Acknowledge(ctx context.Context, notifications []models.Notification, idx int) ([]models.Notification, error) {
	if idx < 0 || idx >= len(notifications) {
		return notifications, apperrors.Clone(apperrors.ErrNotFound, "notification not found")
	}

	if notifications[idx].RequiresServerConfirmation() {
		id := notifications[idx].ID
		if err := s.repo.MarkAsRead(ctx, id); err != nil {
			s.logger.Warn("notifications: acknowledgement not confirmed", zap.String("id", id), zap.Error(err))
			return notifications, err
		}
	}

	out := make([]models.Notification, 0, len(notifications)-1)
	out = append(out, notifications[:idx]...)
	out = append(out, notifications[idx+1:]...)
	return out, nil
}
