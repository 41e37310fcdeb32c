package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/rrrodriguezc83/caa/internal/models"
	"github.com/rrrodriguezc83/caa/pkg/textutil"
)

type circularRepository interface {
	GetNotices(ctx context.Context) (map[string]json.RawMessage, error)
	GetNoticeContent(ctx context.Context, number string) (*models.CircularContent, error)
	SendConsult(ctx context.Context, number string) error
}

type profileReader interface {
	GetInfo(ctx context.Context) (*models.User, error)
}

// CircularService lists circulars, derives their authorization badges and
// assembles the detail view.
type CircularService struct {
	repo   circularRepository
	users  profileReader
	logger *zap.Logger
}

func NewCircularService(repo circularRepository, users profileReader, logger *zap.Logger) *CircularService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CircularService{repo: repo, users: users, logger: logger}
}

// FilterTab selects which circulars the list screen shows.
type FilterTab string

const (
	FilterAll           FilterTab = "all"
	FilterViewed        FilterTab = "viewed"
	FilterPending       FilterTab = "pending"
	FilterAuthorized    FilterTab = "authorized"
	FilterNotAuthorized FilterTab = "not_authorized"
)

// List fetches and decodes the circular map. The backend interleaves a
// bookkeeping "keys" entry with the circulars; it is dropped here. Entries
// that do not decode as circulars are skipped with a log line rather than
// failing the whole list. Order is by backend key so repeated loads agree.
func (s *CircularService) List(ctx context.Context) ([]models.Circular, error) {
	raw, err := s.repo.GetNotices(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		if key == "keys" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	circulars := make([]models.Circular, 0, len(keys))
	for _, key := range keys {
		var c models.Circular
		if err := json.Unmarshal(raw[key], &c); err != nil {
			s.logger.Warn("circulars: undecodable entry skipped", zap.String("key", key), zap.Error(err))
			continue
		}
		circulars = append(circulars, c)
	}
	return circulars, nil
}

// Filter projects the list onto one tab.
func (s *CircularService) Filter(circulars []models.Circular, tab FilterTab) []models.Circular {
	out := []models.Circular{}
	for _, c := range circulars {
		switch tab {
		case FilterViewed:
			if !c.IsViewed() {
				continue
			}
		case FilterPending:
			if !c.IsPending() {
				continue
			}
		case FilterAuthorized:
			if c.Authorization() != models.AuthAuthorized {
				continue
			}
		case FilterNotAuthorized:
			if c.Authorization() != models.AuthNotAuthorized {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// PendingNotifications selects the circulars the home dashboard counts as
// pending. The rule differs from the list screen's Pending tab on purpose.
func (s *CircularService) PendingNotifications(circulars []models.Circular) []models.Circular {
	out := []models.Circular{}
	for _, c := range circulars {
		if c.IsPendingNotification() {
			out = append(out, c)
		}
	}
	return out
}

// CircularDetail is the assembled detail view of one circular.
type CircularDetail struct {
	Number    string
	Subject   string
	BodyHTML  string
	Footer    string
	DateStart string
	DateEnd   string
	TypeNot   string
	Auth      models.AuthStatus
}

const defaultAuthFooter = "Nosotros los padres del estudiante $nombrecompleto del curso $curso, estamos enterados de la circular."

// OpenDetail fetches the full circular and reports the consultation. The
// read receipt and the profile lookup are both best effort: a failed
// receipt is logged and the detail still opens, and without profile data
// the footer placeholders stay verbatim.
func (s *CircularService) OpenDetail(ctx context.Context, circular models.Circular) (*CircularDetail, error) {
	number := circular.Number.String()

	if err := s.repo.SendConsult(ctx, number); err != nil {
		s.logger.Warn("circulars: consultation receipt failed", zap.String("circular", number), zap.Error(err))
	}

	content, err := s.repo.GetNoticeContent(ctx, number)
	if err != nil {
		return nil, err
	}

	footer := strings.TrimSpace(content.Footer)
	if footer == "" && circular.RequiresAuth() {
		footer = defaultAuthFooter
	}
	if footer != "" {
		if user, err := s.users.GetInfo(ctx); err != nil {
			s.logger.Warn("circulars: profile unavailable for footer", zap.Error(err))
		} else {
			footer = strings.ReplaceAll(footer, "$nombrecompleto", user.Nombre)
			footer = strings.ReplaceAll(footer, "$curso", user.Curso)
		}
	}

	return &CircularDetail{
		Number:    number,
		Subject:   content.Subject,
		BodyHTML:  textutil.CircularHTML(content.Body),
		Footer:    footer,
		DateStart: content.DateStart,
		DateEnd:   content.DateEnd,
		TypeNot:   content.TypeNot,
		Auth:      circular.Authorization(),
	}, nil
}
