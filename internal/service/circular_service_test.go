package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrrodriguezc83/caa/internal/models"
)

type fakeCircularRepo struct {
	notices    map[string]json.RawMessage
	noticesErr error
	content    *models.CircularContent
	contentErr error
	consultErr error

	consulted      string
	contentFetched string
}

func (f *fakeCircularRepo) GetNotices(context.Context) (map[string]json.RawMessage, error) {
	return f.notices, f.noticesErr
}

func (f *fakeCircularRepo) GetNoticeContent(_ context.Context, number string) (*models.CircularContent, error) {
	f.contentFetched = number
	return f.content, f.contentErr
}

func (f *fakeCircularRepo) SendConsult(_ context.Context, number string) error {
	f.consulted = number
	return f.consultErr
}

type fakeProfileReader struct {
	user *models.User
	err  error
}

func (f *fakeProfileReader) GetInfo(context.Context) (*models.User, error) {
	return f.user, f.err
}

func TestCircularList(t *testing.T) {
	repo := &fakeCircularRepo{notices: map[string]json.RawMessage{
		"keys": json.RawMessage(`["n1","n2"]`),
		"n2":   json.RawMessage(`{"circular":"18","subject":"Bazar"}`),
		"n1":   json.RawMessage(`{"circular":17,"subject":"Salida"}`),
		"n3":   json.RawMessage(`"not a circular"`),
	}}
	svc := NewCircularService(repo, &fakeProfileReader{}, nil)

	circulars, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, circulars, 2)
	// Key order, so repeated loads agree.
	assert.Equal(t, "17", circulars[0].Number.String())
	assert.Equal(t, "18", circulars[1].Number.String())
}

func TestCircularFilterTabs(t *testing.T) {
	circulars := []models.Circular{
		{Number: "1", State: "1", Type: "1", Auth: "si"},
		{Number: "2", State: "1", Type: "1", Auth: "no"},
		{Number: "3", State: "0", Type: "1", Auth: ""},
		{Number: "4", State: "1", Type: "2"},
	}
	svc := NewCircularService(&fakeCircularRepo{}, &fakeProfileReader{}, nil)

	assert.Len(t, svc.Filter(circulars, FilterAll), 4)
	assert.Len(t, svc.Filter(circulars, FilterViewed), 3)
	assert.Len(t, svc.Filter(circulars, FilterPending), 1)

	authorized := svc.Filter(circulars, FilterAuthorized)
	require.Len(t, authorized, 1)
	assert.Equal(t, "1", authorized[0].Number.String())

	notAuthorized := svc.Filter(circulars, FilterNotAuthorized)
	require.Len(t, notAuthorized, 1)
	assert.Equal(t, "2", notAuthorized[0].Number.String())
}

func TestCircularPendingNotifications(t *testing.T) {
	circulars := []models.Circular{
		{Number: "1", Type: "2", State: "0"},           // unread informative
		{Number: "2", Type: "1", State: "0"},           // unread authorization
		{Number: "3", Type: "1", State: "1", Auth: ""}, // read, answer pending
		{Number: "4", Type: "1", State: "1", Auth: "si"},
		{Number: "5", Type: "2", State: "1"},
	}
	svc := NewCircularService(&fakeCircularRepo{}, &fakeProfileReader{}, nil)

	pending := svc.PendingNotifications(circulars)
	require.Len(t, pending, 3)
	assert.Equal(t, "1", pending[0].Number.String())
	assert.Equal(t, "2", pending[1].Number.String())
	assert.Equal(t, "3", pending[2].Number.String())
}

func TestOpenDetailSubstitutesFooterPlaceholders(t *testing.T) {
	repo := &fakeCircularRepo{content: &models.CircularContent{
		Subject: "Salida pedagógica",
		Body:    "linea 1\nlinea 2",
		Footer:  "Autorizo a $nombrecompleto del curso $curso.",
	}}
	users := &fakeProfileReader{user: &models.User{Nombre: "GARCIA ANA", Curso: "5A"}}
	svc := NewCircularService(repo, users, nil)

	detail, err := svc.OpenDetail(context.Background(), models.Circular{Number: "17", Type: "1"})
	require.NoError(t, err)
	assert.Equal(t, "17", repo.consulted)
	assert.Equal(t, "17", repo.contentFetched)
	assert.Equal(t, "Autorizo a GARCIA ANA del curso 5A.", detail.Footer)
	assert.Equal(t, "<p>linea 1linea 2</p>", detail.BodyHTML)
	assert.Equal(t, models.AuthPending, detail.Auth)
}

func TestOpenDetailDefaultFooterForAuthCirculars(t *testing.T) {
	repo := &fakeCircularRepo{content: &models.CircularContent{Body: "b"}}
	users := &fakeProfileReader{user: &models.User{Nombre: "GARCIA ANA", Curso: "5A"}}
	svc := NewCircularService(repo, users, nil)

	detail, err := svc.OpenDetail(context.Background(), models.Circular{Number: "17", Type: "1"})
	require.NoError(t, err)
	assert.Equal(t, "Nosotros los padres del estudiante GARCIA ANA del curso 5A, estamos enterados de la circular.", detail.Footer)

	// Informative circulars get no default footer.
	detail, err = svc.OpenDetail(context.Background(), models.Circular{Number: "18", Type: "2"})
	require.NoError(t, err)
	assert.Empty(t, detail.Footer)
}

func TestOpenDetailWithoutProfileKeepsPlaceholders(t *testing.T) {
	repo := &fakeCircularRepo{content: &models.CircularContent{Footer: "Firma: $nombrecompleto"}}
	users := &fakeProfileReader{err: errors.New("session lost")}
	svc := NewCircularService(repo, users, nil)

	detail, err := svc.OpenDetail(context.Background(), models.Circular{Number: "17"})
	require.NoError(t, err)
	assert.Equal(t, "Firma: $nombrecompleto", detail.Footer)
}

func TestOpenDetailToleratesConsultFailure(t *testing.T) {
	repo := &fakeCircularRepo{
		consultErr: errors.New("timeout"),
		content:    &models.CircularContent{Subject: "Salida"},
	}
	svc := NewCircularService(repo, &fakeProfileReader{user: &models.User{}}, nil)

	detail, err := svc.OpenDetail(context.Background(), models.Circular{Number: "17"})
	require.NoError(t, err)
	assert.Equal(t, "Salida", detail.Subject)
}

func TestOpenDetailContentFailure(t *testing.T) {
	repo := &fakeCircularRepo{contentErr: errors.New("boom")}
	svc := NewCircularService(repo, &fakeProfileReader{}, nil)

	_, err := svc.OpenDetail(context.Background(), models.Circular{Number: "17"})
	assert.Error(t, err)
}
