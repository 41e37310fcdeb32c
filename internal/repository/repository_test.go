package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrrodriguezc83/caa/internal/models"
	apperrors "github.com/rrrodriguezc83/caa/pkg/errors"
)

type fakePoster struct {
	env     *models.Envelope
	err     error
	url     string
	params  map[string]string
	cleared bool
}

func (f *fakePoster) Post(_ context.Context, url string, params map[string]string) (*models.Envelope, error) {
	f.url = url
	f.params = params
	return f.env, f.err
}

func (f *fakePoster) ClearSession() {
	f.cleared = true
}

func envelope(code int, response string) *models.Envelope {
	return &models.Envelope{Code: code, Response: json.RawMessage(response)}
}

func TestAuthRepositoryLogin(t *testing.T) {
	fake := &fakePoster{env: envelope(200, `{"perfil":"ACUDIENTE","nombre":"GARCIA ANA","tipo_usuario":"1"}`)}
	repo := NewAuthRepository(fake, "https://backend/controller/cont.php", nil)

	payload, err := repo.Login(context.Background(), "acudiente01", "secreto", "1")
	require.NoError(t, err)
	assert.Equal(t, "ACUDIENTE", payload.Perfil)

	assert.Equal(t, "https://backend/controller/cont.php", fake.url)
	assert.Equal(t, "comunidad", fake.params["base"])
	assert.Equal(t, "login", fake.params["param"])
	// Credentials travel base64-encoded.
	assert.Equal(t, "YWN1ZGllbnRlMDE=", fake.params["user"])
	assert.Equal(t, "c2VjcmV0bw==", fake.params["pass"])
	assert.Equal(t, "1", fake.params["type_session"])
}

func TestAuthRepositoryLoginEmptyResponse(t *testing.T) {
	fake := &fakePoster{env: envelope(200, `[false]`)}
	repo := NewAuthRepository(fake, "u", nil)

	payload, err := repo.Login(context.Background(), "a", "b", "1")
	require.NoError(t, err)
	assert.Empty(t, payload.Perfil)
}

func TestAuthRepositoryLogoutClearsSessionEvenOnFailure(t *testing.T) {
	fake := &fakePoster{err: errors.New("network down")}
	repo := NewAuthRepository(fake, "u", nil)

	err := repo.Logout(context.Background())
	require.Error(t, err)
	assert.True(t, fake.cleared)

	fake = &fakePoster{env: envelope(200, `[false]`)}
	repo = NewAuthRepository(fake, "u", nil)
	require.NoError(t, repo.Logout(context.Background()))
	assert.True(t, fake.cleared)
	assert.Equal(t, "ZmFsc2U=", fake.params["user"])
	assert.Equal(t, "false", fake.params["type_session"])
}

func TestUserRepositoryGetInfoTakesFirstElement(t *testing.T) {
	fake := &fakePoster{env: envelope(200, `[{"ID":7,"NOMBRE":"GARCIA ANA","CURSO":"5A"},{"ID":8}]`)}
	repo := NewUserRepository(fake, "u")

	user, err := repo.GetInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "7", user.ID.String())
	assert.Equal(t, "5A", user.Curso)
	assert.Equal(t, "caa", fake.params["base"])
	assert.Equal(t, "getInfo", fake.params["param"])
}

func TestUserRepositoryGetInfoEmpty(t *testing.T) {
	fake := &fakePoster{env: envelope(200, `[false]`)}
	repo := NewUserRepository(fake, "u")

	_, err := repo.GetInfo(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestUserRepositoryGetMain(t *testing.T) {
	fake := &fakePoster{env: envelope(200, `[{"id":1,"module":"Agenda"},{"id":2,"module":"Circulares"}]`)}
	repo := NewUserRepository(fake, "u")

	modules, err := repo.GetMain(context.Background())
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, "r", fake.params["base"])
	assert.Equal(t, "getMain", fake.params["param"])
}

func TestStudentRepositoryWireShape(t *testing.T) {
	fake := &fakePoster{env: envelope(200, `{"id_course":12,"course":"5A"}`)}
	repo := NewStudentRepository(fake, "u")

	info, err := repo.GetInfoStudent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "12", info.IDCourse.String())

	fake.env = envelope(200, `{"04":{"07":{"id_work":"1"}}}`)
	works, err := repo.GetListWorks(context.Background(), "12")
	require.NoError(t, err)
	assert.Len(t, works.ForDate("2026-04-07"), 1)
	assert.Equal(t, "12", fake.params["course"])
	assert.NotContains(t, fake.params, "id_course")

	fake.env = envelope(200, `[false]`)
	reminders, err := repo.GetListReminders(context.Background(), "12")
	require.NoError(t, err)
	assert.NotNil(t, reminders)
	assert.Empty(t, reminders.ForDate("2026-04-07"))
	assert.Equal(t, "12", fake.params["course"])

	fake.env = envelope(200, `{"4":{"month":4,"data_days":{}}}`)
	_, err = repo.GetCalendar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "false", fake.params["mod_check"])

	fake.env = envelope(200, `{"04":{"07":{"date_check":"x"}}}`)
	checked, err := repo.GetCheckDays(context.Background())
	require.NoError(t, err)
	assert.True(t, checked.IsChecked("2026-04-07"))
	assert.Equal(t, "false", fake.params["id_student"])
}

func TestStudentRepositoryBackendCode(t *testing.T) {
	fake := &fakePoster{env: envelope(500, `null`)}
	repo := NewStudentRepository(fake, "u")

	_, err := repo.GetInfoStudent(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrBackendCode))
}

func TestCircularRepositoryGetNotices(t *testing.T) {
	fake := &fakePoster{env: envelope(200, `{"keys":["a"],"n1":{"circular":"17","subject":"Salida"}}`)}
	repo := NewCircularRepository(fake, "u")

	raw, err := repo.GetNotices(context.Background())
	require.NoError(t, err)
	assert.Len(t, raw, 2)
	assert.Equal(t, "comunidad", fake.params["base"])
	assert.Equal(t, "false", fake.params["surveys"])
}

func TestCircularRepositoryGetNoticeContentEncodesNumber(t *testing.T) {
	fake := &fakePoster{env: envelope(200, `{"SUBJECT":"Salida","BODY":"b"}`)}
	repo := NewCircularRepository(fake, "u")

	content, err := repo.GetNoticeContent(context.Background(), "17")
	require.NoError(t, err)
	assert.Equal(t, "Salida", content.Subject)
	assert.Equal(t, "MTc=", fake.params["notice"])
}

func TestCircularRepositorySendConsult(t *testing.T) {
	fake := &fakePoster{env: envelope(200, `[true]`)}
	repo := NewCircularRepository(fake, "u")

	require.NoError(t, repo.SendConsult(context.Background(), "17"))
	assert.Equal(t, "17", fake.params["num_notice"])
	assert.Equal(t, "sendConsult", fake.params["param"])
}

func TestNotificationRepositoryMarkAsReadSentinels(t *testing.T) {
	fake := &fakePoster{env: envelope(200, `[true]`)}
	repo := NewNotificationRepository(fake, "main", "comms")

	require.NoError(t, repo.MarkAsRead(context.Background(), "42"))
	assert.Equal(t, "comms", fake.url)
	assert.Equal(t, "submit_nivel_satisfactorio", fake.params["param"])
	assert.Equal(t, "42", fake.params["codigo"])
	assert.Equal(t, "0", fake.params["nivel"])
	assert.Equal(t, "null", fake.params["coment"])
}

func TestNotificationRepositoryGetNotifications(t *testing.T) {
	fake := &fakePoster{env: envelope(200, `[{"notify":"1/Tema: a/Mensaje b/Respuesta: c/1/","type":"Message"}]`)}
	repo := NewNotificationRepository(fake, "main", "comms")

	items, err := repo.GetNotifications(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "main", fake.url)
	assert.Equal(t, "getNotifys", fake.params["param"])

	fake.env = envelope(200, `[false]`)
	items, err = repo.GetNotifications(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNursingRepositoryGetReports(t *testing.T) {
	fake := &fakePoster{env: envelope(200, `[{"reason":"Fiebre","date":"2026-04-07","enfermera":"P. Ruiz"}]`)}
	repo := NewNursingRepository(fake, "u")

	reports, err := repo.GetReports(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Fiebre", reports[0].Reason)
	assert.Equal(t, "getReportAtt", fake.params["param"])
}
