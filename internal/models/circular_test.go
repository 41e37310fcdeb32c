package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCircularAuthorization(t *testing.T) {
	cases := []struct {
		name string
		typ  string
		auth string
		want AuthStatus
	}{
		{"informative circular never shows a badge", "2", "si", AuthNone},
		{"authorized", "1", "si", AuthAuthorized},
		{"authorized uppercase", "1", "SI", AuthAuthorized},
		{"not authorized padded", "1", " no ", AuthNotAuthorized},
		{"not required", "1", "na", AuthNotRequired},
		{"empty means pending", "1", "", AuthPending},
		{"unknown value means pending", "1", "tal vez", AuthPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Circular{Type: tc.typ, Auth: tc.auth}
			assert.Equal(t, tc.want, c.Authorization())
		})
	}
}

func TestAuthStatusLabel(t *testing.T) {
	assert.Equal(t, "Autorizado", AuthAuthorized.Label())
	assert.Equal(t, "No Autorizado", AuthNotAuthorized.Label())
	assert.Equal(t, "No Requiere", AuthNotRequired.Label())
	assert.Equal(t, "Pendiente Autorización", AuthPending.Label())
	assert.Equal(t, "", AuthNone.Label())
}

func TestCircularIsPendingNotification(t *testing.T) {
	cases := []struct {
		name  string
		typ   string
		state string
		auth  string
		want  bool
	}{
		{"unread informative", "2", "0", "", true},
		{"unread authorization", "1", "0", "", true},
		{"read but unanswered authorization", "1", "1", "", true},
		{"read authorization with whitespace answer", "1", "1", "  ", true},
		{"answered authorization", "1", "1", "si", false},
		{"read informative", "2", "1", "", false},
		{"plain circular", "0", "0", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Circular{Type: tc.typ, State: tc.state, Auth: tc.auth}
			assert.Equal(t, tc.want, c.IsPendingNotification())
		})
	}
}

func TestCircularViewed(t *testing.T) {
	assert.True(t, Circular{State: "1"}.IsViewed())
	assert.True(t, Circular{State: "0"}.IsPending())
	assert.True(t, Circular{State: ""}.IsPending())
}
