package models

import (
	"strings"
	"time"
)

// User is the session profile returned by getInfo. Field keys arrive
// uppercased from the legacy backend. Read-only; fetched once per session.
type User struct {
	ID             FlexString `json:"ID"`
	Nombre         string     `json:"NOMBRE"`
	Perfil         string     `json:"PERFIL"`
	TipoUsuario    string     `json:"TIPO_USUARIO"`
	Curso          string     `json:"CURSO"`
	Grado          string     `json:"GRADO"`
	Foto           string     `json:"FOTO"`
	UltimaFechaIng string     `json:"ULTIMA_FECHA_ING"`
}

// Initials returns the two-letter avatar fallback.
func (u User) Initials() string {
	name := strings.TrimSpace(u.Nombre)
	if name == "" {
		return "US"
	}
	r := []rune(name)
	if len(r) < 2 {
		return strings.ToUpper(string(r))
	}
	return strings.ToUpper(string(r[:2]))
}

// FirstName returns the greeting name. Legacy names arrive as
// "APELLIDO1 APELLIDO2 NOMBRE ..." so the third token is the given name;
// anything shorter falls back to the generic greeting.
func (u User) FirstName() string {
	parts := strings.Fields(u.Nombre)
	if len(parts) < 3 {
		return "Usuario"
	}
	return parts[2]
}

// StudentCourseInfo identifies which course's assignments and reminders to
// fetch. Immutable for the session's lifetime.
type StudentCourseInfo struct {
	IDCourse FlexString `json:"id_course"`
	Course   string     `json:"course"`
}

// LoginPayload is the subset of the login response the client inspects. An
// empty perfil means the backend rejected the credentials.
type LoginPayload struct {
	Perfil      string `json:"perfil"`
	Nombre      string `json:"nombre"`
	TipoUsuario string `json:"tipo_usuario"`
}

// Module is one entry of the getMain navigation module list.
type Module struct {
	ID     FlexString `json:"id"`
	Module string     `json:"module"`
}

// StoredCredentials is the only record persisted on disk, and only inside
// the encrypted credential store backing biometric login.
type StoredCredentials struct {
	Username  string    `json:"username" validate:"required"`
	Password  string    `json:"password" validate:"required"`
	Profile   string    `json:"profile"`
	Timestamp time.Time `json:"timestamp"`
}
