package models

import "strings"

// Circular is one announcement with an optional authorization workflow.
// state "1" means viewed/consulted; type "1" marks circulars that request a
// parental authorization answer in auth (si/no/na, empty while pending).
type Circular struct {
	Number      FlexString `json:"circular"`
	Subject     string     `json:"subject"`
	Description string     `json:"description"`
	State       string     `json:"state"`
	Type        string     `json:"type"`
	Auth        string     `json:"auth"`
	DateSend    string     `json:"date_send"`
}

// IsViewed reports whether the circular was consulted.
func (c Circular) IsViewed() bool {
	return c.State == "1"
}

// IsPending is the complement of IsViewed.
func (c Circular) IsPending() bool {
	return c.State != "1"
}

// RequiresAuth reports whether the circular carries the authorization
// workflow at all.
func (c Circular) RequiresAuth() bool {
	return c.Type == "1"
}

// AuthStatus is the derived authorization display state.
type AuthStatus string

const (
	// AuthNone marks circulars whose type never shows an authorization badge.
	AuthNone          AuthStatus = "none"
	AuthPending       AuthStatus = "pending"
	AuthAuthorized    AuthStatus = "authorized"
	AuthNotAuthorized AuthStatus = "not_authorized"
	AuthNotRequired   AuthStatus = "not_required"
)

// Label returns the Spanish badge text for the status.
func (s AuthStatus) Label() string {
	switch s {
	case AuthAuthorized:
		return "Autorizado"
	case AuthNotAuthorized:
		return "No Autorizado"
	case AuthNotRequired:
		return "No Requiere"
	case AuthPending:
		return "Pendiente Autorización"
	default:
		return ""
	}
}

// Authorization derives the badge state from the raw auth field. Matching is
// case-insensitive and trimmed; anything unknown is treated as pending.
func (c Circular) Authorization() AuthStatus {
	if !c.RequiresAuth() {
		return AuthNone
	}
	switch strings.ToLower(strings.TrimSpace(c.Auth)) {
	case "si":
		return AuthAuthorized
	case "no":
		return AuthNotAuthorized
	case "na":
		return AuthNotRequired
	default:
		return AuthPending
	}
}

// IsPendingNotification implements the home dashboard membership rule. It is
// deliberately narrower than the list screen's Pending tab and must not be
// merged with it.
func (c Circular) IsPendingNotification() bool {
	authTrim := strings.TrimSpace(c.Auth)
	return (c.Type == "2" && c.State == "0") ||
		(c.Type == "1" && c.State == "0") ||
		(c.Type == "1" && c.State == "1" && authTrim == "")
}

// CircularContent is the lazily fetched detail payload of one circular.
// Field keys arrive uppercased. Footer may contain $nombrecompleto and
// $curso placeholders.
type CircularContent struct {
	Subject   string `json:"SUBJECT"`
	DateStart string `json:"DATE_START"`
	DateEnd   string `json:"DATE_END"`
	Body      string `json:"BODY"`
	Footer    string `json:"FOOTER"`
	TypeNot   string `json:"TYPE_NOT"`
}
