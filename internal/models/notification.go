package models

// NotificationItem is the raw wrapper the backend puts in the getNotifys
// list: the encoded notify string plus a type tag.
type NotificationItem struct {
	Notify string `json:"notify"`
	Type   string `json:"type"`
}

// Notification is the decoded form of the slash-delimited notify string.
// Type and RawNotify come from the wrapping list item, not from the string
// itself.
type Notification struct {
	ID         string
	Tema       string
	Mensaje    string
	Respuesta  string
	Asunto     string
	Respuesta2 string
	Type       string
	RawNotify  string
}

// RequiresServerConfirmation reports whether acknowledging this notification
// must round-trip to the backend. Asuntos "2" and "6" are acknowledged
// locally only.
func (n Notification) RequiresServerConfirmation() bool {
	return n.Asunto != "2" && n.Asunto != "6"
}

// DisplayRaw reports whether the UI bypasses the structured fields and shows
// the raw notify text verbatim.
func (n Notification) DisplayRaw() bool {
	return n.Type == "Notice" || n.Type == "Diagnostic"
}

// DisplayText returns the text shown in raw display mode. Diagnostic items
// carry a fixed label prefix.
func (n Notification) DisplayText() string {
	raw := n.RawNotify
	if raw == "" {
		raw = "Sin contenido disponible"
	}
	if n.Type == "Diagnostic" {
		return "Diagnóstica el día: " + raw
	}
	return raw
}
