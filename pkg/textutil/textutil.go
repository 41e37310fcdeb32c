// Package textutil carries the text transformations the portal applies to
// backend payloads before display: capitalization, plaintext-to-HTML
// promotion, photo data-URI normalization and the legacy base64 helpers.
package textutil

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	htmlTagRe        = regexp.MustCompile(`(?i)<[a-z][\s\S]*>`)
	borderCollapseRe = regexp.MustCompile(`(?i)border-collapse\s*:\s*collapse\s*;?`)
)

// ToCapitalCase lowercases the text and uppercases the first letter of each
// word.
func ToCapitalCase(text string) string {
	if text == "" {
		return ""
	}
	words := strings.Split(strings.ToLower(text), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

// CapitalizeFirst uppercases only the first letter.
func CapitalizeFirst(text string) string {
	if text == "" {
		return ""
	}
	r := []rune(text)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// TextToHTML promotes plaintext to minimal HTML: unquotes escaped quotes,
// strips the border-collapse style the renderer cannot handle, turns
// newlines into <br> and wraps tag-less text in a paragraph.
func TextToHTML(text string) string {
	if text == "" {
		return "<p>Sin descripción</p>"
	}
	html := normalizeEscapes(text)
	html = strings.ReplaceAll(html, "\n", "<br>")
	if !htmlTagRe.MatchString(html) {
		html = "<p>" + html + "</p>"
	}
	return html
}

// CircularHTML is the circular-body variant of TextToHTML: newlines are
// removed instead of becoming <br>, matching how circular bodies are
// authored upstream.
func CircularHTML(text string) string {
	if text == "" {
		return "<p>Sin contenido</p>"
	}
	html := normalizeEscapes(text)
	html = strings.ReplaceAll(html, "\n", "")
	if !htmlTagRe.MatchString(html) {
		html = "<p>" + html + "</p>"
	}
	return html
}

func normalizeEscapes(text string) string {
	html := strings.ReplaceAll(text, `\"`, `"`)
	html = strings.ReplaceAll(html, `\'`, `'`)
	return borderCollapseRe.ReplaceAllString(html, "")
}

// PhotoDataURI normalizes a profile photo to a displayable data URI. The
// backend sends either raw base64 or an already prefixed data URI.
func PhotoDataURI(foto string) string {
	if foto == "" {
		return ""
	}
	if strings.HasPrefix(foto, "data:image") {
		return foto
	}
	return "data:image/jpeg;base64," + foto
}

// EncodeBase64 encodes a string the way the legacy login endpoint expects.
// Base64 is an encoding, not a security control; it is kept only for wire
// compatibility with the PHP backend.
func EncodeBase64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// FormatDate renders a backend date string in long Spanish form
// ("2 de marzo de 2024, 08:15"). Unparseable input is returned verbatim.
func FormatDate(raw string) string {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		s := fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
		if t.Hour() != 0 || t.Minute() != 0 {
			s += fmt.Sprintf(", %02d:%02d", t.Hour(), t.Minute())
		}
		return s
	}
	return raw
}
