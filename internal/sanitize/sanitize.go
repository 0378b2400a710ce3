// Package sanitize normalizes free-text input before it reaches storage.
package sanitize

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/vpetrenko/todo-service/internal/models"
)

// Title length bounds, measured after sanitization.
const (
	TitleMinLen = 1
	TitleMaxLen = 200
)

// Clean trims surrounding whitespace and HTML-escapes reserved characters.
// Input is unescaped first so the function is idempotent: cleaning an
// already-clean string never double-escapes entities. Entities may decode
// to edge whitespace, so the trim runs again after unescaping.
func Clean(s string) string {
	return html.EscapeString(strings.TrimSpace(html.UnescapeString(strings.TrimSpace(s))))
}

// Title sanitizes a task title and enforces the length bounds, counted
// in characters, not bytes.
func Title(raw string) (string, error) {
	title := Clean(raw)
	if length := utf8.RuneCountInString(title); length < TitleMinLen || length > TitleMaxLen {
		return "", models.NewValidationError("title",
			fmt.Sprintf("Title must be between %d and %d characters", TitleMinLen, TitleMaxLen))
	}
	return title, nil
}

// Description sanitizes an optional task description. maxLen of 0 means
// unbounded, which matches the historical behavior of this API.
func Description(raw *string, maxLen int) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	desc := Clean(*raw)
	if maxLen > 0 && utf8.RuneCountInString(desc) > maxLen {
		return nil, models.NewValidationError("description",
			fmt.Sprintf("Description must be at most %d characters", maxLen))
	}
	return &desc, nil
}
