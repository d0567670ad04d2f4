// Package jsondoc validates opaque JSON documents. The strategy fields on a
// trading rule are stored verbatim and interpreted only by the hosted rule
// engine; the one guarantee this service gives the store is that every
// document it persists parses as JSON of the expected top-level kind.
package jsondoc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrInvalidDocument is wrapped by every validation failure so callers can
// classify with errors.Is instead of matching message text.
var ErrInvalidDocument = errors.New("invalid JSON")

// ValidateObject checks that raw is a syntactically valid JSON object.
func ValidateObject(field, raw string) error {
	return validate(field, raw, "object", "{")
}

// ValidateArray checks that raw is a syntactically valid JSON array.
func ValidateArray(field, raw string) error {
	return validate(field, raw, "array", "[")
}

func validate(field, raw, kind, opener string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fmt.Errorf("%s: %w: empty document", field, ErrInvalidDocument)
	}
	if !gjson.Valid(trimmed) {
		return fmt.Errorf("%s: %w", field, ErrInvalidDocument)
	}
	if !strings.HasPrefix(trimmed, opener) {
		return fmt.Errorf("%s: %w: expected a JSON %s", field, ErrInvalidDocument, kind)
	}
	return nil
}
