package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// primaryKeyPattern matches the canonical 8-4-4-4-12 hyphenated hex form.
var primaryKeyPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsPrimaryKey reports whether key has the shape of a primary key.
// Anything else is treated as a short key.
func IsPrimaryKey(key string) bool {
	return primaryKeyPattern.MatchString(key)
}

// DefaultShareParam is the query parameter that carries a report key.
const DefaultShareParam = "report"

// ShareURL appends the report key to base as a query parameter, keeping any
// query parameters base already has.
func ShareURL(base, param, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: empty report key", ErrInvalidInput)
	}
	if param == "" {
		param = DefaultShareParam
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse share base url: %w", err)
	}
	q := u.Query()
	q.Set(param, key)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseShareURL extracts a report key from a shared link. A bare key (no scheme
// and no query) is returned as is.
func ParseShareURL(raw, param string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if param == "" {
		param = DefaultShareParam
	}
	if !strings.Contains(raw, "?") && !strings.Contains(raw, "://") {
		return raw, true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	key := u.Query().Get(param)
	return key, key != ""
}
