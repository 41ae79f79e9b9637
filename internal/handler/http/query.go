package http

import (
	"net/http"
	"strconv"
)

// optionalQuery returns nil for an absent or empty query parameter.
func optionalQuery(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// intQuery parses a numeric query parameter, falling back to 0 so the DTO default applies.
func intQuery(r *http.Request, key string) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
