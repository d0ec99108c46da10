package httpx

import (
	"net/http"
	"strconv"
	"strings"
)

// validationErrorPatterns classifies service errors as 400 vs 5xx. This is a
// stopgap until typed validation errors are adopted across services.
var validationErrorPatterns = []string{ //nolint:gochecknoglobals // read-only pattern cache
	"is required and cannot be empty",
	"is required",
	"cannot be empty",
	"cannot exceed",
	"at least one field must be updated",
	"must be a valid URL",
	"must be a valid address",
	"must use http or https scheme",
	"must have a valid host",
	"must be one of:",
	"must be non-negative",
	"must be at least",
}

// parseIntQuery returns the integer value of a query param or a default.
// Missing and malformed values fall back to the default.
func parseIntQuery(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// ParseLimitOffset parses pagination params and clamps them to sane bounds.
func ParseLimitOffset(r *http.Request, defLimit, maxLimit int) (int, int) {
	if maxLimit < 1 {
		maxLimit = 1
	}

	lim := parseIntQuery(r, "limit", defLimit)
	off := parseIntQuery(r, "offset", 0)
	if lim < 1 {
		lim = 1
	}
	if lim > maxLimit {
		lim = maxLimit
	}
	if off < 0 {
		off = 0
	}
	return lim, off
}

func isValidationError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, p := range validationErrorPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
