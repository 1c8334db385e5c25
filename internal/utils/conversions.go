package utils

import (
	"strconv"
	"strings"

	apperrors "github.com/jrsteele09/clientconnect/internal/errors"
)

// ParseID parses a positive numeric path or form identifier.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Wrapf(apperrors.ErrInvalidID, "parse %q", s)
	}
	return id, nil
}

// OptionalID returns nil for an empty or invalid identifier.
func OptionalID(s string) *int64 {
	id, err := ParseID(s)
	if err != nil {
		return nil
	}
	return &id
}
