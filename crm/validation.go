package crm

import (
	"fmt"
	"strings"

	apperrors "github.com/jrsteele09/clientconnect/internal/errors"
)

// RequiredError reports the first required form field left empty.
type RequiredError struct {
	Field   string
	Message string
}

func (e *RequiredError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s is required.", e.Field)
}

func (e *RequiredError) Unwrap() error {
	return apperrors.ErrRequired
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &RequiredError{Field: field}
	}
	return nil
}

func requiredID(field string, id int64) error {
	if id <= 0 {
		return &RequiredError{Field: field}
	}
	return nil
}
