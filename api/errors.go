package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/clientconnect/crm"
	apperrors "github.com/jrsteele09/clientconnect/internal/errors"
	"github.com/tidwall/gjson"
)

type Kind int

const (
	// KindStatus is a non-2xx response from the API.
	KindStatus Kind = iota
	// KindTransport means no response arrived: connection refused, timeout, cancelled context.
	KindTransport
	// KindDecode is a 2xx response whose body could not be read.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindStatus:
		return "status"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is any failed API call. StatusCode and Body are only set for KindStatus and KindDecode.
type Error struct {
	Kind       Kind
	Method     string
	Path       string
	StatusCode int
	// Detail is the server's human readable "detail" message, if it sent one.
	Detail string
	Body   []byte
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Detail != "" {
			return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Detail)
		}
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s %s: %s error", e.Method, e.Path, e.Kind)
	}
}

func (e *Error) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	if e.StatusCode == http.StatusNotFound {
		return apperrors.ErrNotFound
	}
	return nil
}

func newStatusError(method, path string, status int, body []byte) *Error {
	return &Error{
		Kind:       KindStatus,
		Method:     method,
		Path:       path,
		StatusCode: status,
		Detail:     detailOf(body),
		Body:       body,
	}
}

// detailOf reads the "detail" member of an error body. Validation errors carry
// a list of {"msg": ...} objects, which are joined.
func detailOf(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String:
		return strings.TrimSpace(detail.String())
	case detail.IsArray():
		var msgs []string
		for _, item := range detail.Array() {
			msg := item.Get("msg")
			if !msg.Exists() && item.Type == gjson.String {
				msg = item
			}
			if s := strings.TrimSpace(msg.String()); s != "" {
				msgs = append(msgs, s)
			}
		}
		return strings.Join(msgs, "; ")
	case detail.IsObject():
		return strings.TrimSpace(detail.Get("msg").String())
	}
	return ""
}

// Message is the text shown to the user for err: the server's detail when it
// sent one, a form validation message, otherwise fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if apperrors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	var reqErr *crm.RequiredError
	if apperrors.As(err, &reqErr) {
		return reqErr.Error()
	}
	return fallback
}

// StatusCode returns the HTTP status of a failed call, or 0 when no response arrived.
func StatusCode(err error) int {
	var apiErr *Error
	if apperrors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}
