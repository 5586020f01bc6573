package httperrors

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Public error types, returned as the "type" field of an HTTPError.
const (
	TypeGeneric         = "generic"
	TypeInvalidBody     = "invalid_body"
	TypeNoAccounts      = "no_accounts"
	TypeWalletDestroyed = "wallet_destroyed"
	TypeIndexOutOfRange = "index_out_of_range"
)

// HTTPError is the JSON error body of every failed bridge request that is not
// a provider error.
type HTTPError struct {
	Code     int            `json:"status"`
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Detail   string         `json:"detail,omitempty"`
	Internal error          `json:"-"`
	Data     map[string]any `json:"data,omitempty"`
}

func NewHTTPError(code int, errorType string, title string) *HTTPError {
	return &HTTPError{
		Code:  code,
		Type:  errorType,
		Title: title,
	}
}

func NewHTTPErrorWithDetail(code int, errorType string, title string, detail string) *HTTPError {
	return &HTTPError{
		Code:   code,
		Type:   errorType,
		Title:  title,
		Detail: detail,
	}
}

// NewFromEcho converts an echo error into an HTTPError of the generic type.
func NewFromEcho(e *echo.HTTPError) *HTTPError {
	title := http.StatusText(e.Code)
	if msg, ok := e.Message.(string); ok {
		title = msg
	}

	return &HTTPError{
		Code:     e.Code,
		Type:     TypeGeneric,
		Title:    title,
		Internal: e.Internal,
	}
}

func (e *HTTPError) Error() string {
	var msg string
	if e.Detail != "" {
		msg = fmt.Sprintf("HTTPError %d (%s): %s - %s", e.Code, e.Type, e.Title, e.Detail)
	} else {
		msg = fmt.Sprintf("HTTPError %d (%s): %s", e.Code, e.Type, e.Title)
	}

	if e.Internal != nil {
		msg = fmt.Sprintf("%s, %v", msg, e.Internal)
	}

	return msg
}

func (e *HTTPError) Unwrap() error {
	return e.Internal
}

// WithInternal returns a copy of e carrying err as internal cause.
func (e *HTTPError) WithInternal(err error) *HTTPError {
	out := *e
	out.Internal = err
	return &out
}
