package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/api/httperrors"
	"github/chapool/go-mock-wallet/internal/types"
)

// PerformRequest runs a request against the server's echo instance. body is
// JSON encoded unless it is nil.
func PerformRequest(t *testing.T, s *api.Server, method string, path string, body any, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if headers != nil {
		req.Header = headers
	}
	if body != nil && req.Header.Get(echo.HeaderContentType) == "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	res := httptest.NewRecorder()
	s.Echo.ServeHTTP(res, req)

	return res
}

// ParseResponseBody decodes the JSON body of res into v.
func ParseResponseBody(t *testing.T, res *httptest.ResponseRecorder, v any) {
	t.Helper()

	require.NoError(t, json.NewDecoder(res.Result().Body).Decode(v))
}

// RequireHTTPError asserts that res carries the given HTTP error.
func RequireHTTPError(t *testing.T, res *httptest.ResponseRecorder, expected *httperrors.HTTPError) httperrors.HTTPError {
	t.Helper()

	require.Equal(t, expected.Code, res.Result().StatusCode)

	var response httperrors.HTTPError
	ParseResponseBody(t, res, &response)
	require.Equal(t, expected.Type, response.Type)
	require.Equal(t, expected.Title, response.Title)

	return response
}

// RequireBridgeResult asserts a successful provider call and decodes its result into v.
func RequireBridgeResult(t *testing.T, res *httptest.ResponseRecorder, v any) {
	t.Helper()

	require.Equal(t, http.StatusOK, res.Result().StatusCode)

	var response struct {
		Result json.RawMessage    `json:"result"`
		Error  *types.BridgeError `json:"error"`
	}
	ParseResponseBody(t, res, &response)
	require.Nil(t, response.Error, "unexpected provider error")

	if v != nil {
		require.NoError(t, json.Unmarshal(response.Result, v))
	}
}

// RequireBridgeError asserts a rejected provider call carrying code.
func RequireBridgeError(t *testing.T, res *httptest.ResponseRecorder, code int) types.BridgeError {
	t.Helper()

	require.Equal(t, http.StatusOK, res.Result().StatusCode)

	var response types.BridgeErrorResponse
	ParseResponseBody(t, res, &response)
	require.Equal(t, code, response.Error.Code, response.Error.Message)

	return response.Error
}
