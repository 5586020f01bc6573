package util

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api/httperrors"
)

// Validatable is implemented by request and response payloads.
type Validatable interface {
	Validate() error
}

// BindAndValidateBody binds the JSON request body into v and validates it.
func BindAndValidateBody(c echo.Context, v Validatable) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
		LogFromContext(c.Request().Context()).Debug().Err(err).Msg("Failed to bind request body")
		return httperrors.ErrBadRequestInvalidBody.WithInternal(err)
	}

	if err := v.Validate(); err != nil {
		LogFromContext(c.Request().Context()).Debug().Err(err).Msg("Request body is invalid")
		return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, httperrors.TypeInvalidBody, "The request body is invalid.", err.Error())
	}

	return nil
}

// ValidateAndReturn validates v and writes it as JSON with code.
func ValidateAndReturn(c echo.Context, code int, v Validatable) error {
	if err := v.Validate(); err != nil {
		LogFromContext(c.Request().Context()).Error().Err(err).Msg("Response payload is invalid")
		return err
	}

	return c.JSON(code, v)
}
