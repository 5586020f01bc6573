package httperrors

import (
	"net/http"
)

var (
	ErrBadRequestInvalidBody     = NewHTTPError(http.StatusBadRequest, TypeInvalidBody, "The request body is invalid.")
	ErrNotFoundNoEVMAccounts     = NewHTTPError(http.StatusNotFound, TypeNoAccounts, "The wallet has no EVM accounts.")
	ErrNotFoundNoSolanaAccounts  = NewHTTPError(http.StatusNotFound, TypeNoAccounts, "The wallet has no Solana accounts.")
	ErrGoneWalletDestroyed       = NewHTTPError(http.StatusGone, TypeWalletDestroyed, "The wallet has been destroyed.")
	ErrBadRequestIndexOutOfRange = NewHTTPError(http.StatusBadRequest, TypeIndexOutOfRange, "The account index is out of range.")
)
