// Package response writes the unified JSON envelope returned by every endpoint.
package response

import (
	"net/http"

	domainerrors "bazaar/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any, message string) error {
	if data == nil {
		data = struct{}{}
	}

	return c.JSON(statusCode, SuccessResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details ...string) error {
	// Details are only exposed for client errors other than authentication/authorization
	if statusCode >= http.StatusInternalServerError || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = nil
	}

	errs := make([]string, 0, len(details))
	for _, detail := range details {
		if detail != "" {
			errs = append(errs, detail)
		}
	}

	return c.JSON(statusCode, ErrorResponse{
		StatusCode: statusCode,
		Code:       errorCode,
		Message:    message,
		Success:    false,
		Errors:     errs,
	})
}

// Unauthorized returns a 401 error
func Unauthorized(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusUnauthorized, errorCode, message)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message)
}

// HandleAppError writes client-facing application errors. Anything else, and every 5xx,
// is returned for the central error handler to log and answer.
func HandleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < http.StatusInternalServerError {
		return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
