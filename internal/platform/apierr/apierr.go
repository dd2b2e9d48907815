// Package apierr maps domain and database errors onto the records API error
// bodies: reads fail with 500 {"message"} and writes with
// 400 {"success":false,"message"}.
package apierr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"

	"github.com/sighc/sighc/pkg/records"
)

// ValidationError reports a request that is missing or carries a malformed
// field. Its message is shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid returns a ValidationError for field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Message returns the text a caller should see for err. Errors raised by the
// database carry their own message, which is returned without the wrapping
// added on the way up.
func Message(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}

// Read converts a failed read into a 500 response.
func Read(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusInternalServerError, Message(err))
}

// Write converts a failed write into a 400 response with the write body shape.
func Write(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, records.ErrorBody{Success: false, Message: Message(err)})
}

// BadBody is returned when a write body cannot be decoded.
func BadBody(err error) *echo.HTTPError {
	return Write(Invalid("body", "Solicitud inválida: "+err.Error()))
}
