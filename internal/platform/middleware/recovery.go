package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sighc/sighc/internal/platform/auth"
	"github.com/sighc/sighc/pkg/records"
)

const msgServerError = "Error en el servidor"

// Recovery turns a handler panic into a 500. Writes get the
// {"success":false,"message"} body the client surfaces; reads get {"message"}.
func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				var stack [4096]byte
				n := runtime.Stack(stack[:], false)

				req := c.Request()
				rid, _ := c.Get("request_id").(string)
				logger.Error().
					Str("request_id", rid).
					Str("method", req.Method).
					Str("path", req.URL.Path).
					Int("user_id", auth.UserIDFromContext(req.Context())).
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", string(stack[:n])).
					Msg("panic recovered")

				if req.Method == http.MethodPost {
					err = echo.NewHTTPError(http.StatusInternalServerError, records.ErrorBody{Success: false, Message: msgServerError})
					return
				}
				err = echo.NewHTTPError(http.StatusInternalServerError, msgServerError)
			}()
			return next(c)
		}
	}
}
