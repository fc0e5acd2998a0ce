package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"finance-tracker/internal/errors"
	"finance-tracker/internal/handlers"

	"github.com/labstack/echo/v4"
)

// PanicRecovery turns a handler panic into a SYSTEM_001 response.
// The stack is logged only when logStack is set.
func PanicRecovery(logStack bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				attrs := []any{
					"trace_id", GetTraceID(c),
					"panic", fmt.Sprintf("%v", r),
					"path", c.Request().URL.Path,
					"method", c.Request().Method,
				}
				if logStack {
					attrs = append(attrs, "stack_trace", string(debug.Stack()))
				}
				slog.Error("Panic recovered", attrs...)

				if c.Response().Committed {
					return
				}
				err = handlers.SendError(c, errors.SystemInternalError)
			}()

			return next(c)
		}
	}
}
