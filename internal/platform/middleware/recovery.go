package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Recovery converts handler panics into 500 responses and logs the stack.
func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				buf := make([]byte, 4096)
				n := runtime.Stack(buf, false)

				logger.Error().
					Str("request_id", requestIDFrom(c)).
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", string(buf[:n])).
					Msg("panic recovered")

				err = echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}()
			return next(c)
		}
	}
}

func requestIDFrom(c echo.Context) string {
	rid, _ := c.Get("request_id").(string)
	return rid
}
