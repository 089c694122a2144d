package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestTimeout bounds each request with a context deadline. When the
// deadline expires before the handler finishes, the client receives a 504
// and the handler's context is canceled. Handlers needing more time can
// derive their own context.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
					// Client disconnect or upstream cancellation.
					return ctx.Err()
				}
				if c.Response().Committed {
					return nil
				}
				return c.JSON(http.StatusGatewayTimeout, map[string]string{
					"error": "request processing exceeded the allowed time limit",
				})
			}
		}
	}
}
