package echoapi

import (
	"time"

	"github.com/labstack/echo/v4"
)

// pendingMiddleware holds the request for `delay` before handling it.
// The wait is cosmetic and not cancelled with the request.
func pendingMiddleware(delay time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if delay > 0 {
				time.Sleep(delay)
			}
			return next(ctx)
		}
	}
}
