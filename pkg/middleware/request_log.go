package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"nippo/pkg/logger"
	"nippo/pkg/session"
)

// RequestLog tags every request with an id (kept from X-Request-ID when the
// caller sends one) and writes one access line per request.
func RequestLog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, rid)

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []zap.Field{
				zap.String("rid", rid),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("took", time.Since(start)),
			}
			if a, ok := session.Get(c); ok {
				fields = append(fields, zap.Uint("uid", a.UserID))
			}
			logger.L.Info("http.request", fields...)
			return nil
		}
	}
}
