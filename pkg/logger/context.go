package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ctxKey struct{}

// echoLoggerKey is the echo.Context key request middleware stores its logger under
const echoLoggerKey = "logger"

// WithContext returns a copy of ctx carrying l
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger carried by ctx. Without one it returns
// fallback, and the global logger when fallback is nil too.
func FromContext(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	if fallback != nil {
		return fallback
	}
	return GetLogger()
}

// SetEcho scopes l to the current echo request, for both echo handlers and
// anything receiving the request's context.
func SetEcho(c echo.Context, l *zap.Logger) {
	c.Set(echoLoggerKey, l)
	req := c.Request()
	c.SetRequest(req.WithContext(WithContext(req.Context(), l)))
}

// FromEcho retrieves the request logger set by SetEcho
func FromEcho(c echo.Context) *zap.Logger {
	if l, ok := c.Get(echoLoggerKey).(*zap.Logger); ok {
		return l
	}
	return FromContext(c.Request().Context(), nil)
}
