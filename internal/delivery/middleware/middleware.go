// Package middleware contains the echo middleware of the message server.
package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the HTTP header carrying the request ID.
const HeaderXRequestID = "X-Request-Id"

// RequestID takes the request ID from the X-Request-Id header or generates
// one, and echoes it back on the response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			c.Set(HeaderXRequestID, requestID)
			c.Response().Header().Set(HeaderXRequestID, requestID)

			return next(c)
		}
	}
}

// RequestLogger logs one line per handled request. Client errors log as
// warnings, server errors as errors.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			requestID, _ := c.Get(HeaderXRequestID).(string)
			attrs := []any{
				slog.String("request_id", requestID),
				slog.String("method", c.Request().Method),
				slog.String("uri", c.Request().URL.Path),
				slog.Int("status", c.Response().Status),
				slog.Duration("latency", time.Since(start)),
				slog.String("remote_ip", c.RealIP()),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}

			switch status := c.Response().Status; {
			case status >= 500:
				logger.Error("http request", attrs...)
			case status >= 400:
				logger.Warn("http request", attrs...)
			default:
				logger.Info("http request", attrs...)
			}

			return err
		}
	}
}
