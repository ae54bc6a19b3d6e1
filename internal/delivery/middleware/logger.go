package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"bazaar/config"
	deliverycontext "bazaar/internal/delivery/context"
	domainerrors "bazaar/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const healthPath = "/health"

// AccessLog writes one line per request through the request-scoped logger.
// With env.debug every request is logged; otherwise only failed ones.
type AccessLog struct {
	logger *slog.Logger
	debug  bool
}

// NewAccessLog creates the access log middleware
func NewAccessLog(logger *slog.Logger, cfg *config.Config) *AccessLog {
	return &AccessLog{
		logger: logger,
		debug:  cfg.Env.Debug,
	}
}

// Handle logs the request once the rest of the chain has run
func (m *AccessLog) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		// Errors are answered by the HTTP error handler after the chain returns.
		status := c.Response().Status
		if err != nil && !c.Response().Committed {
			status = statusOf(err)
		}

		if (m.debug && c.Path() != healthPath) || status >= http.StatusBadRequest {
			m.log(c, start, status, err)
		}

		return err
	}
}

func (m *AccessLog) log(c echo.Context, start time.Time, status int, err error) {
	req := c.Request()

	attrs := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.String("route", c.Path()),
		slog.Int("status", status),
		slog.Duration("latency", time.Since(start)),
		slog.Int64("bytes_out", c.Response().Size),
		slog.String("remote_ip", c.RealIP()),
		slog.String("user_agent", req.UserAgent()),
	}
	if account, ok := deliverycontext.GetAccount(c); ok {
		attrs = append(attrs, slog.String("account_id", account.ID.String()))
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}

	level := slog.LevelInfo
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status >= http.StatusBadRequest:
		level = slog.LevelWarn
	}

	deliverycontext.GetLoggerOrDefault(req.Context(), m.logger).LogAttrs(req.Context(), level, "HTTP request", attrs...)
}

func statusOf(err error) int {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPCode()
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}
