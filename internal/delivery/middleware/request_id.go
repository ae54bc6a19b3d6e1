package middleware

import (
	"log/slog"

	deliverycontext "bazaar/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// maxRequestIDLength bounds client supplied ids before they reach the logs.
const maxRequestIDLength = 128

// NewRequestID reuses the caller's X-Request-Id (or generates one), echoes it on the
// response and attaches it, with a logger carrying it, to the request context.
func NewRequestID(logger *slog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		TargetHeader: deliverycontext.HeaderXRequestID,
		Generator:    uuid.NewString,
		RequestIDHandler: func(c echo.Context, requestID string) {
			if len(requestID) > maxRequestIDLength {
				requestID = uuid.NewString()
				c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)
			}

			deliverycontext.SetRequestID(c, requestID)
			ctx := deliverycontext.WithLogger(c.Request().Context(), logger.With(slog.String("request_id", requestID)))
			c.SetRequest(c.Request().WithContext(ctx))
		},
	})
}
