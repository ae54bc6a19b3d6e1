package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_HealthCheck(t *testing.T) {
	tests := []struct {
		name     string
		db       Pinger
		expected int
	}{
		{name: "no database", expected: http.StatusOK},
		{name: "database up", db: pingerFunc(func(context.Context) error { return nil }), expected: http.StatusOK},
		{name: "database down", db: pingerFunc(func(context.Context) error { return errors.New("refused") }), expected: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(HealthHandlerParams{DB: tt.db})
			rec := httptest.NewRecorder()

			require.NoError(t, h.HealthCheck(newTestEcho().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)))
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}
