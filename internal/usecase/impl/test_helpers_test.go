package impl

import (
	"io"
	"log/slog"
	"strings"

	"bazaar/config"
	"bazaar/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(hideUnknownAccount bool) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:         4,
			HideUnknownAccount: hideUnknownAccount,
		},
	}
}

func newUpload(name string) *usecase.FileUpload {
	return &usecase.FileUpload{
		Filename:    name,
		ContentType: "image/png",
		Size:        4,
		Content:     strings.NewReader("\x89PNG"),
	}
}

func subject(id uuid.UUID) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{Subject: id.String()}
}
