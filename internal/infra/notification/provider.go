// Package notification provides push notification delivery.
package notification

import (
	"context"
	"log/slog"

	"bazaar/config"
	"bazaar/internal/domain/lifecycle"
	"bazaar/internal/domain/service"

	"go.uber.org/fx"
)

// Params defines dependencies for the notification provider
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// ProvideNotificationService builds the Firebase client when credentials are configured,
// otherwise a no-op service.
func ProvideNotificationService(params Params) (service.NotificationService, error) {
	cfg := params.Config.Firebase
	if cfg == nil || (cfg.ProjectID == "" && cfg.CredentialsPath == "") {
		params.Logger.Info("Push notifications disabled, using no-op notification service")

		return NewNoopNotificationService(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	svc, err := NewFirebaseService(ctx, cfg)
	if err != nil {
		return nil, err
	}

	params.Logger.Info("Firebase notification service initialized", slog.String("project_id", cfg.ProjectID))

	return svc, nil
}
