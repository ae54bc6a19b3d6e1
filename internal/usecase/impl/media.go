package impl

import (
	"context"
	"log/slog"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Media host folders.
const (
	folderAvatars    = "avatars"
	folderCovers     = "covers"
	folderCategories = "categories"
)

// uploadImage sends file to the media host and maps every failure to ErrUploadFailed.
func uploadImage(ctx context.Context, store service.MediaStore, folder string, file *usecase.FileUpload, failure string) (string, error) {
	url, err := store.Upload(ctx, folder, file.Filename, file.Content)
	if err != nil {
		appErr := domainerrors.ErrUploadFailed.WithMessage(failure)
		switch {
		case errors.Is(err, service.ErrMediaNotImage):
			appErr = appErr.WithDetails("file is not an image")
		case errors.Is(err, service.ErrMediaTooLarge):
			appErr = appErr.WithDetails("file is too large")
		case errors.Is(err, service.ErrMediaEmpty):
			appErr = appErr.WithDetails("file is empty")
		}

		return "", errors.Wrap(appErr, err.Error())
	}
	if url == "" {
		return "", errors.Wrap(domainerrors.ErrUploadFailed.WithMessage(failure), "media host returned no url")
	}

	return url, nil
}

// publishAccountEvent emits an account event. Failures are logged and otherwise ignored.
func publishAccountEvent(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, eventType string, account *entity.Account) {
	if publisher == nil {
		return
	}

	event := &service.AccountEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		AccountID:  account.ID.String(),
		Username:   account.Username,
		OccurredAt: account.UpdatedAt.UTC(),
	}
	if account.CategoryID != nil {
		event.CategoryID = account.CategoryID.String()
	}

	if err := publisher.PublishAccountEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish account event",
			slog.String("type", eventType),
			slog.String("account_id", event.AccountID),
			slog.Any("error", err),
		)
	}
}

// mapAccountLookupError converts repository lookups into the public not-found error.
func mapAccountLookupError(err error, msg string) error {
	if errors.Is(err, repository.ErrAccountNotFound) {
		return errors.Wrap(domainerrors.ErrAccountNotFound, msg)
	}

	return errors.Wrap(err, msg)
}

// accountID returns the id of an authenticated account or fails as unauthorized.
func accountID(account *entity.Account) (uuid.UUID, error) {
	if account == nil || account.ID == uuid.Nil {
		return uuid.Nil, errors.Wrap(domainerrors.ErrUnauthorized, "no authenticated account")
	}

	return account.ID, nil
}
