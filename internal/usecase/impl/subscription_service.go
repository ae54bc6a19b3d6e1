package impl

import (
	"context"
	"strings"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type subscriptionService struct {
	accountRepo      repository.AccountRepository
	subscriptionRepo repository.SubscriptionRepository
	qrcodeService    service.QRCodeService
}

// SubscriptionServiceParams holds dependencies for SubscriptionService, injected by Fx.
type SubscriptionServiceParams struct {
	fx.In

	AccountRepo      repository.AccountRepository
	SubscriptionRepo repository.SubscriptionRepository
	QRCodeService    service.QRCodeService
}

// NewSubscriptionService creates a new subscription service instance
func NewSubscriptionService(params SubscriptionServiceParams) usecase.SubscriptionUsecase {
	return &subscriptionService{
		accountRepo:      params.AccountRepo,
		subscriptionRepo: params.SubscriptionRepo,
		qrcodeService:    params.QRCodeService,
	}
}

// Subscribe creates the subscriber -> channel edge
func (s *subscriptionService) Subscribe(ctx context.Context, subscriber *entity.Account, username string) (*entity.Subscription, error) {
	subscriberID, err := accountID(subscriber)
	if err != nil {
		return nil, err
	}

	channel, err := s.findChannel(ctx, username)
	if err != nil {
		return nil, err
	}
	if channel.ID == subscriberID {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithMessage("You cannot subscribe to yourself"), "self subscription")
	}

	subscription := &entity.Subscription{
		SubscriberID: subscriberID,
		ChannelID:    channel.ID,
	}
	if err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
		if errors.Is(err, repository.ErrDuplicateSubscription) {
			return nil, errors.Wrap(domainerrors.ErrAlreadySubscribed, channel.Username)
		}

		return nil, errors.Wrap(err, "failed to create subscription")
	}

	return subscription, nil
}

// Unsubscribe removes the edge; unsubscribing twice is not an error
func (s *subscriptionService) Unsubscribe(ctx context.Context, subscriber *entity.Account, username string) error {
	subscriberID, err := accountID(subscriber)
	if err != nil {
		return err
	}

	channel, err := s.findChannel(ctx, username)
	if err != nil {
		return err
	}

	return errors.Wrap(s.subscriptionRepo.Delete(ctx, subscriberID, channel.ID), "failed to delete subscription")
}

// GenerateProfileQR renders a QR code for an existing channel
func (s *subscriptionService) GenerateProfileQR(ctx context.Context, username string) ([]byte, error) {
	channel, err := s.findChannel(ctx, username)
	if err != nil {
		return nil, err
	}

	png, err := s.qrcodeService.GenerateProfileQR(channel.Username)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInternalError, err.Error())
	}

	return png, nil
}

func (s *subscriptionService) findChannel(ctx context.Context, username string) (*entity.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithMessage("Username is missing"), "empty username")
	}

	channel, err := s.accountRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(domainerrors.ErrChannelNotFound, username)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load channel")
	}

	return channel, nil
}
