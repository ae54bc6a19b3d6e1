package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// wgs84Bounds is the valid range of [longitude, latitude].
var wgs84Bounds = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// profileService implements the ProfileUsecase interface.
type profileService struct {
	accountRepo      repository.AccountRepository
	categoryRepo     repository.CategoryRepository
	subscriptionRepo repository.SubscriptionRepository
	mediaStore       service.MediaStore
	publisher        service.EventPublisher
	logger           *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	AccountRepo      repository.AccountRepository
	CategoryRepo     repository.CategoryRepository
	SubscriptionRepo repository.SubscriptionRepository
	MediaStore       service.MediaStore
	Publisher        service.EventPublisher `optional:"true"`
	Logger           *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		accountRepo:      params.AccountRepo,
		categoryRepo:     params.CategoryRepo,
		subscriptionRepo: params.SubscriptionRepo,
		mediaStore:       params.MediaStore,
		publisher:        params.Publisher,
		logger:           params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UpdateProfile replaces the business profile of the account.
func (srv *profileService) UpdateProfile(ctx context.Context, account *entity.Account, input *usecase.UpdateProfileInput) (*entity.Account, error) {
	id, err := accountID(account)
	if err != nil {
		return nil, err
	}

	update, err := srv.parseProfileUpdate(ctx, input)
	if err != nil {
		return nil, err
	}

	updated, err := srv.accountRepo.UpdateProfile(ctx, id, update)
	if err != nil {
		return nil, mapAccountLookupError(err, "failed to update profile")
	}

	srv.log(ctx).Info("Profile updated", slog.String("account_id", id.String()))
	publishAccountEvent(ctx, srv.publisher, srv.log(ctx), service.AccountEventProfileUpdated, updated)

	return updated, nil
}

func (srv *profileService) parseProfileUpdate(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.ProfileUpdate, error) {
	update := &entity.ProfileUpdate{
		BusinessName: strings.TrimSpace(input.BusinessName),
		OwnerName:    strings.TrimSpace(input.OwnerName),
		MobileNo:     strings.TrimSpace(input.MobileNo),
		AltMobileNo:  strings.TrimSpace(input.AltMobileNo),
		Address:      strings.TrimSpace(input.Address),
		FCMToken:     strings.TrimSpace(input.FCMToken),
	}
	category := strings.TrimSpace(input.Category)
	if anyBlank(update.BusinessName, update.OwnerName, update.MobileNo, category, update.Address,
		input.Latitude, input.Longitude, update.FCMToken) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "missing profile fields")
	}

	categoryID, err := uuid.Parse(category)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithMessage("Invalid category id"), err.Error())
	}
	if _, err := srv.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCategoryNotFound, "profile category")
		}

		return nil, errors.Wrap(err, "failed to load category")
	}
	update.CategoryID = categoryID

	location, err := parseLocation(input.Latitude, input.Longitude)
	if err != nil {
		return nil, err
	}
	update.Location = location

	return update, nil
}

// parseLocation parses textual coordinates into a WGS84 point.
func parseLocation(latitude, longitude string) (orb.Point, error) {
	invalid := domainerrors.ErrValidationFailed.WithMessage("Invalid latitude or longitude")

	lat, err := strconv.ParseFloat(strings.TrimSpace(latitude), 64)
	if err != nil {
		return orb.Point{}, errors.Wrap(invalid, err.Error())
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(longitude), 64)
	if err != nil {
		return orb.Point{}, errors.Wrap(invalid, err.Error())
	}

	point := orb.Point{lng, lat}
	if !wgs84Bounds.Contains(point) {
		return orb.Point{}, errors.Wrapf(invalid, "point %v outside WGS84 bounds", point)
	}

	return point, nil
}

// UpdateAvatar uploads a new avatar and stores its URL. The previous image is kept on the host.
func (srv *profileService) UpdateAvatar(ctx context.Context, account *entity.Account, avatar *usecase.FileUpload) (*entity.Account, error) {
	id, err := accountID(account)
	if err != nil {
		return nil, err
	}
	if avatar == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithMessage("Avatar file is missing"), "missing avatar")
	}

	url, err := uploadImage(ctx, srv.mediaStore, folderAvatars, avatar, "Error while uploading avatar")
	if err != nil {
		return nil, err
	}

	updated, err := srv.accountRepo.UpdateAvatar(ctx, id, url)
	if err != nil {
		return nil, mapAccountLookupError(err, "failed to update avatar")
	}

	return updated, nil
}

// UpdateCoverImage uploads a new cover image and stores its URL.
func (srv *profileService) UpdateCoverImage(ctx context.Context, account *entity.Account, coverImage *usecase.FileUpload) (*entity.Account, error) {
	id, err := accountID(account)
	if err != nil {
		return nil, err
	}
	if coverImage == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithMessage("Cover image file is missing"), "missing cover image")
	}

	url, err := uploadImage(ctx, srv.mediaStore, folderCovers, coverImage, "Error while uploading cover image")
	if err != nil {
		return nil, err
	}

	updated, err := srv.accountRepo.UpdateCoverImage(ctx, id, url)
	if err != nil {
		return nil, mapAccountLookupError(err, "failed to update cover image")
	}

	return updated, nil
}

// GetPublicProfile returns the channel view of username with its subscription counts.
func (srv *profileService) GetPublicProfile(ctx context.Context, username string, viewer *entity.Account) (*entity.ChannelProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithMessage("Username is missing"), "empty username")
	}

	account, err := srv.accountRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(domainerrors.ErrChannelNotFound, username)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load channel")
	}

	viewerID := uuid.Nil
	if viewer != nil {
		viewerID = viewer.ID
	}

	stats, err := srv.subscriptionRepo.ChannelStats(ctx, account.ID, viewerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute channel stats")
	}

	return entity.NewChannelProfile(account, stats), nil
}
