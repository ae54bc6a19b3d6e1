// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"bazaar/config"
	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager          repository.TransactionManager
	accountRepo        repository.AccountRepository
	hasher             service.PasswordHasher
	tokenService       service.TokenService
	mediaStore         service.MediaStore
	notifier           service.NotificationService
	publisher          service.EventPublisher
	hideUnknownAccount bool
	logger             *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	MediaStore   service.MediaStore
	Notifier     service.NotificationService `optional:"true"`
	Publisher    service.EventPublisher      `optional:"true"`
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	hideUnknownAccount := false
	if params.Config != nil && params.Config.Auth != nil {
		hideUnknownAccount = params.Config.Auth.HideUnknownAccount
	}

	return &accountService{
		txManager:          params.TxManager,
		accountRepo:        params.AccountRepo,
		hasher:             params.Hasher,
		tokenService:       params.TokenService,
		mediaStore:         params.MediaStore,
		notifier:           params.Notifier,
		publisher:          params.Publisher,
		hideUnknownAccount: hideUnknownAccount,
		logger:             params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the input, uploads the images, hashes the password and creates the account.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.Account, error) {
	account := &entity.Account{
		Username:     strings.ToLower(strings.TrimSpace(input.Username)),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		FullName:     strings.TrimSpace(input.FullName),
		MobileNo:     strings.TrimSpace(input.MobileNo),
		AltMobileNo:  strings.TrimSpace(input.AltMobileNo),
		BusinessName: strings.TrimSpace(input.BusinessName),
	}
	if anyBlank(account.FullName, account.Email, account.Username, input.Password, account.MobileNo) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "missing registration fields")
	}

	// Fail fast before uploading anything; the transaction below repeats the check.
	if err := srv.ensureUnique(ctx, srv.accountRepo, account); err != nil {
		return nil, err
	}

	if input.Avatar == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithMessage("Avatar file is required"), "missing avatar")
	}

	avatarURL, err := uploadImage(ctx, srv.mediaStore, folderAvatars, input.Avatar, "Error while uploading avatar")
	if err != nil {
		return nil, err
	}
	account.Avatar = avatarURL

	if input.CoverImage != nil {
		coverURL, err := uploadImage(ctx, srv.mediaStore, folderCovers, input.CoverImage, "Error while uploading cover image")
		if err != nil {
			srv.log(ctx).Warn("Cover image upload failed, continuing without it", slog.String("username", account.Username), slog.Any("error", err))
		} else {
			account.CoverImage = coverURL
		}
	}

	account.PasswordHash, err = srv.hasher.Hash(ctx, input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		if err := srv.ensureUnique(ctx, accountRepo, account); err != nil {
			return err
		}

		return errors.Wrap(accountRepo.Create(ctx, account), "failed to create account")
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", account.Username), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Vendor registered", slog.String("account_id", account.ID.String()), slog.String("username", account.Username))
	publishAccountEvent(ctx, srv.publisher, srv.log(ctx), service.AccountEventRegistered, account)

	return account.Sanitized(), nil
}

func (srv *accountService) ensureUnique(ctx context.Context, accountRepo repository.AccountRepository, account *entity.Account) error {
	_, err := accountRepo.FindByEmailOrMobile(ctx, account.Email, account.MobileNo)
	switch {
	case err == nil:
		return errors.Wrap(domainerrors.ErrAccountAlreadyExists, "email or mobile number taken")
	case errors.Is(err, repository.ErrAccountNotFound):
		return nil
	default:
		return errors.Wrap(err, "failed to check existing account")
	}
}

// Login verifies the credentials and starts a new session, replacing any previous one.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	mobileNo := strings.TrimSpace(input.MobileNo)
	if email == "" && mobileNo == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithMessage("mobileNo or email is required"), "missing identifier")
	}
	if input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithMessage("Password is required"), "missing password")
	}

	account, err := srv.accountRepo.FindByEmailOrMobile(ctx, email, mobileNo)
	if errors.Is(err, repository.ErrAccountNotFound) {
		srv.log(ctx).Warn("Login for unknown account", slog.String("email", email), slog.String("mobile_no", mobileNo))
		if srv.hideUnknownAccount {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "unknown account")
		}

		return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "unknown account")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load account for login")
	}

	if !srv.hasher.Check(ctx, input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("account_id", account.ID.String()), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	tokens, err := srv.issueTokens(account)
	if err != nil {
		return nil, err
	}

	if err := srv.accountRepo.SetRefreshToken(ctx, account.ID, tokens.RefreshToken); err != nil {
		return nil, mapAccountLookupError(err, "failed to store refresh token")
	}

	srv.log(ctx).Debug("Vendor logged in", slog.String("account_id", account.ID.String()))

	return &usecase.LoginOutput{
		Account:   account.Sanitized(),
		TokenPair: *tokens,
	}, nil
}

// Logout drops the stored refresh token. Logging out twice is fine.
func (srv *accountService) Logout(ctx context.Context, account *entity.Account) error {
	id, err := accountID(account)
	if err != nil {
		return err
	}

	if err := srv.accountRepo.ClearRefreshToken(ctx, id); err != nil {
		return errors.Wrap(err, "failed to clear refresh token")
	}

	srv.log(ctx).Debug("Vendor logged out", slog.String("account_id", id.String()))

	return nil
}

// RefreshAccessToken exchanges the current refresh token for a new pair. The swap is
// conditional on the stored token, so of two concurrent refreshes only one wins.
func (srv *accountService) RefreshAccessToken(ctx context.Context, refreshToken string) (*usecase.TokenPair, error) {
	if refreshToken == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "missing refresh token")
	}

	claims, err := srv.tokenService.Verify(refreshToken, service.TokenKindRefresh)
	if err != nil {
		srv.log(ctx).Warn("Refresh token rejected", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, err.Error())
	}

	id, err := claims.AccountID()
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, err.Error())
	}

	account, err := srv.accountRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "account no longer exists")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load account for refresh")
	}

	if account.RefreshToken == nil || *account.RefreshToken != refreshToken {
		srv.log(ctx).Warn("Superseded refresh token presented", slog.String("account_id", id.String()))

		return nil, errors.Wrap(domainerrors.ErrRefreshTokenReused, "refresh token does not match stored token")
	}

	tokens, err := srv.issueTokens(account)
	if err != nil {
		return nil, err
	}

	err = srv.accountRepo.RotateRefreshToken(ctx, id, refreshToken, tokens.RefreshToken)
	if errors.Is(err, repository.ErrRefreshTokenMismatch) {
		srv.log(ctx).Warn("Concurrent refresh lost the rotation", slog.String("account_id", id.String()))

		return nil, errors.Wrap(domainerrors.ErrRefreshTokenReused, "refresh token rotated concurrently")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to rotate refresh token")
	}

	return tokens, nil
}

// ChangePassword verifies the old password and stores the digest of the new one.
// The current refresh token stays valid.
func (srv *accountService) ChangePassword(ctx context.Context, current *entity.Account, input *usecase.ChangePasswordInput) error {
	id, err := accountID(current)
	if err != nil {
		return err
	}
	if input.OldPassword == "" || input.NewPassword == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "old and new password are required")
	}

	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		return mapAccountLookupError(err, "failed to load account for password change")
	}

	if !srv.hasher.Check(ctx, input.OldPassword, account.PasswordHash) {
		return errors.Wrap(domainerrors.ErrInvalidOldPassword, "old password mismatch")
	}

	digest, err := srv.hasher.Hash(ctx, input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash new password", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	if err := srv.accountRepo.UpdatePasswordHash(ctx, id, digest); err != nil {
		return mapAccountLookupError(err, "failed to update password")
	}

	srv.log(ctx).Info("Password changed", slog.String("account_id", id.String()))
	srv.notifyPasswordChanged(ctx, account)

	return nil
}

func (srv *accountService) notifyPasswordChanged(ctx context.Context, account *entity.Account) {
	if srv.notifier == nil || account.FCMToken == "" {
		return
	}

	err := srv.notifier.Send(ctx, &service.PushMessage{
		Token: account.FCMToken,
		Title: "Password changed",
		Body:  "The password of your vendor account was changed. If this wasn't you, contact support.",
		Data:  map[string]string{"type": "password_changed", "account_id": account.ID.String()},
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to send password change notification", slog.String("account_id", account.ID.String()), slog.Any("error", err))
	}
}

func (srv *accountService) issueTokens(account *entity.Account) (*usecase.TokenPair, error) {
	accessToken, err := srv.tokenService.IssueAccessToken(service.AccessClaims{
		AccountID: account.ID,
		Email:     account.Email,
		MobileNo:  account.MobileNo,
	})
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenGenerationFailed, err.Error())
	}

	refreshToken, err := srv.tokenService.IssueRefreshToken(account.ID)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenGenerationFailed, err.Error())
	}

	return &usecase.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func anyBlank(values ...string) bool {
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			return true
		}
	}

	return false
}
