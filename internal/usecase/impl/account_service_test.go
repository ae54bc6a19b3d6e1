package impl

import (
	"context"
	"strings"
	"testing"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/infra/auth"
	mockRepo "bazaar/internal/mocks/repository"
	mockSvc "bazaar/internal/mocks/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service      usecase.AccountUsecase
	txManager    *mockRepo.MockTransactionManager
	factory      *mockRepo.MockRepositoryFactory
	accountRepo  *mockRepo.MockAccountRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	mediaStore   *mockSvc.MockMediaStore
	notifier     *mockSvc.MockNotificationService
	publisher    *mockSvc.MockEventPublisher
}

func createTestAccountService(t *testing.T, hideUnknownAccount bool) accountServiceFixtures {
	f := accountServiceFixtures{
		txManager:    mockRepo.NewMockTransactionManager(t),
		factory:      mockRepo.NewMockRepositoryFactory(t),
		accountRepo:  mockRepo.NewMockAccountRepository(t),
		hasher:       mockSvc.NewMockPasswordHasher(t),
		tokenService: mockSvc.NewMockTokenService(t),
		mediaStore:   mockSvc.NewMockMediaStore(t),
		notifier:     mockSvc.NewMockNotificationService(t),
		publisher:    mockSvc.NewMockEventPublisher(t),
	}

	f.service = NewAccountService(AccountServiceParams{
		TxManager:    f.txManager,
		AccountRepo:  f.accountRepo,
		Hasher:       f.hasher,
		TokenService: f.tokenService,
		MediaStore:   f.mediaStore,
		Notifier:     f.notifier,
		Publisher:    f.publisher,
		Config:       newTestConfig(hideUnknownAccount),
		Logger:       newDiscardLogger(),
	})

	return f
}

// withHasher rebuilds the service around a real password hasher.
func (f *accountServiceFixtures) withHasher(hasher service.PasswordHasher) {
	f.service = NewAccountService(AccountServiceParams{
		TxManager:    f.txManager,
		AccountRepo:  f.accountRepo,
		Hasher:       hasher,
		TokenService: f.tokenService,
		MediaStore:   f.mediaStore,
		Notifier:     f.notifier,
		Publisher:    f.publisher,
		Config:       newTestConfig(false),
		Logger:       newDiscardLogger(),
	})
}

func validRegisterInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Username:     "  Chai_Point ",
		Email:        "Owner@Example.com",
		FullName:     "Chai Point",
		Password:     "s3cret-pass",
		MobileNo:     "9876543210",
		BusinessName: "Chai Point",
		Avatar:       newUpload("avatar.png"),
	}
}

func storedAccount(passwordHash string) *entity.Account {
	refreshToken := "stored-refresh"

	return &entity.Account{
		ID:           uuid.New(),
		Username:     "chai_point",
		Email:        "owner@example.com",
		MobileNo:     "9876543210",
		PasswordHash: passwordHash,
		RefreshToken: &refreshToken,
		Avatar:       "https://cdn.example.com/avatars/a.png",
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	f := createTestAccountService(t, false)
	ctx := context.Background()
	input := validRegisterInput()
	input.CoverImage = newUpload("cover.png")

	f.accountRepo.On("FindByEmailOrMobile", ctx, "owner@example.com", "9876543210").
		Return(nil, repository.ErrAccountNotFound).Twice()
	f.mediaStore.On("Upload", ctx, "avatars", "avatar.png", mock.Anything).
		Return("https://cdn.example.com/avatars/a.png", nil)
	f.mediaStore.On("Upload", ctx, "covers", "cover.png", mock.Anything).
		Return("https://cdn.example.com/covers/c.png", nil)
	f.hasher.On("Hash", ctx, "s3cret-pass").Return("hashed_password", nil)
	f.txManager.PassThrough(f.factory)
	f.factory.On("AccountRepo").Return(f.accountRepo)
	f.accountRepo.On("Create", ctx, mock.MatchedBy(func(a *entity.Account) bool {
		return a.Username == "chai_point" && a.Email == "owner@example.com" && a.PasswordHash == "hashed_password"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Account).ID = uuid.New()
	}).Return(nil)
	f.publisher.On("PublishAccountEvent", ctx, mock.MatchedBy(func(e *service.AccountEvent) bool {
		return e.Type == service.AccountEventRegistered && e.Username == "chai_point"
	})).Return(nil)

	account, err := f.service.Register(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.Equal(t, "chai_point", account.Username)
	assert.Equal(t, "https://cdn.example.com/avatars/a.png", account.Avatar)
	assert.Equal(t, "https://cdn.example.com/covers/c.png", account.CoverImage)
	assert.Empty(t, account.PasswordHash, "password digest must not leave the service")
	assert.Nil(t, account.RefreshToken)
}

func TestAccountService_Register_MissingFields(t *testing.T) {
	f := createTestAccountService(t, false)

	for _, mutate := range []func(*usecase.RegisterInput){
		func(in *usecase.RegisterInput) { in.Username = "   " },
		func(in *usecase.RegisterInput) { in.Email = "" },
		func(in *usecase.RegisterInput) { in.FullName = "" },
		func(in *usecase.RegisterInput) { in.Password = " " },
		func(in *usecase.RegisterInput) { in.MobileNo = "" },
	} {
		input := validRegisterInput()
		mutate(input)

		_, err := f.service.Register(context.Background(), input)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	}
}

func TestAccountService_Register_Conflict(t *testing.T) {
	f := createTestAccountService(t, false)
	ctx := context.Background()

	f.accountRepo.On("FindByEmailOrMobile", ctx, "owner@example.com", "9876543210").
		Return(storedAccount("x"), nil)

	_, err := f.service.Register(ctx, validRegisterInput())
	assert.ErrorIs(t, err, domainerrors.ErrAccountAlreadyExists)
}

func TestAccountService_Register_ConflictInsideTransaction(t *testing.T) {
	f := createTestAccountService(t, false)
	ctx := context.Background()

	f.accountRepo.On("FindByEmailOrMobile", ctx, "owner@example.com", "9876543210").
		Return(nil, repository.ErrAccountNotFound).Once()
	f.mediaStore.On("Upload", ctx, "avatars", "avatar.png", mock.Anything).Return("https://cdn/a.png", nil)
	f.hasher.On("Hash", ctx, "s3cret-pass").Return("hashed_password", nil)
	f.txManager.PassThrough(f.factory)
	f.factory.On("AccountRepo").Return(f.accountRepo)
	// A concurrent registration won between the pre-check and the transaction.
	f.accountRepo.On("FindByEmailOrMobile", ctx, "owner@example.com", "9876543210").
		Return(storedAccount("x"), nil).Once()

	_, err := f.service.Register(ctx, validRegisterInput())
	assert.ErrorIs(t, err, domainerrors.ErrAccountAlreadyExists)
}

func TestAccountService_Register_AvatarRequired(t *testing.T) {
	f := createTestAccountService(t, false)
	ctx := context.Background()
	input := validRegisterInput()
	input.Avatar = nil

	f.accountRepo.On("FindByEmailOrMobile", ctx, "owner@example.com", "9876543210").
		Return(nil, repository.ErrAccountNotFound)

	_, err := f.service.Register(ctx, input)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Equal(t, "Avatar file is required", appErr.Message())
}

func TestAccountService_Register_AvatarUploadFails(t *testing.T) {
	f := createTestAccountService(t, false)
	ctx := context.Background()

	f.accountRepo.On("FindByEmailOrMobile", ctx, "owner@example.com", "9876543210").
		Return(nil, repository.ErrAccountNotFound)
	f.mediaStore.On("Upload", ctx, "avatars", "avatar.png", mock.Anything).
		Return("", service.ErrMediaNotImage)

	_, err := f.service.Register(ctx, validRegisterInput())
	assert.ErrorIs(t, err, domainerrors.ErrUploadFailed)
}

func TestAccountService_Register_CoverUploadFailureIsIgnored(t *testing.T) {
	f := createTestAccountService(t, false)
	ctx := context.Background()
	input := validRegisterInput()
	input.CoverImage = newUpload("cover.txt")

	f.accountRepo.On("FindByEmailOrMobile", ctx, mock.Anything, mock.Anything).Return(nil, repository.ErrAccountNotFound)
	f.mediaStore.On("Upload", ctx, "avatars", "avatar.png", mock.Anything).Return("https://cdn/a.png", nil)
	f.mediaStore.On("Upload", ctx, "covers", "cover.txt", mock.Anything).Return("", service.ErrMediaNotImage)
	f.hasher.On("Hash", ctx, "s3cret-pass").Return("hashed_password", nil)
	f.txManager.PassThrough(f.factory)
	f.factory.On("AccountRepo").Return(f.accountRepo)
	f.accountRepo.On("Create", ctx, mock.Anything).Return(nil)
	f.publisher.On("PublishAccountEvent", ctx, mock.Anything).Return(errors.New("broker down"))

	account, err := f.service.Register(ctx, input)
	require.NoError(t, err)
	assert.Empty(t, account.CoverImage)
}

func TestAccountService_Login_Success(t *testing.T) {
	f := createTestAccountService(t, false)
	ctx := context.Background()
	account := storedAccount("digest")

	f.accountRepo.On("FindByEmailOrMobile", ctx, "owner@example.com", "").Return(account, nil)
	f.hasher.On("Check", ctx, "s3cret-pass", "digest").Return(true)
	f.tokenService.On("IssueAccessToken", service.AccessClaims{
		AccountID: account.ID, Email: account.Email, MobileNo: account.MobileNo,
	}).Return("access-1", nil)
	f.tokenService.On("IssueRefreshToken", account.ID).Return("refresh-1", nil)
	f.accountRepo.On("SetRefreshToken", ctx, account.ID, "refresh-1").Return(nil)

	output, err := f.service.Login(ctx, &usecase.LoginInput{Email: " Owner@example.com", Password: "s3cret-pass"})

	require.NoError(t, err)
	assert.Equal(t, "access-1", output.AccessToken)
	assert.Equal(t, "refresh-1", output.RefreshToken)
	assert.Empty(t, output.Account.PasswordHash)
	assert.Nil(t, output.Account.RefreshToken)
}

func TestAccountService_Login_Validation(t *testing.T) {
	f := createTestAccountService(t, false)

	_, err := f.service.Login(context.Background(), &usecase.LoginInput{Password: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = f.service.Login(context.Background(), &usecase.LoginInput{MobileNo: "1"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAccountService_Login_UnknownAccount(t *testing.T) {
	tests := []struct {
		name     string
		hide     bool
		expected error
	}{
		{name: "reveals missing account", hide: false, expected: domainerrors.ErrAccountNotFound},
		{name: "hides missing account", hide: true, expected: domainerrors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTestAccountService(t, tt.hide)
			ctx := context.Background()

			f.accountRepo.On("FindByEmailOrMobile", ctx, "", "123").Return(nil, repository.ErrAccountNotFound)

			_, err := f.service.Login(ctx, &usecase.LoginInput{MobileNo: "123", Password: "x"})
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	f := createTestAccountService(t, false)
	ctx := context.Background()
	account := storedAccount("digest")

	f.accountRepo.On("FindByEmailOrMobile", ctx, "owner@example.com", "").Return(account, nil)
	f.hasher.On("Check", ctx, "wrong", "digest").Return(false)

	_, err := f.service.Login(ctx, &usecase.LoginInput{Email: "owner@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_Logout(t *testing.T) {
	f := createTestAccountService(t, false)
	ctx := context.Background()
	account := storedAccount("digest")

	f.accountRepo.On("ClearRefreshToken", ctx, account.ID).Return(nil).Twice()

	require.NoError(t, f.service.Logout(ctx, account.Sanitized()))
	require.NoError(t, f.service.Logout(ctx, account.Sanitized()))

	assert.ErrorIs(t, f.service.Logout(ctx, nil), domainerrors.ErrUnauthorized)
}

func TestAccountService_RefreshAccessToken_Success(t *testing.T) {
	f := createTestAccountService(t, false)
	ctx := context.Background()
	account := storedAccount("digest")

	f.tokenService.On("Verify", "stored-refresh", service.TokenKindRefresh).
		Return(&service.Claims{Type: service.TokenKindRefresh, RegisteredClaims: subject(account.ID)}, nil)
	f.accountRepo.On("FindByID", ctx, account.ID).Return(account, nil)
	f.tokenService.On("IssueAccessToken", mock.Anything).Return("access-2", nil)
	f.tokenService.On("IssueRefreshToken", account.ID).Return("refresh-2", nil)
	f.accountRepo.On("RotateRefreshToken", ctx, account.ID, "stored-refresh", "refresh-2").Return(nil)

	tokens, err := f.service.RefreshAccessToken(ctx, "stored-refresh")

	require.NoError(t, err)
	assert.Equal(t, &usecase.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}, tokens)
}

func TestAccountService_RefreshAccessToken_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("missing token", func(t *testing.T) {
		f := createTestAccountService(t, false)

		_, err := f.service.RefreshAccessToken(ctx, "")
		assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	})

	t.Run("invalid token", func(t *testing.T) {
		f := createTestAccountService(t, false)
		f.tokenService.On("Verify", "access-token", service.TokenKindRefresh).Return(nil, service.ErrTokenSignatureInvalid)

		_, err := f.service.RefreshAccessToken(ctx, "access-token")
		assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
	})

	t.Run("deleted account", func(t *testing.T) {
		f := createTestAccountService(t, false)
		id := uuid.New()
		f.tokenService.On("Verify", "t", service.TokenKindRefresh).Return(&service.Claims{RegisteredClaims: subject(id)}, nil)
		f.accountRepo.On("FindByID", ctx, id).Return(nil, repository.ErrAccountNotFound)

		_, err := f.service.RefreshAccessToken(ctx, "t")
		assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
	})

	t.Run("superseded token", func(t *testing.T) {
		f := createTestAccountService(t, false)
		account := storedAccount("digest")
		f.tokenService.On("Verify", "old-refresh", service.TokenKindRefresh).Return(&service.Claims{RegisteredClaims: subject(account.ID)}, nil)
		f.accountRepo.On("FindByID", ctx, account.ID).Return(account, nil)

		_, err := f.service.RefreshAccessToken(ctx, "old-refresh")
		assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenReused)
	})

	t.Run("logged out", func(t *testing.T) {
		f := createTestAccountService(t, false)
		account := storedAccount("digest")
		account.RefreshToken = nil
		f.tokenService.On("Verify", "stored-refresh", service.TokenKindRefresh).Return(&service.Claims{RegisteredClaims: subject(account.ID)}, nil)
		f.accountRepo.On("FindByID", ctx, account.ID).Return(account, nil)

		_, err := f.service.RefreshAccessToken(ctx, "stored-refresh")
		assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenReused)
	})

	t.Run("lost concurrent rotation", func(t *testing.T) {
		f := createTestAccountService(t, false)
		account := storedAccount("digest")
		f.tokenService.On("Verify", "stored-refresh", service.TokenKindRefresh).Return(&service.Claims{RegisteredClaims: subject(account.ID)}, nil)
		f.accountRepo.On("FindByID", ctx, account.ID).Return(account, nil)
		f.tokenService.On("IssueAccessToken", mock.Anything).Return("access-2", nil)
		f.tokenService.On("IssueRefreshToken", account.ID).Return("refresh-2", nil)
		f.accountRepo.On("RotateRefreshToken", ctx, account.ID, "stored-refresh", "refresh-2").Return(repository.ErrRefreshTokenMismatch)

		_, err := f.service.RefreshAccessToken(ctx, "stored-refresh")
		assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenReused)
	})
}

func TestAccountService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success notifies device", func(t *testing.T) {
		f := createTestAccountService(t, false)
		account := storedAccount("old-digest")
		account.FCMToken = "device-token"

		f.accountRepo.On("FindByID", ctx, account.ID).Return(account, nil)
		f.hasher.On("Check", ctx, "old", "old-digest").Return(true)
		f.hasher.On("Hash", ctx, "new").Return("new-digest", nil)
		f.accountRepo.On("UpdatePasswordHash", ctx, account.ID, "new-digest").Return(nil)
		f.notifier.On("Send", ctx, mock.MatchedBy(func(msg *service.PushMessage) bool {
			return msg.Token == "device-token" && msg.Title == "Password changed" && msg.Data["type"] == "password_changed"
		})).Return(errors.New("fcm unavailable"))

		err := f.service.ChangePassword(ctx, account.Sanitized(), &usecase.ChangePasswordInput{OldPassword: "old", NewPassword: "new"})
		require.NoError(t, err)
	})

	t.Run("wrong old password", func(t *testing.T) {
		f := createTestAccountService(t, false)
		account := storedAccount("old-digest")

		f.accountRepo.On("FindByID", ctx, account.ID).Return(account, nil)
		f.hasher.On("Check", ctx, "nope", "old-digest").Return(false)

		err := f.service.ChangePassword(ctx, account, &usecase.ChangePasswordInput{OldPassword: "nope", NewPassword: "new"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidOldPassword)
	})

	t.Run("missing fields", func(t *testing.T) {
		f := createTestAccountService(t, false)

		err := f.service.ChangePassword(ctx, storedAccount("x"), &usecase.ChangePasswordInput{OldPassword: "old"})
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestAccountService_LongPasswords(t *testing.T) {
	ctx := context.Background()
	hasher := auth.NewBcryptHasher(newTestConfig(false))
	long := strings.Repeat("p", 73)

	t.Run("register", func(t *testing.T) {
		f := createTestAccountService(t, false)
		f.withHasher(hasher)
		input := validRegisterInput()
		input.Password = long

		var stored string
		f.accountRepo.On("FindByEmailOrMobile", ctx, "owner@example.com", "9876543210").
			Return(nil, repository.ErrAccountNotFound).Twice()
		f.mediaStore.On("Upload", ctx, "avatars", "avatar.png", mock.Anything).
			Return("https://cdn.example.com/avatars/a.png", nil)
		f.txManager.PassThrough(f.factory)
		f.factory.On("AccountRepo").Return(f.accountRepo)
		f.accountRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			account := args.Get(1).(*entity.Account)
			account.ID = uuid.New()
			stored = account.PasswordHash
		}).Return(nil)
		f.publisher.On("PublishAccountEvent", ctx, mock.Anything).Return(nil)

		_, err := f.service.Register(ctx, input)

		require.NoError(t, err)
		assert.True(t, hasher.Check(ctx, long, stored))
	})

	t.Run("change password", func(t *testing.T) {
		f := createTestAccountService(t, false)
		f.withHasher(hasher)
		oldDigest, err := hasher.Hash(ctx, "old")
		require.NoError(t, err)
		account := storedAccount(oldDigest)

		var stored string
		f.accountRepo.On("FindByID", ctx, account.ID).Return(account, nil)
		f.accountRepo.On("UpdatePasswordHash", ctx, account.ID, mock.Anything).Run(func(args mock.Arguments) {
			stored = args.String(2)
		}).Return(nil)

		err = f.service.ChangePassword(ctx, account.Sanitized(), &usecase.ChangePasswordInput{OldPassword: "old", NewPassword: long})

		require.NoError(t, err)
		assert.True(t, hasher.Check(ctx, long, stored))
	})
}
