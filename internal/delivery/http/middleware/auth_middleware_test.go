package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	mockRepo "bazaar/internal/mocks/repository"
	mockSvc "bazaar/internal/mocks/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixtures struct {
	middleware   *AuthMiddleware
	tokenService *mockSvc.MockTokenService
	accountRepo  *mockRepo.MockAccountRepository
}

func newAuthFixtures(t *testing.T) authFixtures {
	f := authFixtures{
		tokenService: mockSvc.NewMockTokenService(t),
		accountRepo:  mockRepo.NewMockAccountRepository(t),
	}
	f.middleware = NewAuthMiddleware(AuthMiddlewareParams{
		TokenService: f.tokenService,
		AccountRepo:  f.accountRepo,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return f
}

func claimsFor(id uuid.UUID) *service.Claims {
	return &service.Claims{
		Type:             service.TokenKindAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: id.String()},
	}
}

// run executes the middleware and reports whether the next handler saw an account.
func run(f authFixtures, req *http.Request) (*entity.Account, bool, error) {
	e := echo.New()
	c := e.NewContext(req, httptest.NewRecorder())

	var seen *entity.Account
	called := false
	err := f.middleware.Authenticate(func(c echo.Context) error {
		called = true
		account, ok := deliverycontext.GetAccount(c)
		fromCtx, okCtx := deliverycontext.AccountFromContext(c.Request().Context())
		if ok && okCtx && account.ID == fromCtx.ID {
			seen = account
		}

		return nil
	})(c)

	return seen, called, err
}

func TestAuthMiddleware_Authenticate_BearerHeader(t *testing.T) {
	f := newAuthFixtures(t)
	refresh := "stored"
	account := &entity.Account{ID: uuid.New(), Username: "chai_point", PasswordHash: "digest", RefreshToken: &refresh}

	f.tokenService.On("Verify", "good-token", service.TokenKindAccess).Return(claimsFor(account.ID), nil)
	f.accountRepo.On("FindPublicByID", mock.Anything, account.ID).Return(account, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer good-token")

	seen, called, err := run(f, req)

	require.NoError(t, err)
	require.True(t, called)
	require.NotNil(t, seen)
	assert.Equal(t, account.ID, seen.ID)
	assert.Empty(t, seen.PasswordHash)
	assert.Nil(t, seen.RefreshToken)
}

func TestAuthMiddleware_Authenticate_CookieWinsOverHeader(t *testing.T) {
	f := newAuthFixtures(t)
	account := &entity.Account{ID: uuid.New()}

	f.tokenService.On("Verify", "cookie-token", service.TokenKindAccess).Return(claimsFor(account.ID), nil)
	f.accountRepo.On("FindPublicByID", mock.Anything, account.ID).Return(account, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "cookie-token"})
	req.Header.Set(echo.HeaderAuthorization, "Bearer header-token")

	_, called, err := run(f, req)

	require.NoError(t, err)
	assert.True(t, called)
}

func TestAuthMiddleware_Authenticate_Rejections(t *testing.T) {
	accountID := uuid.New()

	tests := []struct {
		name     string
		header   string
		setup    func(f authFixtures)
		expected error
	}{
		{
			name:     "no credential",
			expected: domainerrors.ErrUnauthorized,
		},
		{
			name:     "not a bearer header",
			header:   "Basic dXNlcjpwYXNz",
			expected: domainerrors.ErrUnauthorized,
		},
		{
			name:   "expired token",
			header: "Bearer expired",
			setup: func(f authFixtures) {
				f.tokenService.On("Verify", "expired", service.TokenKindAccess).Return(nil, service.ErrTokenExpired)
			},
			expected: domainerrors.ErrInvalidAccessToken,
		},
		{
			name:   "refresh token presented",
			header: "Bearer refresh",
			setup: func(f authFixtures) {
				f.tokenService.On("Verify", "refresh", service.TokenKindAccess).Return(nil, service.ErrTokenKindMismatch)
			},
			expected: domainerrors.ErrInvalidAccessToken,
		},
		{
			name:   "subject is not an id",
			header: "Bearer odd",
			setup: func(f authFixtures) {
				f.tokenService.On("Verify", "odd", service.TokenKindAccess).
					Return(&service.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "nope"}}, nil)
			},
			expected: domainerrors.ErrInvalidAccessToken,
		},
		{
			name:   "deleted account",
			header: "Bearer orphan",
			setup: func(f authFixtures) {
				f.tokenService.On("Verify", "orphan", service.TokenKindAccess).Return(claimsFor(accountID), nil)
				f.accountRepo.On("FindPublicByID", mock.Anything, accountID).Return(nil, repository.ErrAccountNotFound)
			},
			expected: domainerrors.ErrInvalidAccessToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixtures(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}

			_, called, err := run(f, req)

			assert.False(t, called)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestAuthMiddleware_Authenticate_StorageFailure(t *testing.T) {
	f := newAuthFixtures(t)
	accountID := uuid.New()
	dbErr := errors.New("connection refused")

	f.tokenService.On("Verify", "token", service.TokenKindAccess).Return(claimsFor(accountID), nil)
	f.accountRepo.On("FindPublicByID", mock.Anything, accountID).Return(nil, dbErr)

	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background())
	req.Header.Set(echo.HeaderAuthorization, "Bearer token")

	_, called, err := run(f, req)

	assert.False(t, called)
	assert.ErrorIs(t, err, dbErr)

	var appErr domainerrors.AppError
	assert.False(t, errors.As(err, &appErr), "storage failures must not look like a 401")
}
