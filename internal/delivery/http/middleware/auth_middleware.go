package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "bazaar/internal/delivery/context"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AccessTokenCookie is the cookie that carries the access token.
const AccessTokenCookie = "accessToken"

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	AccountRepo  repository.AccountRepository
	Logger       *slog.Logger
}

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc    service.TokenService
	accountRepo repository.AccountRepository
	logger      *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc:    params.TokenService,
		accountRepo: params.AccountRepo,
		logger:      params.Logger,
	}
}

// Authenticate validates the access token from the accessToken cookie or the
// Authorization header and attaches the account it belongs to.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := accessToken(c)
		if token == "" {
			return errors.Wrap(domainerrors.ErrUnauthorized, "no access token")
		}

		logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

		claims, err := m.tokenSvc.Verify(token, service.TokenKindAccess)
		if err != nil {
			logger.Warn("Access token rejected", slog.Any("error", err))

			return errors.Wrap(domainerrors.ErrInvalidAccessToken, err.Error())
		}

		accountID, err := claims.AccountID()
		if err != nil {
			logger.Warn("Access token has no valid subject", slog.Any("error", err))

			return errors.Wrap(domainerrors.ErrInvalidAccessToken, err.Error())
		}

		account, err := m.accountRepo.FindPublicByID(c.Request().Context(), accountID)
		if errors.Is(err, repository.ErrAccountNotFound) {
			logger.Warn("Access token for missing account", slog.String("account_id", accountID.String()))

			return errors.Wrap(domainerrors.ErrInvalidAccessToken, "account no longer exists")
		}
		if err != nil {
			return errors.Wrap(err, "failed to load authenticated account")
		}

		deliverycontext.SetAccount(c, account.Sanitized())

		return next(c)
	}
}

func accessToken(c echo.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}

	return strings.TrimSpace(token)
}
