package context

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyAccount is the key for storing the authenticated account.
const KeyAccount ContextKey = "account"

// WithAccount returns a new context carrying the authenticated account.
func WithAccount(ctx context.Context, account *entity.Account) context.Context {
	return context.WithValue(ctx, KeyAccount, account)
}

// AccountFromContext extracts the authenticated account from standard context.Context.
func AccountFromContext(ctx context.Context) (*entity.Account, bool) {
	account, ok := ctx.Value(KeyAccount).(*entity.Account)

	return account, ok && account != nil
}

// SetAccount stores the authenticated account on the echo.Context and on the request's context.
func SetAccount(c echo.Context, account *entity.Account) {
	c.Set(string(KeyAccount), account)
	c.SetRequest(c.Request().WithContext(WithAccount(c.Request().Context(), account)))
}

// GetAccount returns the account attached by the auth middleware.
func GetAccount(c echo.Context) (*entity.Account, bool) {
	account, ok := c.Get(string(KeyAccount)).(*entity.Account)

	return account, ok && account != nil
}
