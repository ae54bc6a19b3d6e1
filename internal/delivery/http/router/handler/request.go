package handler

import (
	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// bindAndValidate binds the request body (JSON, form or multipart) into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithMessage("Invalid request body"), err.Error())
	}

	return c.Validate(req)
}

// currentAccount returns the account attached by the auth middleware.
func currentAccount(c echo.Context) (*entity.Account, error) {
	account, ok := deliverycontext.GetAccount(c)
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "no account in context")
	}

	return account, nil
}
