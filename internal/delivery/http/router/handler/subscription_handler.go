package handler

import (
	"net/http"

	"bazaar/internal/delivery/http/response"
	"bazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SubscriptionHandlerParams holds dependencies for SubscriptionHandler, injected by Fx.
type SubscriptionHandlerParams struct {
	fx.In

	SubscriptionUC usecase.SubscriptionUsecase
}

// SubscriptionHandler handles subscription-related HTTP requests
type SubscriptionHandler struct {
	subscriptionUC usecase.SubscriptionUsecase
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(params SubscriptionHandlerParams) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionUC: params.SubscriptionUC}
}

// Subscribe makes the authenticated vendor follow the channel in the path
func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	account, err := currentAccount(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	subscription, err := h.subscriptionUC.Subscribe(c.Request().Context(), account, c.Param("username"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, subscription, "Subscribed successfully")
}

// Unsubscribe removes the subscription to the channel in the path
func (h *SubscriptionHandler) Unsubscribe(c echo.Context) error {
	account, err := currentAccount(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.subscriptionUC.Unsubscribe(c.Request().Context(), account, c.Param("username")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Unsubscribed successfully")
}

// ProfileQR renders the QR code of a channel's public profile as PNG
func (h *SubscriptionHandler) ProfileQR(c echo.Context) error {
	png, err := h.subscriptionUC.GenerateProfileQR(c.Request().Context(), c.Param("username"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
