package handler

import (
	"log/slog"
	"net/http"

	"bazaar/config"
	"bazaar/internal/delivery/http/response"
	"bazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	Config    *config.Config
	Logger    *slog.Logger
}

// AccountHandler serves the vendor session endpoints.
type AccountHandler struct {
	accountUC usecase.AccountUsecase
	cookies   cookieJar
	logger    *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		accountUC: params.AccountUC,
		cookies:   newCookieJar(params.Config),
		logger:    params.Logger,
	}
}

// RegisterRequest is the multipart form of a vendor registration
type RegisterRequest struct {
	Username     string `json:"username" form:"username" validate:"notblank"`
	Email        string `json:"email" form:"email" validate:"notblank,email"`
	FullName     string `json:"fullName" form:"fullName" validate:"notblank"`
	Password     string `json:"password" form:"password" validate:"notblank"`
	MobileNo     string `json:"mobileNo" form:"mobileNo" validate:"notblank"`
	AltMobileNo  string `json:"altMobileNo" form:"altMobileNo"`
	BusinessName string `json:"businessName" form:"businessName"`
}

// LoginRequest identifies the vendor by email or mobile number
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	MobileNo string `json:"mobileNo" form:"mobileNo"`
	Password string `json:"password" form:"password"`
}

// RefreshTokenRequest carries the refresh token when no cookie is sent
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken"`
}

// ChangePasswordRequest represents the request body for changing the password
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" form:"oldPassword" validate:"notblank"`
	NewPassword string `json:"newPassword" form:"newPassword" validate:"notblank"`
}

// Register handles vendor registration with avatar and optional cover image
func (h *AccountHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	files := &uploads{}
	defer files.Close()

	avatar, err := files.open(c, "avatar")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	coverImage, err := files.open(c, "coverImage")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	account, err := h.accountUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		Password:     req.Password,
		MobileNo:     req.MobileNo,
		AltMobileNo:  req.AltMobileNo,
		BusinessName: req.BusinessName,
		Avatar:       avatar,
		CoverImage:   coverImage,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, account, "Vender registered Successfully")
}

// Login verifies the credentials and sets the token cookies
func (h *AccountHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.accountUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		MobileNo: req.MobileNo,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.cookies.setTokens(c, output.TokenPair)

	return response.Success(c, http.StatusOK, output, "Vender logged In Successfully")
}

// Logout ends the session of the authenticated vendor
func (h *AccountHandler) Logout(c echo.Context) error {
	account, err := currentAccount(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.accountUC.Logout(c.Request().Context(), account); err != nil {
		return response.HandleAppError(c, err)
	}

	h.cookies.clearTokens(c)

	return response.Success(c, http.StatusOK, nil, "Vender logged Out")
}

// RefreshToken rotates the session, reading the token from the cookie or the body
func (h *AccountHandler) RefreshToken(c echo.Context) error {
	token := ""
	if cookie, err := c.Cookie(RefreshTokenCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var req RefreshTokenRequest
		if err := bindAndValidate(c, &req); err != nil {
			return response.HandleAppError(c, err)
		}
		token = req.RefreshToken
	}

	tokens, err := h.accountUC.RefreshAccessToken(c.Request().Context(), token)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.cookies.setTokens(c, *tokens)

	return response.Success(c, http.StatusOK, tokens, "Access token refreshed")
}

// ChangePassword replaces the password of the authenticated vendor
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	account, err := currentAccount(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req ChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	err = h.accountUC.ChangePassword(c.Request().Context(), account, &usecase.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

// CurrentAccount returns the authenticated vendor
func (h *AccountHandler) CurrentAccount(c echo.Context) error {
	account, err := currentAccount(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, account, "Vender fetched successfully")
}
