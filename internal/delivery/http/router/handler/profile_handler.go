package handler

import (
	"net/http"

	"bazaar/internal/delivery/http/response"
	"bazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
}

// ProfileHandler serves the vendor profile endpoints.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
}

// NewProfileHandler is the constructor for ProfileHandler
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{profileUC: params.ProfileUC}
}

// UpdateAccountRequest is the editable business profile. Coordinates arrive as text.
type UpdateAccountRequest struct {
	BusinessName string `json:"businessName" form:"businessName" validate:"notblank"`
	OwnerName    string `json:"ownerName" form:"ownerName" validate:"notblank"`
	MobileNo     string `json:"mobileNo" form:"mobileNo" validate:"notblank"`
	AltMobileNo  string `json:"altMobileNo" form:"altMobileNo"`
	Category     string `json:"category" form:"category" validate:"notblank"`
	Address      string `json:"address" form:"address" validate:"notblank"`
	Latitude     string `json:"latitude" form:"latitude" validate:"notblank"`
	Longitude    string `json:"longitude" form:"longitude" validate:"notblank"`
	FCMToken     string `json:"fcmToken" form:"fcmToken" validate:"notblank"`
}

// UpdateAccount replaces the business profile of the authenticated vendor
func (h *ProfileHandler) UpdateAccount(c echo.Context) error {
	account, err := currentAccount(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	updated, err := h.profileUC.UpdateProfile(c.Request().Context(), account, &usecase.UpdateProfileInput{
		BusinessName: req.BusinessName,
		OwnerName:    req.OwnerName,
		MobileNo:     req.MobileNo,
		AltMobileNo:  req.AltMobileNo,
		Category:     req.Category,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		FCMToken:     req.FCMToken,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, updated, "Account details updated successfully")
}

// UpdateAvatar replaces the avatar of the authenticated vendor
func (h *ProfileHandler) UpdateAvatar(c echo.Context) error {
	account, err := currentAccount(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	files := &uploads{}
	defer files.Close()

	avatar, err := files.open(c, "avatar")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	updated, err := h.profileUC.UpdateAvatar(c.Request().Context(), account, avatar)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, updated, "Avatar image updated successfully")
}

// UpdateCoverImage replaces the cover image of the authenticated vendor
func (h *ProfileHandler) UpdateCoverImage(c echo.Context) error {
	account, err := currentAccount(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	files := &uploads{}
	defer files.Close()

	coverImage, err := files.open(c, "coverImage")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	updated, err := h.profileUC.UpdateCoverImage(c.Request().Context(), account, coverImage)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, updated, "Cover image updated successfully")
}

// ChannelProfile returns the public profile of a vendor with its subscription counts
func (h *ProfileHandler) ChannelProfile(c echo.Context) error {
	viewer, err := currentAccount(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	profile, err := h.profileUC.GetPublicProfile(c.Request().Context(), c.Param("username"), viewer)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile, "User channel fetched successfully")
}
