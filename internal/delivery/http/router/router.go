// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"net/url"
	"strings"

	"bazaar/config"
	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler      *handler.AccountHandler
	ProfileHandler      *handler.ProfileHandler
	CategoryHandler     *handler.CategoryHandler
	SubscriptionHandler *handler.SubscriptionHandler
	HealthHandler       *handler.HealthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	Config              *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler      *handler.AccountHandler
	profileHandler      *handler.ProfileHandler
	categoryHandler     *handler.CategoryHandler
	subscriptionHandler *handler.SubscriptionHandler
	healthHandler       *handler.HealthHandler
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:      params.AccountHandler,
		profileHandler:      params.ProfileHandler,
		categoryHandler:     params.CategoryHandler,
		subscriptionHandler: params.SubscriptionHandler,
		healthHandler:       params.HealthHandler,
		authMiddleware:      params.AuthMiddleware,
		config:              params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", r.healthHandler.HealthCheck)

	api := e.Group(r.config.HTTP.BasePath)
	authenticated := r.authMiddleware.Authenticate

	categoryGroup := api.Group("/category")
	{
		categoryGroup.POST("/create", r.categoryHandler.Create)
		categoryGroup.POST("/update", r.categoryHandler.Update)
		categoryGroup.PATCH("/vender/avatar", r.profileHandler.UpdateAvatar, authenticated)
	}

	venderGroup := api.Group("/vender")
	{
		venderGroup.POST("/register", r.accountHandler.Register)
		venderGroup.POST("/login", r.accountHandler.Login)
		venderGroup.POST("/refresh-token", r.accountHandler.RefreshToken)

		venderGroup.POST("/logout", r.accountHandler.Logout, authenticated)
		venderGroup.POST("/change-password", r.accountHandler.ChangePassword, authenticated)
		venderGroup.GET("/current-vender", r.accountHandler.CurrentAccount, authenticated)
		venderGroup.PATCH("/update-account", r.profileHandler.UpdateAccount, authenticated)
		venderGroup.PATCH("/avatar", r.profileHandler.UpdateAvatar, authenticated)
		venderGroup.PATCH("/cover-image", r.profileHandler.UpdateCoverImage, authenticated)
	}

	channelGroup := venderGroup.Group("/c/:username", authenticated)
	{
		channelGroup.GET("", r.profileHandler.ChannelProfile)
		channelGroup.POST("/subscribe", r.subscriptionHandler.Subscribe)
		channelGroup.DELETE("/subscribe", r.subscriptionHandler.Unsubscribe)
		channelGroup.GET("/qr", r.subscriptionHandler.ProfileQR)
	}
}

// RegisterMediaRoutes serves uploaded images from disk when the media bucket is a local directory.
func (r *router) RegisterMediaRoutes(e *echo.Echo) {
	media := r.config.Media
	if media == nil || !strings.HasPrefix(media.BucketURL, "file://") {
		return
	}

	bucket, err := url.Parse(media.BucketURL)
	if err != nil || bucket.Path == "" {
		return
	}
	public, err := url.Parse(media.PublicBaseURL)
	if err != nil || public.Path == "" || public.Path == "/" {
		return
	}

	e.Static(public.Path, bucket.Path)
}
