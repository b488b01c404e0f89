// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"minibank/internal/delivery/http/middleware"
	"minibank/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds dependencies for the Router, injected by Fx.
type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint, outside the versioned API
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")

	// Public routes
	apiV1.POST("/users", r.userHandler.Register)
	apiV1.POST("/auth/login", r.userHandler.Login)

	// Routes below operate on a single user and require a valid token
	// issued for exactly that user. Guard order matters: authentication
	// answers before ownership, ownership before any lookup.
	usersGroup := apiV1.Group("/users")
	usersGroup.Use(r.authMiddleware.Authenticate)
	usersGroup.Use(r.authMiddleware.RequireSelf("userId"))
	{
		usersGroup.GET("/:userId", r.userHandler.GetUser)
		usersGroup.PATCH("/:userId", r.userHandler.UpdateUser)
		usersGroup.DELETE("/:userId", r.userHandler.DeleteUser)
	}
}
