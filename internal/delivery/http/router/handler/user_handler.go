// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"minibank/internal/delivery/http/response"
	"minibank/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// RegisterUserRequest is the body of POST /users.
type RegisterUserRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8"`
	FirstName   string  `json:"firstName" validate:"required,max=100"`
	LastName    string  `json:"lastName" validate:"required,max=100"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
	DateOfBirth *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// LoginRequest is the body of POST /auth/login. The password only has to be
// present; the stored digest decides whether it is right.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest is the body of PATCH /users/:userId. Every field is
// optional; nil means the field was absent and must stay untouched.
type UpdateUserRequest struct {
	FirstName   *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName    *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
	DateOfBirth *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// Register handles the user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	dateOfBirth, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return response.BadRequest(c, "dateOfBirth must be a valid ISO 8601 timestamp")
	}

	input := &usecase.RegisterUserInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		DateOfBirth: dateOfBirth,
	}

	output, err := h.userUC.RegisterUser(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Auth(c, http.StatusCreated, output.User, output.Token)
}

// Login handles the user login request.
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	input := &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}

	output, err := h.userUC.Login(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Auth(c, http.StatusOK, output.User, output.Token)
}

// GetUser handles the request for a single user's profile.
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	foundUser, err := h.userUC.GetUser(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.User(c, foundUser)
}

// UpdateUser handles a partial profile update. An empty body is a valid
// no-op that answers with the stored profile.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	dateOfBirth, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return response.BadRequest(c, "dateOfBirth must be a valid ISO 8601 timestamp")
	}

	input := &usecase.UpdateProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		DateOfBirth: dateOfBirth,
	}

	updatedUser, err := h.userUC.UpdateUser(c.Request().Context(), userID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.User(c, updatedUser)
}

// DeleteUser handles account deletion.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.userUC.DeleteUser(c.Request().Context(), userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "User deleted successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// parseDateOfBirth converts the optional RFC 3339 request field into a
// timestamp, preserving absence.
func parseDateOfBirth(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, err
	}

	return &parsed, nil
}
