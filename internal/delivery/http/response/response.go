// Package response defines the wire shapes of the API and helpers to emit
// them. Error bodies are always a single flat {"error": string} object.
package response

import (
	"net/http"
	"time"

	"minibank/internal/domain/entity"
	domainerrors "minibank/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserPayload is the wire shape of a user. The password digest never
// appears here; optional fields serialize as null when unset.
type UserPayload struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	PhoneNumber    *string    `json:"phoneNumber"`
	Address        *string    `json:"address"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	HasBankAccount bool       `json:"hasBankAccount"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// AuthResponse is returned by registration and login.
type AuthResponse struct {
	User  *UserPayload `json:"user"`
	Token string       `json:"token"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	User *UserPayload `json:"user"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewUserPayload maps a domain user onto the wire shape.
func NewUserPayload(user *entity.User) *UserPayload {
	if user == nil {
		return nil
	}

	return &UserPayload{
		ID:             user.ID.String(),
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		PhoneNumber:    user.PhoneNumber,
		Address:        user.Address,
		DateOfBirth:    user.DateOfBirth,
		HasBankAccount: user.HasBankAccount,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// Auth returns a user together with a freshly issued token.
func Auth(c echo.Context, statusCode int, user *entity.User, token string) error {
	return c.JSON(statusCode, AuthResponse{
		User:  NewUserPayload(user),
		Token: token,
	})
}

// User returns a single user.
func User(c echo.Context, user *entity.User) error {
	return c.JSON(http.StatusOK, UserResponse{User: NewUserPayload(user)})
}

// Message returns a 200 confirmation message.
func Message(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// Error returns an error response with the given status code.
func Error(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, ErrorResponse{Error: message})
}

// BadRequest returns a 400 error
func BadRequest(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, message)
}

// HandleAppError handles application errors, converting domain errors to
// appropriate HTTP responses. Anything else propagates to the centralized
// error handler.
func HandleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return Error(c, appErr.HTTPCode(), appErr.Message())
	}

	return errors.WithStack(err)
}
