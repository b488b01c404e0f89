// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"minibank/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
// Optional profile fields are pointers; nil means the field was omitted.
type RegisterUserInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber *string
	Address     *string
	DateOfBirth *time.Time
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput carries a partial profile update. Nil fields were
// absent from the request and leave the stored value untouched.
type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Address     *string
	DateOfBirth *time.Time
}

// IsEmpty reports whether the update carries no fields at all.
func (input *UpdateProfileInput) IsEmpty() bool {
	return input.FirstName == nil &&
		input.LastName == nil &&
		input.PhoneNumber == nil &&
		input.Address == nil &&
		input.DateOfBirth == nil
}

// --- Output DTOs ---

// AuthOutput returns the user together with a freshly signed access token.
// Registration and login respond with the same shape.
type AuthOutput struct {
	User  *entity.User
	Token string
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}
