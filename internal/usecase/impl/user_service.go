// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "minibank/internal/delivery/context"
	"minibank/internal/domain/entity"
	domainerrors "minibank/internal/domain/errors"
	"minibank/internal/domain/repository"
	"minibank/internal/domain/service"
	"minibank/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser orchestrates the complete registration process: duplicate-email
// check, password hashing, persistence and token issuance.
func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	// Fast-path duplicate check. The unique index on email remains the
	// final arbiter when two registrations race on the same address.
	if _, err := srv.userRepo.FindByEmail(ctx, input.Email); err == nil {
		srv.log(ctx).Warn("Registration rejected: email already registered", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrUserAlreadyExists, "registration failed")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Error("Failed to check email availability", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to check email availability")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	newUser := &entity.User{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PhoneNumber:  input.PhoneNumber,
		Address:      input.Address,
		DateOfBirth:  input.DateOfBirth,
		PasswordHash: hashedPassword,
		// New accounts never start with a bank account attached.
		HasBankAccount: false,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		// A concurrent registration may have claimed the email between the
		// availability check and the insert; the repository already maps
		// that violation to the same domain error as the fast-path check.
		srv.log(ctx).Warn("Failed to create user", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	token, err := srv.tokenService.GenerateToken(newUser.ID, newUser.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to generate token after registration", slog.Any("userID", newUser.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate token after registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.AuthOutput{User: newUser, Token: token}, nil
}

// Login verifies the submitted credentials and issues a fresh access token.
// Unknown email and wrong password both resolve to ErrInvalidCredentials so
// the response never reveals which half was wrong.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	loggedInUser, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user during login")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, loggedInUser.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.GenerateToken(loggedInUser.ID, loggedInUser.Email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate token during login")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", loggedInUser.ID))

	return &usecase.AuthOutput{User: loggedInUser, Token: token}, nil
}

// GetUser loads a single user's profile.
func (srv *userService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	foundUser, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("User not found", slog.Any("userID", userID))

			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "get user failed")
		}

		srv.log(ctx).Error("Failed to load user", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load user")
	}

	return foundUser, nil
}

// UpdateUser applies a partial profile update. Only fields present in the
// input are written; an input with no fields returns the stored profile
// without touching the database.
func (srv *userService) UpdateUser(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	existingUser, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("User not found for update", slog.Any("userID", userID))

			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "update user failed")
		}

		srv.log(ctx).Error("Failed to load user for update", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load user for update")
	}

	if input.IsEmpty() {
		srv.log(ctx).Debug("Update carried no fields; returning stored profile", slog.Any("userID", userID))

		return existingUser, nil
	}

	applyProfileUpdate(existingUser, input)

	if err := srv.userRepo.Update(ctx, existingUser); err != nil {
		srv.log(ctx).Error("Failed to update user", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.log(ctx).Debug("User updated", slog.Any("userID", userID))

	return existingUser, nil
}

// DeleteUser removes a user account. Accounts with an active bank account
// cannot be deleted until the account is closed.
func (srv *userService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	existingUser, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("User not found for deletion", slog.Any("userID", userID))

			return errors.Wrap(domainerrors.ErrUserNotFound, "delete user failed")
		}

		srv.log(ctx).Error("Failed to load user for deletion", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to load user for deletion")
	}

	if existingUser.HasBankAccount {
		srv.log(ctx).Warn("Deletion blocked: user holds an active bank account", slog.Any("userID", userID))

		return errors.Wrap(domainerrors.ErrUserHasBankAccount, "delete user failed")
	}

	if err := srv.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("User vanished before deletion", slog.Any("userID", userID))

			return errors.Wrap(domainerrors.ErrUserNotFound, "delete user failed")
		}

		srv.log(ctx).Error("Failed to delete user", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.Any("userID", userID))

	return nil
}

// applyProfileUpdate copies the present fields of a partial update onto the
// stored entity.
func applyProfileUpdate(user *entity.User, input *usecase.UpdateProfileInput) {
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = input.PhoneNumber
	}
	if input.Address != nil {
		user.Address = input.Address
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = input.DateOfBirth
	}
}
