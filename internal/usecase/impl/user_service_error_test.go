package impl

import (
	"context"
	"net/http"
	"testing"

	"minibank/internal/domain/entity"
	domainerrors "minibank/internal/domain/errors"
	"minibank/internal/domain/repository"
	"minibank/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterUser_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterUserInput{
		Email:     "taken@example.com",
		Password:  "Password123!",
		FirstName: "Jane",
		LastName:  "Doe",
	}

	fx.userRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(&entity.User{ID: uuid.New(), Email: input.Email}, nil)

	output, err := fx.service.RegisterUser(ctx, input)

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	assert.Equal(t, "User with this email already exists", appErr.Message())
}

func TestUserService_RegisterUser_DuplicateEmailRace(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterUserInput{
		Email:     "racing@example.com",
		Password:  "Password123!",
		FirstName: "Jane",
		LastName:  "Doe",
	}

	// The availability check passes, then the insert loses the race and the
	// repository surfaces the unique violation as the same domain error.
	fx.userRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists"))

	output, err := fx.service.RegisterUser(ctx, input)

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "User with this email already exists", appErr.Message())
}

func TestUserService_RegisterUser_HashFailure(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterUserInput{
		Email:     "jane.doe@example.com",
		Password:  "Password123!",
		FirstName: "Jane",
		LastName:  "Doe",
	}

	fx.userRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash(input.Password).Return("", errors.New("bcrypt failure"))

	output, err := fx.service.RegisterUser(ctx, input)

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())
	// The hashing detail never reaches the client.
	assert.Equal(t, "Internal server error", appErr.Message())
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "Password123!",
	}

	fx.userRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.Login(ctx, input)

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
	assert.Equal(t, "Invalid email or password", appErr.Message())
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	storedUser := &entity.User{
		ID:           uuid.New(),
		Email:        "jane.doe@example.com",
		PasswordHash: "stored-hash",
	}
	input := &usecase.LoginInput{
		Email:    storedUser.Email,
		Password: "wrong-password",
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(storedUser, nil)
	fx.hasher.EXPECT().Check(input.Password, storedUser.PasswordHash).Return(false)

	output, err := fx.service.Login(ctx, input)

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	// Wrong password must look exactly like an unknown email to the caller.
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
	assert.Equal(t, "Invalid email or password", appErr.Message())
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	foundUser, err := fx.service.GetUser(ctx, userID)

	assert.Nil(t, foundUser)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	newFirstName := "Janet"

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	updatedUser, err := fx.service.UpdateUser(ctx, userID, &usecase.UpdateProfileInput{FirstName: &newFirstName})

	assert.Nil(t, updatedUser)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserService_UpdateUser_RepositoryFailure(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	storedUser := &entity.User{ID: uuid.New(), Email: "jane.doe@example.com"}
	newFirstName := "Janet"

	fx.userRepo.EXPECT().FindByID(ctx, storedUser.ID).Return(storedUser, nil)
	fx.userRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.NewDatabaseExecuteError(errors.New("connection reset"), "failed to update user"))

	updatedUser, err := fx.service.UpdateUser(ctx, storedUser.ID, &usecase.UpdateProfileInput{FirstName: &newFirstName})

	assert.Nil(t, updatedUser)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())
	assert.Equal(t, "Internal server error", appErr.Message())
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	err := fx.service.DeleteUser(ctx, userID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserService_DeleteUser_BlockedByBankAccount(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	storedUser := &entity.User{
		ID:             uuid.New(),
		Email:          "jane.doe@example.com",
		HasBankAccount: true,
	}

	// No Delete expectation: the guard must reject before any write.
	fx.userRepo.EXPECT().FindByID(ctx, storedUser.ID).Return(storedUser, nil)

	err := fx.service.DeleteUser(ctx, storedUser.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserHasBankAccount))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode())
	assert.Equal(t, "Cannot delete user with an active bank account", appErr.Message())
}
