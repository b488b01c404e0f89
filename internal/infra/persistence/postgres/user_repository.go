// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"minibank/internal/domain/entity"
	domainerrors "minibank/internal/domain/errors"
	"minibank/internal/domain/repository"
	"minibank/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	userM := &model.UserModel{}
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(userM).Error; err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(userM), nil
}

// FindByEmail retrieves a single user by their email address.
// The lookup is exact: email is stored as submitted.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	userM := &model.UserModel{}
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(userM), nil
}

// Create persists a new user entity to the database. The unique index on
// email is the final arbiter for concurrent registrations: a violation maps
// to the same domain error as an up-front duplicate check.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	// Map the pure domain entity to a GORM persistence model.
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required user information")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user row with the entity's current state.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	// Map the pure domain entity to a GORM persistence model.
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Save(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	// Update the user entity with the updated timestamp
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Delete removes a user row permanently. The model carries no soft-delete
// column, so this is a hard DELETE.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.UserModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:             data.ID,
		Email:          data.Email,
		FirstName:      data.FirstName,
		LastName:       data.LastName,
		PhoneNumber:    data.PhoneNumber,
		Address:        data.Address,
		DateOfBirth:    data.DateOfBirth,
		PasswordHash:   data.PasswordHash,
		HasBankAccount: data.HasBankAccount,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:             data.ID,
		Email:          data.Email,
		FirstName:      data.FirstName,
		LastName:       data.LastName,
		PhoneNumber:    data.PhoneNumber,
		Address:        data.Address,
		DateOfBirth:    data.DateOfBirth,
		PasswordHash:   data.PasswordHash,
		HasBankAccount: data.HasBankAccount,
		CreatedAt:      data.CreatedAt,
	}
}
