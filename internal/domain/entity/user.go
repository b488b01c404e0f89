// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the single account-holder entity of the banking demo. The password
// digest lives on the entity so persistence stores exactly one row per user;
// delivery-layer mappers are responsible for never serializing it.
type User struct {
	ID             uuid.UUID  // The unique identifier for the user.
	Email          string     // Login identifier; unique, stored case-sensitively.
	FirstName      string     // The user's given name.
	LastName       string     // The user's family name.
	PhoneNumber    *string    // Optional contact number; nil when never provided.
	Address        *string    // Optional postal address; nil when never provided.
	DateOfBirth    *time.Time // Optional date of birth; nil when never provided.
	PasswordHash   string     // The bcrypt digest of the user's password, never the plaintext.
	HasBankAccount bool       // True while a linked financial account is active; blocks deletion.
	CreatedAt      time.Time  // Timestamp of when this account was created.
	UpdatedAt      time.Time  // Timestamp of the last modification to this account.
}
