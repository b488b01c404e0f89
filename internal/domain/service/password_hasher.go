// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password digest creation and verification.
// It abstracts the underlying algorithm (bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted digest from a plaintext password. The digest
	// embeds its own salt and cost parameters.
	Hash(password string) (string, error)

	// Check reports whether a plaintext password matches a stored digest.
	// Malformed digests and legitimate mismatches both report false;
	// callers never see an error for a mismatch.
	Check(password, hash string) bool
}
