// Package crypto implements server-side password hashing and verification.
package crypto

import "golang.org/x/crypto/bcrypt"

// hashCost is the bcrypt work factor. 10 matches the hashes already in
// production databases; raising it only affects newly stored passwords.
const hashCost = 10

// HashPassword returns the bcrypt hash of password.
func HashPassword(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, hashCost)
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// The underlying comparison is constant-time.
func VerifyPassword(password, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, password) == nil
}
