package auth

import "golang.org/x/crypto/bcrypt"

// MinPasswordLength is enforced on signup and password change.
const MinPasswordLength = 8

// bcryptCost is lowered in tests.
var bcryptCost = bcrypt.DefaultCost

// HashPassword hashes the plain text password using bcrypt.
func HashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
}

// CheckPassword compares a bcrypt hash with a plain password.
func CheckPassword(hash []byte, plain string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain)) == nil
}
