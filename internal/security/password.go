package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor applied to every stored password.
const PasswordCost = 10

func HashPassword(password string) ([]byte, error) {
	return HashPasswordWithCost(password, PasswordCost)
}

func HashPasswordWithCost(password string, cost int) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// VerifyPassword reports whether password matches encodedHash.
// An error is returned only when encodedHash is not a usable bcrypt hash.
func VerifyPassword(password string, encodedHash []byte) (bool, error) {
	err := bcrypt.CompareHashAndPassword(encodedHash, []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password: %w", err)
	}
}
