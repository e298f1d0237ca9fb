package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt digest of a plaintext password. The salt is
// embedded in the digest.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
