package auth

import "golang.org/x/crypto/bcrypt"

const hashCost = 12

// HashPassword derives a salted one-way hash of the plaintext. A fresh
// random salt is generated on every call, so two hashes of the same
// password never match.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
