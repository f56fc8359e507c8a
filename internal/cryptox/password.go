// Package cryptox implements one-way password hashing for account
// credentials. Hashes are derived with scrypt using a per-user random salt
// and verified with a constant-time comparison.
package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/scrypt"

	"github.com/reminisce-care/reminisce/internal/common"
)

const (
	saltSize = 16
	hashSize = 64

	// scrypt cost parameters
	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

// HashPassword derives a hash from the password using a fresh random salt.
// Both the hash and the salt must be stored; the password itself never is.
func HashPassword(password string) (hash, salt []byte, err error) {
	salt = common.GenerateRandByteArray(saltSize)
	hash, err = scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, hashSize)
	if err != nil {
		return nil, nil, err
	}
	return hash, salt, nil
}

// VerifyPassword recomputes the hash for the candidate password with the
// stored salt and compares it to the stored hash in constant time.
func VerifyPassword(password string, hash, salt []byte) bool {
	candidate, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, hashSize)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(hash, candidate) == 1
}
