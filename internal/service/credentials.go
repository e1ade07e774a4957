package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier turns a password into its stored form and checks a
// presented password against a stored credential. Isolating this behind an
// interface keeps the account service's contract unchanged when the storage
// scheme is swapped.
type CredentialVerifier interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
}

// PlainVerifier stores and compares passwords verbatim. This matches the
// behavioral contract of the original store: an exact, case-sensitive match
// against the stored secret.
type PlainVerifier struct{}

func (PlainVerifier) Hash(password string) (string, error) { return password, nil }

func (PlainVerifier) Verify(stored, password string) bool { return stored == password }

// BcryptVerifier stores bcrypt hashes. It satisfies the same contract as
// PlainVerifier, so switching schemes is a wiring change only.
type BcryptVerifier struct {
	Cost int
}

func (v BcryptVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (v BcryptVerifier) Verify(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
