// Package auth decides whether an admin login attempt is accepted.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// is returned when username/password don't match. The message never says which.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Authenticator checks one login attempt.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) error
}

// Hinter is implemented by authenticators that may show demo credentials on
// a failed login.
type Hinter interface {
	Hint() string
}

// FixedCredentials accepts exactly one username/password pair, compared
// case-sensitively with no trimming.
type FixedCredentials struct {
	Username string
	Password string
	// Demo shows the pair in the login failure message.
	Demo bool
}

// DemoCredentials is the fixed pair the front end has always advertised.
func DemoCredentials() FixedCredentials {
	return FixedCredentials{Username: "admin", Password: "temple123", Demo: true}
}

func (f FixedCredentials) Authenticate(_ context.Context, username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(f.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(f.Password)) == 1
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

func (f FixedCredentials) Hint() string {
	if !f.Demo {
		return ""
	}
	return "Try: " + f.Username + " / " + f.Password
}

// HashedCredentials accepts one username whose password is stored as a bcrypt hash.
type HashedCredentials struct {
	Username     string
	PasswordHash string
}

func (h HashedCredentials) Authenticate(_ context.Context, username, password string) error {
	// always pay for the bcrypt check so a wrong username costs the same
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.Username)) == 1
	passOK := checkPassword(h.PasswordHash, password)
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

// uses bcrypt to hash a plaintext password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// checkPassword is swapped out in tests.
var checkPassword = CheckPassword

// compares a bcrypt hash with the plaintext.
func CheckPassword(hash, plain string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	return err == nil
}
