// Package identity handles players' accounts: validated usernames, bcrypt
// password hashes and signed login tokens.
package identity

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordStrengthScore = 3

	usernamePattern   = `^[a-zA-Z0-9_]+$` // Alphanumeric with underscores
	minUsernameLength = 3
	maxUsernameLength = 20
)

var usernameRegex = regexp.MustCompile(usernamePattern)

// hashCost is the bcrypt cost for new hashes. Tests lower it.
var hashCost = bcrypt.DefaultCost

var (
	ErrUsernameTooShort = errors.New("identity: username too short")
	ErrUsernameTooLong  = errors.New("identity: username too long")
	ErrUsernameFormat   = errors.New("identity: username may only contain letters, digits and underscores")
	ErrWeakPassword     = errors.New("identity: password too weak")

	// ErrUserNotFound and ErrUserExists are returned by UserRepo implementations.
	ErrUserNotFound = errors.New("identity: user not found")
	ErrUserExists   = errors.New("identity: username already taken")
)

// User is a registered player.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserConfig holds the parameters for creating a User.
type UserConfig struct {
	ID            uuid.UUID
	Username      string
	PlainPassword string
}

// NewUser validates the username and password strength and hashes the password.
func NewUser(config UserConfig) (*User, error) {
	if err := ValidateUsername(config.Username); err != nil {
		return nil, err
	}
	if err := validatePassword(config.PlainPassword); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(config.PlainPassword)
	if err != nil {
		return nil, err
	}

	id := config.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &User{
		ID:           id,
		Username:     config.Username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// VerifyPassword reports whether password matches the stored hash.
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// ValidateUsername checks length and allowed characters.
// The terminal front-end uses it for player names too.
func ValidateUsername(username string) error {
	if len(username) < minUsernameLength {
		return ErrUsernameTooShort
	}
	if len(username) > maxUsernameLength {
		return ErrUsernameTooLong
	}
	if !usernameRegex.MatchString(username) {
		return ErrUsernameFormat
	}
	return nil
}

func validatePassword(password string) error {
	result := zxcvbn.PasswordStrength(password, nil)
	if result.Score < minPasswordStrengthScore {
		return ErrWeakPassword
	}
	return nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	return string(bytes), err
}
